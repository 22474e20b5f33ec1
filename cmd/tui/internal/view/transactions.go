package view

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/artha/internal/balance"
	"github.com/MrJamesThe3rd/artha/internal/ledger"
	"github.com/MrJamesThe3rd/artha/internal/state"
)

type txState int

const (
	txStatePeriod txState = iota
	txStateList
	txStateEditing
)

// txItem wraps a transaction to implement list.Item.
type txItem struct {
	tx  *state.Transaction
	app *state.App
}

func (i txItem) Title() string {
	account := ""
	if acc := i.app.Account(i.tx.AccountID); acc != nil {
		account = acc.Name
	}

	amount := FormatSigned(ledger.SignedAmount(i.tx, i.tx.AccountID))
	kind := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("[%s]", i.tx.Type))

	return fmt.Sprintf("%s  %12s  %s  %s · %s",
		FormatDate(i.tx.Date), amount, kind, i.tx.Description, account)
}

func (i txItem) Description() string {
	parts := []string{}

	if c := i.app.Category(i.tx.CategoryID); c != nil {
		parts = append(parts, c.Name)
	}

	for _, id := range i.tx.TagIDs {
		if tag := i.app.Tag(id); tag != nil {
			parts = append(parts, "#"+tag.Name)
		}
	}

	return strings.Join(parts, "  ")
}

func (i txItem) FilterValue() string {
	return i.tx.Description
}

type TransactionsModel struct {
	CommonModel
	app    *state.App
	store  Store
	ledger *ledger.Ledger

	state        txState
	periodPicker PeriodPicker
	period       balance.Period
	list         list.Model
	form         *huh.Form
	txs          []*state.Transaction
	selectedTx   *state.Transaction

	status string

	// Form field bindings
	formAccount  string
	formTo       string
	formType     string
	formAmount   string
	formDate     string
	formDesc     string
	formCategory string
}

func NewTransactionsModel(app *state.App, store Store) TransactionsModel {
	l := list.New([]list.Item{}, txItemDelegate{}, 0, 0)
	l.Title = "Transactions"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return TransactionsModel{
		app:          app,
		store:        store,
		ledger:       ledger.New(app),
		periodPicker: NewPeriodPicker(balance.PeriodMonth),
		list:         l,
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStatePeriod:
		return "Esc: back | Enter: select"
	case txStateList:
		return "a: add | Enter: edit | x: delete | /: filter | Esc: back"
	case txStateEditing:
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return ""
}

func (m TransactionsModel) Init() tea.Cmd {
	return nil
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PeriodSelectedMsg:
		m.period = msg.Period
		m.state = txStateList
		m.refreshListItems()

		return m, nil

	case SaveDoneMsg:
		if msg.Err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.Err)
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case txStatePeriod:
		return m.updatePeriod(msg)
	case txStateList:
		return m.updateList(msg)
	case txStateEditing:
		return m.updateEditing(msg)
	}

	return m, nil
}

func (m TransactionsModel) updatePeriod(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.periodPicker, cmd = m.periodPicker.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		filtering := m.list.FilterState() == list.Filtering

		switch {
		case keyMsg.Type == tea.KeyEsc && !filtering:
			m.state = txStatePeriod
			return m, nil
		case keyMsg.Type == tea.KeyEnter && !filtering:
			return m.startEditing()
		case keyMsg.String() == "a" && !filtering:
			return m.startAdding()
		case keyMsg.String() == "x" && !filtering:
			return m.deleteSelected()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m TransactionsModel) deleteSelected() (tea.Model, tea.Cmd) {
	selected, ok := m.list.SelectedItem().(txItem)
	if !ok {
		return m, nil
	}

	if err := m.ledger.DeleteTransaction(selected.tx.ID); err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return m, nil
	}

	m.status = "Deleted."
	m.refreshListItems()

	return m, SaveCmd(m.store, m.app)
}

func (m TransactionsModel) startAdding() (tea.Model, tea.Cmd) {
	if len(m.app.Accounts) == 0 {
		m.status = "Add an account first."
		return m, nil
	}

	m.selectedTx = nil
	m.formAccount = m.app.Accounts[0].ID.String()
	m.formTo = ""
	m.formType = string(state.TypeExpense)
	m.formAmount = ""
	m.formDate = FormatDate(time.Now())
	m.formDesc = ""
	m.formCategory = ""

	return m.buildForm()
}

func (m TransactionsModel) startEditing() (tea.Model, tea.Cmd) {
	selected, ok := m.list.SelectedItem().(txItem)
	if !ok {
		return m, nil
	}

	tx := selected.tx
	m.selectedTx = tx
	m.formAccount = tx.AccountID.String()
	m.formTo = ""
	m.formType = string(tx.Type)
	m.formAmount = FormatAmount(tx.Amount)
	m.formDate = FormatDate(tx.Date)
	m.formDesc = tx.Description
	m.formCategory = tx.CategoryID.String()

	if tx.ToAccountID != nil {
		m.formTo = tx.ToAccountID.String()
	}

	return m.buildForm()
}

func (m TransactionsModel) buildForm() (tea.Model, tea.Cmd) {
	accountOptions := make([]huh.Option[string], 0, len(m.app.Accounts))
	for _, acc := range m.app.Accounts {
		accountOptions = append(accountOptions, huh.NewOption(acc.Name, acc.ID.String()))
	}

	toOptions := append([]huh.Option[string]{huh.NewOption("(none)", "")}, accountOptions...)

	categoryOptions := make([]huh.Option[string], 0, len(m.app.Categories))
	for _, c := range m.app.Categories {
		categoryOptions = append(categoryOptions, huh.NewOption(c.Name, c.ID.String()))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("account").
				Title("Account").
				Options(accountOptions...).
				Value(&m.formAccount),

			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", string(state.TypeExpense)),
					huh.NewOption("Income", string(state.TypeIncome)),
					huh.NewOption("Transfer", string(state.TypeTransfer)),
				).
				Value(&m.formType),

			huh.NewSelect[string]().
				Key("to_account").
				Title("Transfer To (transfers only)").
				Options(toOptions...).
				Value(&m.formTo),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.formAmount).
				Validate(validateAmount),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(categoryOptions...).
				Value(&m.formCategory),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = txStateEditing

	return m, m.form.Init()
}

func (m TransactionsModel) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = txStateList
			m.form = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m.submitForm()
}

func (m TransactionsModel) submitForm() (tea.Model, tea.Cmd) {
	params, err := m.formParams()

	m.state = txStateList
	m.form = nil

	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return m, nil
	}

	if m.selectedTx != nil {
		_, err = m.ledger.UpdateTransaction(m.selectedTx.ID, params)
	} else {
		_, err = m.ledger.CreateTransaction(params)
	}

	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return m, nil
	}

	m.status = "Saved."
	m.refreshListItems()

	return m, SaveCmd(m.store, m.app)
}

func (m TransactionsModel) formParams() (ledger.CreateTransactionParams, error) {
	accountID, err := uuid.Parse(m.formAccount)
	if err != nil {
		return ledger.CreateTransactionParams{}, fmt.Errorf("invalid account")
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(m.formDate))
	if err != nil {
		return ledger.CreateTransactionParams{}, fmt.Errorf("invalid date")
	}

	params := ledger.CreateTransactionParams{
		AccountID:   accountID,
		Date:        date,
		Description: strings.TrimSpace(m.formDesc),
		Amount:      parseAmount(m.formAmount),
		Type:        state.TransactionType(m.formType),
	}

	if m.formCategory != "" {
		if id, err := uuid.Parse(m.formCategory); err == nil {
			params.CategoryID = id
		}
	}

	if params.Type == state.TypeTransfer && m.formTo != "" {
		if id, err := uuid.Parse(m.formTo); err == nil {
			params.ToAccountID = &id
		}
	}

	return params, nil
}

func (m *TransactionsModel) refreshListItems() {
	start := balance.Start(m.period, time.Now(), m.app.Accounts)

	m.txs = m.txs[:0]

	for _, tx := range m.app.Transactions {
		if tx.Date.Before(start) {
			continue
		}

		m.txs = append(m.txs, tx)
	}

	// Newest first.
	sort.SliceStable(m.txs, func(i, j int) bool {
		return m.txs[i].Date.After(m.txs[j].Date)
	})

	items := make([]list.Item, len(m.txs))
	for i, tx := range m.txs {
		items[i] = txItem{tx: tx, app: m.app}
	}

	m.list.SetItems(items)

	if len(items) == 0 {
		m.status = "No transactions in this period."
	}
}

func (m TransactionsModel) View() string {
	switch m.state {
	case txStatePeriod:
		return lipgloss.NewStyle().Padding(1).Render(m.periodPicker.View())

	case txStateList:
		statusLine := ""
		if m.status != "" {
			statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())

	case txStateEditing:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	return ""
}

// txItemDelegate renders items in the list.
type txItemDelegate struct{}

func (d txItemDelegate) Height() int                             { return 2 }
func (d txItemDelegate) Spacing() int                            { return 0 }
func (d txItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d txItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(txItem)
	if !ok {
		return
	}

	title := i.Title()
	desc := i.Description()

	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)

	if desc == "" {
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(desc))
}
