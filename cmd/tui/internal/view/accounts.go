package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/artha/internal/ledger"
	"github.com/MrJamesThe3rd/artha/internal/state"
)

type accountsState int

const (
	accountsStateList accountsState = iota
	accountsStateAdding
	accountsStateConfirmDelete
)

type AccountsModel struct {
	CommonModel
	app    *state.App
	store  Store
	ledger *ledger.Ledger

	state accountsState
	table table.Model
	form  *huh.Form

	status string

	// Form field bindings
	formName    string
	formType    string
	formBalance string
	formNumber  string
	formConfirm bool
}

func NewAccountsModel(app *state.App, store Store) AccountsModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 24},
			{Title: "Type", Width: 12},
			{Title: "Balance", Width: 14},
			{Title: "Number", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	m := AccountsModel{
		app:    app,
		store:  store,
		ledger: ledger.New(app),
		table:  t,
	}
	m.refreshRows()

	return m
}

func (m AccountsModel) Title() string { return "Accounts" }

func (m AccountsModel) ShortHelp() string {
	switch m.state {
	case accountsStateList:
		return "a: add | d: delete | Esc: back"
	}

	return "Esc: cancel | Enter/Tab: navigate form"
}

func (m AccountsModel) Init() tea.Cmd {
	return nil
}

func (m *AccountsModel) refreshRows() {
	rows := make([]table.Row, len(m.app.Accounts))
	for i, acc := range m.app.Accounts {
		rows[i] = table.Row{acc.Name, string(acc.Type), FormatAmount(acc.Balance), acc.Number}
	}

	m.table.SetRows(rows)
}

func (m AccountsModel) selectedAccount() *state.Account {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.app.Accounts) {
		return nil
	}

	return m.app.Accounts[idx]
}

func (m AccountsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if saved, ok := msg.(SaveDoneMsg); ok {
		if saved.Err != nil {
			m.status = fmt.Sprintf("Error saving: %v", saved.Err)
		}

		return m, nil
	}

	switch m.state {
	case accountsStateList:
		return m.updateList(msg)
	case accountsStateAdding:
		return m.updateAdding(msg)
	case accountsStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m AccountsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "a":
			return m.startAdding()
		case "d":
			if m.selectedAccount() == nil {
				return m, nil
			}

			return m.startConfirmDelete()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m AccountsModel) startAdding() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formType = string(state.AccountSavings)
	m.formBalance = "0"
	m.formNumber = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Savings", string(state.AccountSavings)),
					huh.NewOption("Credit Card", string(state.AccountCreditCard)),
					huh.NewOption("Cash", string(state.AccountCash)),
					huh.NewOption("Loan", string(state.AccountLoan)),
				).
				Value(&m.formType),

			huh.NewInput().
				Key("balance").
				Title("Starting Balance").
				Value(&m.formBalance).
				Validate(validateAmount),

			huh.NewInput().
				Key("number").
				Title("Account Number (optional)").
				Placeholder("last 4 digits").
				Value(&m.formNumber),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = accountsStateAdding

	return m, m.form.Init()
}

func (m AccountsModel) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = accountsStateList
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

	_, err := m.ledger.CreateAccount(ledger.CreateAccountParams{
		Name:            m.formName,
		Type:            state.AccountType(m.formType),
		StartingBalance: parseAmount(m.formBalance),
		Number:          m.formNumber,
	})

	m.state = accountsStateList
	m.form = nil

	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return m, nil
	}

	m.status = "Account added."
	m.refreshRows()

	return m, SaveCmd(m.store, m.app)
}

func (m AccountsModel) startConfirmDelete() (tea.Model, tea.Cmd) {
	acc := m.selectedAccount()
	m.formConfirm = false

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete %q and all its transactions?", acc.Name)).
				Affirmative("Delete").
				Negative("Keep").
				Value(&m.formConfirm),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = accountsStateConfirmDelete

	return m, m.form.Init()
}

func (m AccountsModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = accountsStateList
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

	confirmed := m.formConfirm
	acc := m.selectedAccount()

	m.state = accountsStateList
	m.form = nil

	if !confirmed || acc == nil {
		return m, nil
	}

	if err := m.ledger.DeleteAccount(acc.ID); err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return m, nil
	}

	m.status = "Account deleted."
	m.refreshRows()

	return m, SaveCmd(m.store, m.app)
}

func (m AccountsModel) View() string {
	switch m.state {
	case accountsStateAdding, accountsStateConfirmDelete:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	statusLine := ""
	if m.status != "" {
		statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
	}

	help := lipgloss.NewStyle().Faint(true).Render(m.ShortHelp())

	return lipgloss.NewStyle().Padding(1).Render(
		statusLine + m.table.View() + "\n\n" + help,
	)
}

func validateAmount(s string) error {
	if _, err := decimal.NewFromString(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("enter a number, e.g. 1250.50")
	}

	return nil
}

// parseAmount converts a validated decimal string into cents.
func parseAmount(s string) int64 {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
