package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/artha/internal/chart"
	"github.com/MrJamesThe3rd/artha/internal/portfolio"
	"github.com/MrJamesThe3rd/artha/internal/state"
)

type investmentsState int

const (
	investmentsStateList investmentsState = iota
	investmentsStateAddingPortfolio
	investmentsStateAddingHolding
)

// holdingRef is one selectable row in the grouped listing.
type holdingRef struct {
	holding *state.Holding
	owner   *state.Portfolio
}

type InvestmentsModel struct {
	CommonModel
	app   *state.App
	store Store
	books *portfolio.Books

	state  investmentsState
	cursor int
	rows   []holdingRef
	form   *huh.Form
	growth chart.GrowthPeriod

	status string

	// Form field bindings
	formName     string
	formPType    string
	formKind     string
	formHName    string
	formTicker   string
	formQuantity string
	formBuy      string
	formCurrent  string
}

func NewInvestmentsModel(app *state.App, store Store) InvestmentsModel {
	m := InvestmentsModel{
		app:    app,
		store:  store,
		books:  portfolio.New(app),
		growth: chart.GrowthMax,
	}
	m.refreshRows()

	return m
}

func (m InvestmentsModel) Title() string { return "Investments" }

func (m InvestmentsModel) ShortHelp() string {
	switch m.state {
	case investmentsStateList:
		return "a: add portfolio | h: add holding | x: delete holding | ←/→: growth period | Esc: back"
	}

	return "Esc: cancel | Enter/Tab: navigate form"
}

func (m InvestmentsModel) Init() tea.Cmd {
	return nil
}

func (m *InvestmentsModel) refreshRows() {
	m.rows = m.rows[:0]

	for _, group := range portfolio.GroupByClass(m.app.Portfolios) {
		for _, pg := range group.Portfolios {
			owner := m.app.Portfolio(pg.PortfolioID)
			for _, h := range pg.Holdings {
				m.rows = append(m.rows, holdingRef{holding: h, owner: owner})
			}
		}
	}

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}

	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m InvestmentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if saved, ok := msg.(SaveDoneMsg); ok {
		if saved.Err != nil {
			m.status = fmt.Sprintf("Error saving: %v", saved.Err)
		}

		return m, nil
	}

	switch m.state {
	case investmentsStateList:
		return m.updateList(msg)
	case investmentsStateAddingPortfolio, investmentsStateAddingHolding:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m InvestmentsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "left":
		m.growth = cycleGrowthPeriod(m.growth, -1)
	case "right":
		m.growth = cycleGrowthPeriod(m.growth, 1)
	case "a":
		return m.startAddingPortfolio()
	case "h":
		if len(m.rows) == 0 {
			return m.startAddingPortfolio()
		}

		return m.startAddingHolding()
	case "x":
		return m.deleteSelected()
	}

	return m, nil
}

func cycleGrowthPeriod(current chart.GrowthPeriod, step int) chart.GrowthPeriod {
	periods := chart.GrowthPeriods()

	for i, p := range periods {
		if p == current {
			return periods[(i+step+len(periods))%len(periods)]
		}
	}

	return current
}

func (m InvestmentsModel) deleteSelected() (tea.Model, tea.Cmd) {
	if m.cursor >= len(m.rows) {
		return m, nil
	}

	if err := m.books.DeleteHolding(m.rows[m.cursor].holding.ID); err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return m, nil
	}

	m.status = "Holding deleted."
	m.refreshRows()

	return m, SaveCmd(m.store, m.app)
}

func (m *InvestmentsModel) resetHoldingFields() {
	m.formKind = string(state.HoldingEquity)
	m.formHName = ""
	m.formTicker = ""
	m.formQuantity = "0"
	m.formBuy = "0"
	m.formCurrent = "0"
}

func holdingGroup(m *InvestmentsModel) *huh.Group {
	return huh.NewGroup(
		huh.NewSelect[string]().
			Key("kind").
			Title("Instrument").
			Options(
				huh.NewOption("Equity", string(state.HoldingEquity)),
				huh.NewOption("Mutual Fund", string(state.HoldingMutualFund)),
				huh.NewOption("Bond", string(state.HoldingBond)),
				huh.NewOption("Fixed Deposit", string(state.HoldingFD)),
				huh.NewOption("P2P Lending", string(state.HoldingP2P)),
				huh.NewOption("EPF", string(state.HoldingEPF)),
				huh.NewOption("NPS", string(state.HoldingNPS)),
				huh.NewOption("Superannuation", string(state.HoldingSuperannuation)),
				huh.NewOption("RSU", string(state.HoldingRSU)),
				huh.NewOption("ESOP", string(state.HoldingESOP)),
				huh.NewOption("Gold", string(state.HoldingGold)),
				huh.NewOption("Crypto", string(state.HoldingCrypto)),
				huh.NewOption("Other", string(state.HoldingOther)),
			).
			Value(&m.formKind),

		huh.NewInput().
			Key("holding_name").
			Title("Holding Name").
			Value(&m.formHName).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("name cannot be empty")
				}
				return nil
			}),

		huh.NewInput().
			Key("ticker").
			Title("Ticker (optional)").
			Value(&m.formTicker),

		huh.NewInput().
			Key("quantity").
			Title("Quantity").
			Value(&m.formQuantity).
			Validate(func(s string) error {
				if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
					return fmt.Errorf("enter a number")
				}
				return nil
			}),

		huh.NewInput().
			Key("buy_value").
			Title("Buy Value").
			Value(&m.formBuy).
			Validate(validateAmount),

		huh.NewInput().
			Key("current_value").
			Title("Current Value").
			Value(&m.formCurrent).
			Validate(validateAmount),
	)
}

func (m InvestmentsModel) startAddingPortfolio() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formPType = string(state.PortfolioBrokerage)
	m.resetHoldingFields()

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Portfolio Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("type").
				Title("Portfolio Type").
				Options(
					huh.NewOption("Brokerage", string(state.PortfolioBrokerage)),
					huh.NewOption("Fixed Income", string(state.PortfolioFixedIncome)),
					huh.NewOption("Employee Benefit", string(state.PortfolioEmployeeBenefit)),
					huh.NewOption("Other Asset", string(state.PortfolioOtherAsset)),
				).
				Value(&m.formPType),
		),
		holdingGroup(&m),
	).WithWidth(50).WithShowHelp(false)

	m.state = investmentsStateAddingPortfolio

	return m, m.form.Init()
}

func (m InvestmentsModel) startAddingHolding() (tea.Model, tea.Cmd) {
	m.resetHoldingFields()

	m.form = huh.NewForm(holdingGroup(&m)).WithWidth(50).WithShowHelp(false)
	m.state = investmentsStateAddingHolding

	return m, m.form.Init()
}

func (m InvestmentsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = investmentsStateList
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

func (m InvestmentsModel) submitForm() (tea.Model, tea.Cmd) {
	quantity, _ := strconv.ParseFloat(strings.TrimSpace(m.formQuantity), 64)

	holding := portfolio.HoldingParams{
		Kind:         state.HoldingKind(m.formKind),
		Name:         m.formHName,
		Ticker:       m.formTicker,
		Quantity:     quantity,
		BuyValue:     parseAmount(m.formBuy),
		CurrentValue: parseAmount(m.formCurrent),
	}

	var err error

	switch m.state {
	case investmentsStateAddingPortfolio:
		_, err = m.books.CreatePortfolio(portfolio.CreatePortfolioParams{
			Name:     m.formName,
			Type:     state.PortfolioType(m.formPType),
			Holdings: []portfolio.HoldingParams{holding},
		})
	case investmentsStateAddingHolding:
		_, err = m.books.AddHolding(m.rows[m.cursor].owner.ID, holding)
	}

	m.state = investmentsStateList
	m.form = nil

	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return m, nil
	}

	m.status = "Saved."
	m.refreshRows()

	return m, SaveCmd(m.store, m.app)
}

func (m InvestmentsModel) View() string {
	if m.state != investmentsStateList {
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	var b strings.Builder

	total := portfolio.Summarize(m.app.Portfolios)
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf(
		"Invested %s   Current %s   P&L %s (%.2f%%)",
		FormatAmount(total.Invested),
		FormatAmount(total.Current),
		FormatSigned(total.Gain),
		total.GainPct,
	)) + "\n")

	if growth := chart.PortfolioGrowth(m.app.PortfolioHistory, m.growth, time.Now()); len(growth.Current) > 0 {
		growthStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(growth.Color))
		b.WriteString(fmt.Sprintf("%s %s\n",
			growthStyle.Render(sparkline(growth.Current, 40)),
			lipgloss.NewStyle().Faint(true).Render(m.growth.String())))
	}

	idx := 0

	for _, group := range portfolio.GroupByClass(m.app.Portfolios) {
		b.WriteString(fmt.Sprintf("\n%s  (%s)\n",
			lipgloss.NewStyle().Bold(true).Render(string(group.Class)),
			FormatSigned(group.Gain)))

		for _, pg := range group.Portfolios {
			b.WriteString(fmt.Sprintf("  %s · %s\n", pg.Name, pg.TypeLabel))

			for _, h := range pg.Holdings {
				metrics := portfolio.Compute(h)

				line := fmt.Sprintf("    %-24s %12s  %s",
					h.Name, FormatAmount(h.CurrentValue), FormatSigned(metrics.PL))

				if idx == m.cursor {
					line = lipgloss.NewStyle().
						Foreground(lipgloss.Color("205")).
						Bold(true).
						Render("> " + strings.TrimPrefix(line, "  "))
				}

				b.WriteString(line + "\n")
				idx++
			}
		}
	}

	if idx == 0 {
		b.WriteString("\nNo holdings yet. Press a to add a portfolio.\n")
	}

	if m.status != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render(m.status))
	}

	b.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()))

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}
