package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/artha/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/artha/internal/config"
	"github.com/MrJamesThe3rd/artha/internal/importer"
	"github.com/MrJamesThe3rd/artha/internal/state"
)

type model struct {
	app           *state.App
	store         *state.FileStore
	importService *importer.Service

	currentView View

	dashboardView   view.DashboardModel
	accountsView    view.AccountsModel
	transactionView view.TransactionsModel
	investmentsView view.InvestmentsModel
	importView      view.ImportModel
}

type View int

const (
	ViewMenu         View = 0
	ViewDashboard    View = 1
	ViewAccounts     View = 2
	ViewTransactions View = 3
	ViewInvestments  View = 4
	ViewImport       View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store := state.NewFileStore(cfg.State.Path)

	app, err := store.Load()
	if err != nil {
		slog.Error("failed to load state", "error", err)
		os.Exit(1)
	}

	impSvc := importer.NewService(cfg.Import.DateFallback)

	return model{
		app:           app,
		store:         store,
		importService: impSvc,
		currentView:   ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.app)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewAccounts
				m.accountsView = view.NewAccountsModel(m.app, m.store)

				return m, m.accountsView.Init()
			case "3":
				m.currentView = ViewTransactions
				m.transactionView = view.NewTransactionsModel(m.app, m.store)

				return m, m.transactionView.Init()
			case "4":
				m.currentView = ViewInvestments
				m.investmentsView = view.NewInvestmentsModel(m.app, m.store)

				return m, m.investmentsView.Init()
			case "5":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.app, m.store, m.importService)

				return m, m.importView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewAccounts:
		var newModel tea.Model
		newModel, cmd = m.accountsView.Update(msg)
		m.accountsView = newModel.(view.AccountsModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionView.Update(msg)
		m.transactionView = newModel.(view.TransactionsModel)
	case ViewInvestments:
		var newModel tea.Model
		newModel, cmd = m.investmentsView.Update(msg)
		m.investmentsView = newModel.(view.InvestmentsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Artha\n\n" +
				"1. Dashboard\n" +
				"2. Accounts\n" +
				"3. Transactions\n" +
				"4. Investments\n" +
				"5. Import Statement\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewAccounts:
		return m.accountsView.View()
	case ViewTransactions:
		return m.transactionView.View()
	case ViewInvestments:
		return m.investmentsView.View()
	case ViewImport:
		return m.importView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
