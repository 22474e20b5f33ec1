package view

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/artha/internal/importer"
	"github.com/MrJamesThe3rd/artha/internal/state"
)

type importState int

const (
	importStateAccountSelect importState = iota
	importStateFilePick
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	app           *state.App
	store         Store
	importService *importer.Service

	state         importState
	filePicker    filepicker.Model
	accountCursor int

	status string
	err    error
}

func NewImportModel(app *state.App, store Store, impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.AllowedTypes = []string{".csv"}
	fp.SetHeight(15)

	return ImportModel{
		app:           app,
		store:         store,
		importService: impSvc,
		filePicker:    fp,
	}
}

func (m ImportModel) Title() string { return "Import Statement" }

func (m ImportModel) ShortHelp() string {
	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) selectedAccount() *state.Account {
	if m.accountCursor >= len(m.app.Accounts) {
		return nil
	}

	return m.app.Accounts[m.accountCursor]
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateAccountSelect {
			return m.updateAccountSelect(msg)
		}

	case importResultMsg:
		m.state = importStateResult

		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d transactions (%d rows skipped).", msg.imported, msg.skipped)

		return m, SaveCmd(m.store, m.app)

	case SaveDoneMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.status = fmt.Sprintf("Error saving: %v", msg.Err)
		}

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick:
		m.state = importStateAccountSelect
		return m, nil
	case importStateResult:
		m.state = importStateAccountSelect
		m.err = nil
		m.status = ""

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateAccountSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.accountCursor > 0 {
			m.accountCursor--
		}
	case tea.KeyDown:
		if m.accountCursor < len(m.app.Accounts)-1 {
			m.accountCursor++
		}
	case tea.KeyEnter:
		if m.selectedAccount() == nil {
			return m, nil
		}

		m.state = importStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateAccountSelect:
		return m.viewAccountSelect()
	case importStateFilePick:
		return m.viewFilePick()
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewAccountSelect() string {
	if len(m.app.Accounts) == 0 {
		return lipgloss.NewStyle().Padding(2).Render(
			"No accounts yet. Add one from the Accounts view.\n\n(Esc to go back)",
		)
	}

	s := "Import into account:\n\n"

	for i, acc := range m.app.Accounts {
		cursor := " "
		if i == m.accountCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s (%s)\n", cursor, acc.Name, FormatAmount(acc.Balance))
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m ImportModel) viewFilePick() string {
	account := ""
	if acc := m.selectedAccount(); acc != nil {
		account = acc.Name
	}

	return lipgloss.NewStyle().Padding(1).Render(
		fmt.Sprintf("Select CSV to import into %s:\n\n%s", account, m.filePicker.View()),
	)
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) +
				"\n\n(Esc to go back)",
		)
	}

	return style.Render(
		lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(m.status) +
			"\n\n(Esc to go back)",
	)
}

// Messages

type importResultMsg struct {
	imported int
	skipped  int
	err      error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	app := m.app
	svc := m.importService
	account := m.selectedAccount()

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		result, err := svc.Parse(importer.FormatLedger, f)
		if err != nil {
			return importResultMsg{err: err}
		}

		imported, err := svc.Apply(app, account.ID, result.Rows)
		if err != nil {
			return importResultMsg{imported: imported, err: err}
		}

		return importResultMsg{imported: imported, skipped: result.Skipped}
	}
}
