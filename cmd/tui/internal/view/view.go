package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/artha/internal/state"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// Store persists the whole state after a mutation.
type Store interface {
	Save(app *state.App) error
}

// SaveDoneMsg reports the outcome of a background save.
type SaveDoneMsg struct {
	Err error
}

// SaveCmd writes the state in the background. Views mutate the shared
// state synchronously and then fire this once per user action.
func SaveCmd(store Store, app *state.App) tea.Cmd {
	return func() tea.Msg {
		return SaveDoneMsg{Err: store.Save(app)}
	}
}
