package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/artha/internal/balance"
)

// PeriodSelectedMsg is emitted when the user picks a chart window.
type PeriodSelectedMsg struct {
	Period balance.Period
}

// PeriodPicker is a reusable component for selecting a chart window.
type PeriodPicker struct {
	periods []balance.Period
	cursor  int
}

// NewPeriodPicker creates a picker with the given window preselected.
func NewPeriodPicker(selected balance.Period) PeriodPicker {
	p := PeriodPicker{periods: balance.Periods()}

	for i, period := range p.periods {
		if period == selected {
			p.cursor = i
			break
		}
	}

	return p
}

func (m PeriodPicker) Init() tea.Cmd {
	return nil
}

// Selected returns the window under the cursor.
func (m PeriodPicker) Selected() balance.Period {
	return m.periods[m.cursor]
}

func (m PeriodPicker) Update(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < len(m.periods)-1 {
			m.cursor++
		}
	case tea.KeyEnter:
		selected := m.periods[m.cursor]

		return m, func() tea.Msg {
			return PeriodSelectedMsg{Period: selected}
		}
	}

	return m, nil
}

func (m PeriodPicker) View() string {
	s := "Select Period:\n\n"

	for i, period := range m.periods {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, period.String())
	}

	s += "\n(Enter to select, Esc to back)"

	return s
}
