package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/artha/internal/balance"
	"github.com/MrJamesThe3rd/artha/internal/chart"
	"github.com/MrJamesThe3rd/artha/internal/portfolio"
	"github.com/MrJamesThe3rd/artha/internal/state"
)

const cashFlowMonths = 3

var sparks = []rune("▁▂▃▄▅▆▇█")

type DashboardModel struct {
	CommonModel
	app *state.App

	period balance.Period
	series balance.Series
}

func NewDashboardModel(app *state.App) DashboardModel {
	m := DashboardModel{
		app:    app,
		period: balance.PeriodMonth,
	}
	m.reload()

	return m
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	return "←/→: change period | Esc: back"
}

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

func (m *DashboardModel) reload() {
	m.series = balance.Reconstruct(m.app.Accounts, m.app.Transactions, m.period, time.Now())
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyEsc:
		return m, Back
	case tea.KeyLeft:
		m.period = cyclePeriod(m.period, -1)
		m.reload()
	case tea.KeyRight:
		m.period = cyclePeriod(m.period, 1)
		m.reload()
	}

	return m, nil
}

func cyclePeriod(current balance.Period, step int) balance.Period {
	periods := balance.Periods()

	for i, p := range periods {
		if p == current {
			return periods[(i+step+len(periods))%len(periods)]
		}
	}

	return current
}

func (m DashboardModel) View() string {
	if len(m.app.Accounts) == 0 {
		return lipgloss.NewStyle().Padding(2).Render(
			"No accounts yet. Add one from the Accounts view.\n\n(Esc to go back)",
		)
	}

	var b strings.Builder

	header := fmt.Sprintf("%s  ·  %s", m.series.Label, m.period.String())
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(header) + "\n\n")

	balanceStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.series.Color))
	values := make([]int64, 0, len(m.series.Points))
	for _, p := range m.series.Points {
		values = append(values, p.Balance)
	}

	b.WriteString(balanceStyle.Render(FormatAmount(m.series.Final())) + "\n")
	b.WriteString(balanceStyle.Render(sparkline(values, 40)) + "\n\n")

	b.WriteString("Accounts\n")

	for _, acc := range m.app.Accounts {
		b.WriteString(fmt.Sprintf("  %-24s %12s\n", acc.Name, FormatAmount(acc.Balance)))
	}

	if total := portfolio.Summarize(m.app.Portfolios); total.Current != 0 {
		b.WriteString(fmt.Sprintf("\nInvestments %18s (%s)\n",
			FormatAmount(total.Current), FormatSigned(total.Gain)))
	}

	b.WriteString("\nCash Flow\n")

	for _, flow := range chart.CashFlow(m.app.Transactions, cashFlowMonths, time.Now()) {
		b.WriteString(fmt.Sprintf("  %-10s in %12s   out %12s\n",
			flow.Label, FormatAmount(flow.Income), FormatAmount(flow.Expense)))
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	if spends := chart.SpendingByCategory(m.app, monthStart, now); len(spends) > 0 {
		b.WriteString("\nSpending This Month\n")

		for i, spend := range spends {
			if i == 5 {
				break
			}

			b.WriteString(fmt.Sprintf("  %-24s %12s\n", spend.Category, FormatAmount(spend.Amount)))
		}
	}

	b.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// sparkline squeezes the values into a fixed-width run of block glyphs.
func sparkline(values []int64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}

		if v > hi {
			hi = v
		}
	}

	if width > len(values) {
		width = len(values)
	}

	out := make([]rune, width)

	for i := range out {
		v := values[i*len(values)/width]

		level := 0
		if hi > lo {
			level = int(int64(len(sparks)-1) * (v - lo) / (hi - lo))
		}

		out[i] = sparks[level]
	}

	return string(out)
}
