package chart

import (
	"sort"
	"time"

	"github.com/MrJamesThe3rd/artha/internal/balance"
	"github.com/MrJamesThe3rd/artha/internal/state"
)

// BalanceChart is a balance series flattened into parallel label and
// value slices, ready for any line-chart frontend.
type BalanceChart struct {
	Label  string   `json:"label"`
	Color  string   `json:"color"`
	Labels []string `json:"labels"`
	Values []int64  `json:"values"`
}

// FromSeries shapes a reconstructed balance series into chart input.
func FromSeries(s balance.Series) BalanceChart {
	c := BalanceChart{
		Label:  s.Label,
		Color:  s.Color,
		Labels: make([]string, 0, len(s.Points)),
		Values: make([]int64, 0, len(s.Points)),
	}

	for _, p := range s.Points {
		c.Labels = append(c.Labels, p.Date.Format("Jan 2"))
		c.Values = append(c.Values, p.Balance)
	}

	return c
}

// GrowthPeriod selects the window of the investments growth chart.
type GrowthPeriod string

const (
	Growth1M  GrowthPeriod = "1m"
	Growth6M  GrowthPeriod = "6m"
	Growth1Y  GrowthPeriod = "1y"
	GrowthMax GrowthPeriod = "max"
)

// GrowthPeriods lists the windows in display order.
func GrowthPeriods() []GrowthPeriod {
	return []GrowthPeriod{Growth1M, Growth6M, Growth1Y, GrowthMax}
}

func (p GrowthPeriod) String() string {
	switch p {
	case Growth1M:
		return "1M"
	case Growth6M:
		return "6M"
	case Growth1Y:
		return "1Y"
	case GrowthMax:
		return "Max"
	}

	return "Unknown"
}

// GrowthChart is the portfolio history shaped into parallel slices:
// one line for current value, one for total invested.
type GrowthChart struct {
	Color    string   `json:"color"`
	Labels   []string `json:"labels"`
	Current  []int64  `json:"current_value"`
	Invested []int64  `json:"total_invested"`
}

// Final returns the last current value, or zero when empty.
func (c GrowthChart) Final() int64 {
	if len(c.Current) == 0 {
		return 0
	}

	return c.Current[len(c.Current)-1]
}

// PortfolioGrowth windows the recorded portfolio history to the given
// period ending at ref. The line is green when the windowed current
// value grew, red when it shrank.
func PortfolioGrowth(history []*state.PortfolioHistoryPoint, period GrowthPeriod, ref time.Time) GrowthChart {
	c := GrowthChart{Color: "#5BB974"}

	if len(history) == 0 {
		return c
	}

	var start time.Time

	switch period {
	case Growth1M:
		start = ref.AddDate(0, -1, 0)
	case Growth6M:
		start = ref.AddDate(0, -6, 0)
	case Growth1Y:
		start = ref.AddDate(-1, 0, 0)
	default:
		start = history[0].Date
	}

	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, ref.Location())

	for _, p := range history {
		if p.Date.Before(start) {
			continue
		}

		c.Labels = append(c.Labels, p.Date.Format("Jan 2, 2006"))
		c.Current = append(c.Current, p.CurrentValue)
		c.Invested = append(c.Invested, p.TotalInvested)
	}

	if len(c.Current) > 0 && c.Final() < c.Current[0] {
		c.Color = "#F0857D"
	}

	return c
}

// MonthFlow is one month's income and expense totals.
type MonthFlow struct {
	Month   time.Time `json:"month"` // first day of the month
	Label   string    `json:"label"`
	Income  int64     `json:"income"`
	Expense int64     `json:"expense"`
}

// CashFlow sums income and expenses per calendar month for the last
// n months ending at ref's month, oldest first. Transfers move money
// between accounts without being either, so they are ignored.
func CashFlow(txs []*state.Transaction, n int, ref time.Time) []MonthFlow {
	if n <= 0 {
		return nil
	}

	flows := make([]MonthFlow, n)
	index := make(map[string]int, n)

	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location()).AddDate(0, -(n - 1), 0)

	for i := range flows {
		month := first.AddDate(0, i, 0)
		flows[i] = MonthFlow{Month: month, Label: month.Format("Jan 2006")}
		index[month.Format("2006-01")] = i
	}

	for _, tx := range txs {
		i, ok := index[tx.Date.Format("2006-01")]
		if !ok {
			continue
		}

		switch tx.Type {
		case state.TypeIncome:
			flows[i].Income += tx.Amount
		case state.TypeExpense:
			flows[i].Expense += tx.Amount
		}
	}

	return flows
}

// CategorySpend is one category's expense total within a window.
type CategorySpend struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

// SpendingByCategory totals expenses per category name over [from, to],
// largest first. Unknown category ids fall under Uncategorized.
func SpendingByCategory(app *state.App, from, to time.Time) []CategorySpend {
	totals := make(map[string]int64)

	for _, tx := range app.Transactions {
		if tx.Type != state.TypeExpense {
			continue
		}

		if tx.Date.Before(from) || tx.Date.After(to) {
			continue
		}

		name := state.CategoryUncategorized
		if c := app.Category(tx.CategoryID); c != nil {
			name = c.Name
		}

		totals[name] += tx.Amount
	}

	spends := make([]CategorySpend, 0, len(totals))
	for name, amount := range totals {
		spends = append(spends, CategorySpend{Category: name, Amount: amount})
	}

	sort.Slice(spends, func(i, j int) bool {
		if spends[i].Amount != spends[j].Amount {
			return spends[i].Amount > spends[j].Amount
		}

		return spends[i].Category < spends[j].Category
	})

	return spends
}
