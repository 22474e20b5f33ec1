package balance

import (
	"time"

	"github.com/MrJamesThe3rd/artha/internal/ledger"
	"github.com/MrJamesThe3rd/artha/internal/state"
)

const (
	colorPositive = "#5BB974"
	colorNegative = "#F0857D"

	netWorthLabel = "Net Liquid Worth"
)

// Point is one day of the reconstructed balance series.
type Point struct {
	Date    time.Time `json:"date"`
	Balance int64     `json:"balance"`
}

// Series is a chart-ready balance history for one account or a group.
type Series struct {
	Label  string  `json:"label"`
	Color  string  `json:"color"`
	Points []Point `json:"points"`
}

// Final returns the last balance in the series, or zero when empty.
func (s Series) Final() int64 {
	if len(s.Points) == 0 {
		return 0
	}

	return s.Points[len(s.Points)-1].Balance
}

// Reconstruct derives a daily balance series for the given accounts
// from their starting balances and the transaction stream.
//
// Each account is seeded with its starting balance, transactions dated
// before the window start (and on or after the account's creation) are
// replayed to position the balance at the window edge, and the series
// then walks day by day to the reference day inclusive, emitting one
// point per day whether or not anything changed. Transactions dated
// before an account's creation never count toward it.
func Reconstruct(accounts []*state.Account, txs []*state.Transaction, period Period, ref time.Time) Series {
	if len(accounts) == 0 {
		return Series{}
	}

	start := Start(period, ref, accounts)
	end := midnight(ref)

	var running int64

	// Per-day deltas inside the window, keyed by calendar day in ref's
	// zone so a transaction stored in another zone lands on the same
	// day the walk visits.
	deltas := make(map[string]int64)

	for _, acc := range accounts {
		running += acc.StartingBalance

		for _, tx := range txs {
			amt := ledger.SignedAmount(tx, acc.ID)
			if amt == 0 || tx.Date.Before(acc.CreatedAt) {
				continue
			}

			if tx.Date.Before(start) {
				running += amt
				continue
			}

			deltas[tx.Date.In(ref.Location()).Format(time.DateOnly)] += amt
		}
	}

	series := Series{Label: netWorthLabel}
	if len(accounts) == 1 {
		series.Label = accounts[0].Name
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		running += deltas[d.Format(time.DateOnly)]
		series.Points = append(series.Points, Point{Date: d, Balance: running})
	}

	series.Color = colorPositive
	if series.Final() < 0 {
		series.Color = colorNegative
	}

	return series
}
