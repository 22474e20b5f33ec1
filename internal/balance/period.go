package balance

import (
	"time"

	"github.com/MrJamesThe3rd/artha/internal/state"
)

// Period is a named chart window anchored at a reference day.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodMax   Period = "max"
)

func (p Period) String() string {
	switch p {
	case PeriodDay:
		return "Today"
	case PeriodWeek:
		return "7 Days"
	case PeriodMonth:
		return "This Month"
	case PeriodYear:
		return "This Year"
	case PeriodMax:
		return "All Time"
	}

	return "Unknown"
}

// Periods lists all chart windows in display order.
func Periods() []Period {
	return []Period{PeriodDay, PeriodWeek, PeriodMonth, PeriodYear, PeriodMax}
}

// Start returns the window start for the period, always truncated to
// midnight. PeriodMax starts at the earliest account creation date;
// with no accounts it degrades to the reference day.
func Start(p Period, ref time.Time, accounts []*state.Account) time.Time {
	switch p {
	case PeriodWeek:
		return midnight(ref.AddDate(0, 0, -7))
	case PeriodMonth:
		return time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	case PeriodYear:
		return time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location())
	case PeriodMax:
		if len(accounts) == 0 {
			return midnight(ref)
		}

		earliest := accounts[0].CreatedAt
		for _, acc := range accounts[1:] {
			if acc.CreatedAt.Before(earliest) {
				earliest = acc.CreatedAt
			}
		}

		return midnight(earliest)
	}

	return midnight(ref)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
