package portfolio

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/artha/internal/state"
)

// Rollup is an invested/current/P&L triple used at every grouping level.
type Rollup struct {
	Invested int64   `json:"invested"`
	Current  int64   `json:"current"`
	Gain     int64   `json:"gain"`
	GainPct  float64 `json:"gain_pct"`
}

func (r *Rollup) add(h *state.Holding) {
	r.Invested += h.BuyValue
	r.Current += h.CurrentValue
}

func (r *Rollup) finish() {
	r.Gain = r.Current - r.Invested
	if r.Invested > 0 {
		r.GainPct = float64(r.Gain) / float64(r.Invested) * 100
	}
}

// Summarize computes the top-line KPIs across all portfolios.
func Summarize(portfolios []*state.Portfolio) Rollup {
	var total Rollup

	for _, p := range portfolios {
		for _, h := range p.Holdings {
			total.add(h)
		}
	}

	total.finish()

	return total
}

// PortfolioGroup is one portfolio's slice of an asset class.
type PortfolioGroup struct {
	PortfolioID uuid.UUID        `json:"portfolio_id"`
	Name        string           `json:"name"`
	TypeLabel   string           `json:"type_label"`
	Holdings    []*state.Holding `json:"holdings"`
	Rollup
}

// ClassGroup is all holdings of one asset class, sub-grouped by the
// portfolio that owns them.
type ClassGroup struct {
	Class      AssetClass       `json:"class"`
	Portfolios []PortfolioGroup `json:"portfolios"`
	Rollup
}

// GroupByClass partitions every holding by asset class and, within a
// class, by owning portfolio. Classes with no holdings are omitted.
// The class rollups always sum to the Summarize totals.
func GroupByClass(portfolios []*state.Portfolio) []ClassGroup {
	byClass := make(map[AssetClass]map[uuid.UUID]*PortfolioGroup)

	for _, p := range portfolios {
		for _, h := range p.Holdings {
			class := ClassOf(h.Kind)

			groups, ok := byClass[class]
			if !ok {
				groups = make(map[uuid.UUID]*PortfolioGroup)
				byClass[class] = groups
			}

			pg, ok := groups[p.ID]
			if !ok {
				pg = &PortfolioGroup{
					PortfolioID: p.ID,
					Name:        p.Name,
					TypeLabel:   TypeLabel(p.Type),
				}
				groups[p.ID] = pg
			}

			pg.Holdings = append(pg.Holdings, h)
			pg.add(h)
		}
	}

	var result []ClassGroup

	for _, class := range Classes() {
		groups, ok := byClass[class]
		if !ok {
			continue
		}

		cg := ClassGroup{Class: class}

		// Keep the original portfolio order within the class.
		for _, p := range portfolios {
			pg, ok := groups[p.ID]
			if !ok {
				continue
			}

			pg.finish()
			cg.Portfolios = append(cg.Portfolios, *pg)
			cg.Invested += pg.Invested
			cg.Current += pg.Current
		}

		cg.finish()
		result = append(result, cg)
	}

	return result
}

// Allocation returns the current value held in each asset class.
// Classes with no holdings are absent from the map. Donut chart input;
// iterate Classes() for display order.
func Allocation(portfolios []*state.Portfolio) map[AssetClass]int64 {
	alloc := make(map[AssetClass]int64)

	for _, p := range portfolios {
		for _, h := range p.Holdings {
			alloc[ClassOf(h.Kind)] += h.CurrentValue
		}
	}

	return alloc
}
