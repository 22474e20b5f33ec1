package portfolio

import (
	"math"

	"github.com/MrJamesThe3rd/artha/internal/state"
)

// Metrics are the per-holding display figures. Which fields are
// meaningful depends on the holding kind: market instruments get
// avg cost / LTP / P&L, equity compensation gets vested value, and
// deposits and retirement funds carry their figures in the meta
// structs instead.
type Metrics struct {
	AvgCost     float64 `json:"avg_cost,omitempty"` // cents per unit
	LTP         float64 `json:"ltp,omitempty"`      // cents per unit
	PL          int64   `json:"pl"`
	PLPercent   float64 `json:"pl_percent"`
	VestedValue int64   `json:"vested_value,omitempty"`
}

// Compute derives the display metrics for a holding.
func Compute(h *state.Holding) Metrics {
	switch h.Kind {
	case state.HoldingEquity, state.HoldingMutualFund, state.HoldingBond,
		state.HoldingCrypto, state.HoldingGold, state.HoldingOther:
		return marketMetrics(h)
	case state.HoldingRSU, state.HoldingESOP:
		return vestingMetrics(h)
	}

	// fd/p2p value is assumed static until maturity, and retirement
	// funds only track invested + contributions; no P&L either way.
	return Metrics{}
}

func marketMetrics(h *state.Holding) Metrics {
	m := Metrics{PL: h.CurrentValue - h.BuyValue}

	if h.Quantity > 0 {
		m.AvgCost = float64(h.BuyValue) / h.Quantity
		m.LTP = float64(h.CurrentValue) / h.Quantity
	}

	if h.BuyValue != 0 {
		m.PLPercent = float64(m.PL) / float64(h.BuyValue) * 100
	}

	return m
}

func vestingMetrics(h *state.Holding) Metrics {
	var m Metrics

	if h.Vesting != nil {
		m.VestedValue = int64(math.Round(h.Vesting.VestedUnits * float64(h.Vesting.MarketPrice)))
	}

	m.PL = m.VestedValue - h.BuyValue
	if h.BuyValue != 0 {
		m.PLPercent = float64(m.PL) / float64(h.BuyValue) * 100
	}

	return m
}
