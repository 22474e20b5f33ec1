package portfolio_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/artha/internal/portfolio"
	"github.com/MrJamesThe3rd/artha/internal/state"
)

func TestClassOf(t *testing.T) {
	type testCase struct {
		kind state.HoldingKind
		want portfolio.AssetClass
	}

	tests := []testCase{
		{state.HoldingEquity, portfolio.ClassEquity},
		{state.HoldingRSU, portfolio.ClassEquity},
		{state.HoldingESOP, portfolio.ClassEquity},
		{state.HoldingMutualFund, portfolio.ClassMutualFunds},
		{state.HoldingFD, portfolio.ClassFixedIncome},
		{state.HoldingP2P, portfolio.ClassFixedIncome},
		{state.HoldingBond, portfolio.ClassFixedIncome},
		{state.HoldingEPF, portfolio.ClassFixedIncome},
		{state.HoldingNPS, portfolio.ClassFixedIncome},
		{state.HoldingSuperannuation, portfolio.ClassFixedIncome},
		{state.HoldingGold, portfolio.ClassGold},
		{state.HoldingCrypto, portfolio.ClassCrypto},
		{state.HoldingOther, portfolio.ClassOther},
		{state.HoldingKind("mystery"), portfolio.ClassOther},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, portfolio.ClassOf(tt.kind))
		})
	}
}

func TestCompute(t *testing.T) {
	t.Run("MarketHolding", func(t *testing.T) {
		m := portfolio.Compute(&state.Holding{
			Kind:         state.HoldingEquity,
			Quantity:     10,
			BuyValue:     100000,
			CurrentValue: 125000,
		})

		assert.Equal(t, float64(10000), m.AvgCost)
		assert.Equal(t, float64(12500), m.LTP)
		assert.Equal(t, int64(25000), m.PL)
		assert.InDelta(t, 25.0, m.PLPercent, 0.001)
	})

	t.Run("MarketHoldingLoss", func(t *testing.T) {
		m := portfolio.Compute(&state.Holding{
			Kind:         state.HoldingMutualFund,
			BuyValue:     200000,
			CurrentValue: 150000,
		})

		assert.Equal(t, int64(-50000), m.PL)
		assert.InDelta(t, -25.0, m.PLPercent, 0.001)
		assert.Zero(t, m.AvgCost)
	})

	t.Run("Vesting", func(t *testing.T) {
		m := portfolio.Compute(&state.Holding{
			Kind:     state.HoldingRSU,
			BuyValue: 0,
			Vesting: &state.VestingMeta{
				VestedUnits: 50,
				MarketPrice: 15000,
			},
		})

		assert.Equal(t, int64(750000), m.VestedValue)
		assert.Equal(t, int64(750000), m.PL)
	})

	t.Run("FixedDepositHasNoPL", func(t *testing.T) {
		m := portfolio.Compute(&state.Holding{
			Kind:         state.HoldingFD,
			BuyValue:     500000,
			CurrentValue: 500000,
		})

		assert.Equal(t, portfolio.Metrics{}, m)
	})
}

func portfolios() []*state.Portfolio {
	return []*state.Portfolio{
		{
			ID:   uuid.New(),
			Name: "Zerodha",
			Type: state.PortfolioBrokerage,
			Holdings: []*state.Holding{
				{ID: uuid.New(), Kind: state.HoldingEquity, Name: "INFY", BuyValue: 100000, CurrentValue: 120000},
				{ID: uuid.New(), Kind: state.HoldingMutualFund, Name: "Index Fund", BuyValue: 200000, CurrentValue: 210000},
			},
		},
		{
			ID:   uuid.New(),
			Name: "Bank Deposits",
			Type: state.PortfolioFixedIncome,
			Holdings: []*state.Holding{
				{ID: uuid.New(), Kind: state.HoldingFD, Name: "FD 2025", BuyValue: 500000, CurrentValue: 500000},
			},
		},
	}
}

func TestSummarize(t *testing.T) {
	total := portfolio.Summarize(portfolios())

	assert.Equal(t, int64(800000), total.Invested)
	assert.Equal(t, int64(830000), total.Current)
	assert.Equal(t, int64(30000), total.Gain)
	assert.InDelta(t, 3.75, total.GainPct, 0.001)
}

func TestGroupByClass(t *testing.T) {
	pfs := portfolios()
	groups := portfolio.GroupByClass(pfs)

	require.Len(t, groups, 3)
	assert.Equal(t, portfolio.ClassEquity, groups[0].Class)
	assert.Equal(t, portfolio.ClassMutualFunds, groups[1].Class)
	assert.Equal(t, portfolio.ClassFixedIncome, groups[2].Class)

	equity := groups[0]
	require.Len(t, equity.Portfolios, 1)
	assert.Equal(t, "Zerodha", equity.Portfolios[0].Name)
	assert.Equal(t, "Brokerage", equity.Portfolios[0].TypeLabel)
	assert.Equal(t, int64(100000), equity.Invested)

	// Every holding lands in exactly one class, so class rollups
	// partition the totals.
	total := portfolio.Summarize(pfs)

	var invested, current int64
	for _, g := range groups {
		invested += g.Invested
		current += g.Current
	}

	assert.Equal(t, total.Invested, invested)
	assert.Equal(t, total.Current, current)
}

func TestAllocation(t *testing.T) {
	alloc := portfolio.Allocation(portfolios())

	assert.Equal(t, int64(120000), alloc[portfolio.ClassEquity])
	assert.Equal(t, int64(210000), alloc[portfolio.ClassMutualFunds])
	assert.Equal(t, int64(500000), alloc[portfolio.ClassFixedIncome])
	assert.NotContains(t, alloc, portfolio.ClassCrypto)
}

func TestBooks_CreatePortfolio(t *testing.T) {
	app := state.Default()
	b := portfolio.New(app)

	pf, err := b.CreatePortfolio(portfolio.CreatePortfolioParams{
		Name: "Zerodha",
		Type: state.PortfolioBrokerage,
		Holdings: []portfolio.HoldingParams{
			{Kind: state.HoldingEquity, Name: "INFY", Quantity: 5, BuyValue: 100000, CurrentValue: 110000},
		},
	})
	require.NoError(t, err)
	require.Len(t, pf.Holdings, 1)
	assert.NotEqual(t, uuid.Nil, pf.ID)

	_, err = b.CreatePortfolio(portfolio.CreatePortfolioParams{Name: "Empty", Type: state.PortfolioBrokerage})
	assert.ErrorIs(t, err, portfolio.ErrNoHoldings)

	_, err = b.CreatePortfolio(portfolio.CreatePortfolioParams{
		Name:     " ",
		Holdings: []portfolio.HoldingParams{{Kind: state.HoldingEquity, Name: "X"}},
	})
	assert.ErrorIs(t, err, portfolio.ErrEmptyName)
}

func TestBooks_DeleteHolding_CascadesEmptyPortfolio(t *testing.T) {
	app := state.Default()
	b := portfolio.New(app)

	pf, err := b.CreatePortfolio(portfolio.CreatePortfolioParams{
		Name: "Zerodha",
		Type: state.PortfolioBrokerage,
		Holdings: []portfolio.HoldingParams{
			{Kind: state.HoldingEquity, Name: "INFY"},
			{Kind: state.HoldingEquity, Name: "TCS"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, b.DeleteHolding(pf.Holdings[0].ID))
	assert.Len(t, pf.Holdings, 1)
	assert.NotNil(t, app.Portfolio(pf.ID))

	require.NoError(t, b.DeleteHolding(pf.Holdings[0].ID))
	assert.Nil(t, app.Portfolio(pf.ID))
	assert.Empty(t, app.Portfolios)
}

func TestBooks_AddHolding(t *testing.T) {
	app := state.Default()
	b := portfolio.New(app)

	pf, err := b.CreatePortfolio(portfolio.CreatePortfolioParams{
		Name:     "Zerodha",
		Type:     state.PortfolioBrokerage,
		Holdings: []portfolio.HoldingParams{{Kind: state.HoldingEquity, Name: "INFY"}},
	})
	require.NoError(t, err)

	h, err := b.AddHolding(pf.ID, portfolio.HoldingParams{Kind: state.HoldingGold, Name: "SGB"})
	require.NoError(t, err)
	assert.Len(t, pf.Holdings, 2)
	assert.Equal(t, state.HoldingGold, h.Kind)

	_, err = b.AddHolding(uuid.New(), portfolio.HoldingParams{Kind: state.HoldingGold, Name: "SGB"})
	assert.ErrorIs(t, err, portfolio.ErrNotFound)
}
