package portfolio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/artha/internal/state"
)

func TestBooks_RecordsPortfolioHistory(t *testing.T) {
	app := state.Default()
	b := New(app)

	day1 := time.Date(2024, time.March, 1, 10, 30, 0, 0, time.UTC)
	b.now = func() time.Time { return day1 }

	pf, err := b.CreatePortfolio(CreatePortfolioParams{
		Name: "Zerodha",
		Type: state.PortfolioBrokerage,
		Holdings: []HoldingParams{
			{Kind: state.HoldingEquity, Name: "INFY", BuyValue: 100000, CurrentValue: 110000},
		},
	})
	require.NoError(t, err)

	require.Len(t, app.PortfolioHistory, 1)
	point := app.PortfolioHistory[0]
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), point.Date)
	assert.Equal(t, int64(110000), point.CurrentValue)
	assert.Equal(t, int64(100000), point.TotalInvested)

	// A second change on the same day collapses into the day's point.
	_, err = b.AddHolding(pf.ID, HoldingParams{
		Kind: state.HoldingGold, Name: "SGB", BuyValue: 50000, CurrentValue: 60000,
	})
	require.NoError(t, err)

	require.Len(t, app.PortfolioHistory, 1)
	assert.Equal(t, int64(170000), app.PortfolioHistory[0].CurrentValue)
	assert.Equal(t, int64(150000), app.PortfolioHistory[0].TotalInvested)

	day2 := day1.AddDate(0, 0, 1)
	b.now = func() time.Time { return day2 }

	require.NoError(t, b.DeletePortfolio(pf.ID))

	require.Len(t, app.PortfolioHistory, 2)
	assert.Zero(t, app.PortfolioHistory[1].CurrentValue)
	assert.Zero(t, app.PortfolioHistory[1].TotalInvested)
}
