package state_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/artha/internal/state"
)

func TestFileStore_LoadMissingFile(t *testing.T) {
	store := state.NewFileStore(filepath.Join(t.TempDir(), "state.json"))

	app, err := store.Load()
	require.NoError(t, err)

	assert.Empty(t, app.Accounts)
	assert.NotEmpty(t, app.Categories)
	assert.NotNil(t, app.CategoryByName(state.CategoryUncategorized))
	assert.NotNil(t, app.CategoryByName(state.CategoryTransfer))
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := state.NewFileStore(path)

	app := state.Default()
	toID := uuid.New()
	app.Accounts = append(app.Accounts, &state.Account{
		ID:              uuid.New(),
		Name:            "Savings",
		Type:            state.AccountSavings,
		Balance:         123456,
		StartingBalance: 100000,
		CreatedAt:       time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
	app.Transactions = append(app.Transactions, &state.Transaction{
		ID:          uuid.New(),
		AccountID:   app.Accounts[0].ID,
		ToAccountID: &toID,
		Date:        time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
		Description: "Coffee",
		Amount:      150,
		Type:        state.TypeTransfer,
	})
	app.Portfolios = append(app.Portfolios, &state.Portfolio{
		ID:   uuid.New(),
		Name: "Zerodha",
		Type: state.PortfolioBrokerage,
		Holdings: []*state.Holding{
			{
				ID:       uuid.New(),
				Kind:     state.HoldingRSU,
				Name:     "Grant 2023",
				BuyValue: 100000,
				Vesting:  &state.VestingMeta{VestedUnits: 10, MarketPrice: 5000},
			},
		},
	})

	require.NoError(t, store.Save(app))

	loaded, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, app, loaded)
	assert.FileExists(t, path)
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	store := state.NewFileStore(filepath.Join(t.TempDir(), "state.json"))

	app := state.Default()
	require.NoError(t, store.Save(app))

	app.Accounts = append(app.Accounts, &state.Account{ID: uuid.New(), Name: "New"})
	require.NoError(t, store.Save(app))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, loaded.Accounts, 1)
}
