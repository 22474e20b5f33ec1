package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/artha/internal/config"
	"github.com/MrJamesThe3rd/artha/internal/importer"
	"github.com/MrJamesThe3rd/artha/internal/ledger"
	"github.com/MrJamesThe3rd/artha/internal/state"
)

func TestService_Parse(t *testing.T) {
	svc := importer.NewService(config.DateFallbackNow)

	csv := strings.Join([]string{
		"Date,Description,Amount,Type,Category,Tags",
		"2024-01-05,Coffee,-1.50,expense,Food & Dining,friends|coffee",
		"2024-01-06,Salary,2500.00,income,Salary,",
		"",
		"2024-01-07,Broken,abc",
	}, "\n")

	result, err := svc.Parse(importer.FormatLedger, strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, result.Rows, 2)
	assert.Equal(t, 1, result.Skipped)

	coffee := result.Rows[0]
	assert.Equal(t, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), coffee.Date)
	assert.Equal(t, "Coffee", coffee.Description)
	assert.Equal(t, int64(150), coffee.Amount)
	assert.Equal(t, state.TypeExpense, coffee.Type)
	assert.Equal(t, "Food & Dining", coffee.RawCategory)
	assert.Equal(t, []string{"friends", "coffee"}, coffee.RawTags)

	salary := result.Rows[1]
	assert.Equal(t, int64(250000), salary.Amount)
	assert.Equal(t, state.TypeIncome, salary.Type)
	assert.Empty(t, salary.RawTags)
}

func TestService_Parse_SignDecidesType(t *testing.T) {
	svc := importer.NewService(config.DateFallbackNow)

	csv := "2024-02-01,Refund,10.00\n2024-02-02,Groceries,-45.20\n"

	result, err := svc.Parse(importer.FormatLedger, strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)

	assert.Equal(t, state.TypeIncome, result.Rows[0].Type)
	assert.Equal(t, state.TypeExpense, result.Rows[1].Type)
	assert.Equal(t, int64(4520), result.Rows[1].Amount)
}

func TestService_Parse_DatePolicy(t *testing.T) {
	// The bad date must not contain "date" or "amount", or the first
	// line is taken for a header and silently skipped.
	csv := "99/99/9999,Mystery,-5.00\n"

	t.Run("FallbackNowKeepsRow", func(t *testing.T) {
		svc := importer.NewService(config.DateFallbackNow)

		result, err := svc.Parse(importer.FormatLedger, strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, result.Rows, 1)
		assert.Zero(t, result.Skipped)
		assert.WithinDuration(t, time.Now(), result.Rows[0].Date, time.Minute)
	})

	t.Run("RejectDropsRow", func(t *testing.T) {
		svc := importer.NewService(config.DateFallbackReject)

		result, err := svc.Parse(importer.FormatLedger, strings.NewReader(csv))
		require.NoError(t, err)
		assert.Empty(t, result.Rows)
		assert.Equal(t, 1, result.Skipped)
	})
}

func TestService_Parse_UnknownFormat(t *testing.T) {
	svc := importer.NewService(config.DateFallbackNow)

	_, err := svc.Parse(importer.Format("qif"), strings.NewReader(""))
	assert.ErrorContains(t, err, "unknown format")
}

func TestService_Resolve(t *testing.T) {
	svc := importer.NewService(config.DateFallbackNow)
	app := state.Default()

	rows := []importer.Row{
		{Description: "Coffee", Amount: 150, Type: state.TypeExpense, RawCategory: "food & dining", RawTags: []string{"friends", "coffee"}},
		{Description: "Unknown", Amount: 100, Type: state.TypeExpense, RawCategory: "Yachts"},
		{Description: "Again", Amount: 200, Type: state.TypeExpense, RawTags: []string{"Friends"}},
	}

	l := ledger.New(app)
	acc, err := l.CreateAccount(ledger.CreateAccountParams{Name: "Savings", Type: state.AccountSavings})
	require.NoError(t, err)

	params := svc.Resolve(app, acc.ID, rows)
	require.Len(t, params, 3)

	food := app.CategoryByName("Food & Dining")
	require.NotNil(t, food)
	assert.Equal(t, food.ID, params[0].CategoryID)

	// Unknown categories are never created; the row lands in
	// Uncategorized instead.
	uncat := app.CategoryByName(state.CategoryUncategorized)
	require.NotNil(t, uncat)
	assert.Equal(t, uncat.ID, params[1].CategoryID)
	assert.Nil(t, app.CategoryByName("Yachts"))

	// Tags are created lazily with palette colors and matched
	// case-insensitively afterwards.
	require.Len(t, app.Tags, 2)
	assert.Equal(t, "friends", app.Tags[0].Name)
	assert.Equal(t, "#F0857D", app.Tags[0].Color)
	assert.Equal(t, "#5BB974", app.Tags[1].Color)
	require.Len(t, params[0].TagIDs, 2)
	require.Len(t, params[2].TagIDs, 1)
	assert.Equal(t, app.Tags[0].ID, params[2].TagIDs[0])
}

func TestService_Resolve_SuggestsFromHistory(t *testing.T) {
	svc := importer.NewService(config.DateFallbackNow)
	app := state.Default()
	l := ledger.New(app)

	acc, err := l.CreateAccount(ledger.CreateAccountParams{Name: "Savings", Type: state.AccountSavings})
	require.NoError(t, err)

	food := app.CategoryByName("Food & Dining")
	require.NotNil(t, food)

	_, err = l.CreateTransaction(ledger.CreateTransactionParams{
		AccountID:   acc.ID,
		Date:        time.Now(),
		Description: "Starbucks Coffee",
		Amount:      450,
		Type:        state.TypeExpense,
		CategoryID:  food.ID,
	})
	require.NoError(t, err)

	params := svc.Resolve(app, acc.ID, []importer.Row{
		{Description: "Starbucks Coffee", Amount: 500, Type: state.TypeExpense},
	})

	require.Len(t, params, 1)
	assert.Equal(t, food.ID, params[0].CategoryID)
}

func TestService_Apply(t *testing.T) {
	svc := importer.NewService(config.DateFallbackNow)
	app := state.Default()
	l := ledger.New(app)

	acc, err := l.CreateAccount(ledger.CreateAccountParams{
		Name:            "Savings",
		Type:            state.AccountSavings,
		StartingBalance: 10000,
	})
	require.NoError(t, err)

	rows := []importer.Row{
		{Date: time.Now(), Description: "Coffee", Amount: 150, Type: state.TypeExpense},
		{Date: time.Now(), Description: "Salary", Amount: 5000, Type: state.TypeIncome},
	}

	created, err := svc.Apply(app, acc.ID, rows)
	require.NoError(t, err)

	assert.Equal(t, 2, created)
	assert.Len(t, app.Transactions, 2)
	assert.Equal(t, int64(14850), acc.Balance)
}

func TestService_Apply_UnknownAccount(t *testing.T) {
	svc := importer.NewService(config.DateFallbackNow)
	app := state.Default()

	_, err := svc.Apply(app, uuid.New(), []importer.Row{{Amount: 1, Type: state.TypeExpense}})
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}
