package ledger_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/artha/internal/ledger"
	"github.com/MrJamesThe3rd/artha/internal/state"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func newAccount(t *testing.T, l *ledger.Ledger, name string, starting int64) *state.Account {
	t.Helper()

	acc, err := l.CreateAccount(ledger.CreateAccountParams{
		Name:            name,
		Type:            state.AccountSavings,
		StartingBalance: starting,
		CreatedAt:       date(2024, 1, 1),
	})
	require.NoError(t, err)

	return acc
}

func TestLedger_CreateAccount(t *testing.T) {
	type args struct {
		params ledger.CreateAccountParams
	}

	type testCase struct {
		name        string
		args        args
		wantBalance int64
		wantErr     error
	}

	tests := []testCase{
		{
			name: "Savings",
			args: args{params: ledger.CreateAccountParams{
				Name:            "HDFC Savings",
				Type:            state.AccountSavings,
				StartingBalance: 100000,
			}},
			wantBalance: 100000,
		},
		{
			name: "CreditCardBalanceStoredNegative",
			args: args{params: ledger.CreateAccountParams{
				Name:            "Amex",
				Type:            state.AccountCreditCard,
				StartingBalance: 50000,
			}},
			wantBalance: -50000,
		},
		{
			name: "LoanBalanceStoredNegative",
			args: args{params: ledger.CreateAccountParams{
				Name:            "Car Loan",
				Type:            state.AccountLoan,
				StartingBalance: 250000,
			}},
			wantBalance: -250000,
		},
		{
			name: "EmptyName",
			args: args{params: ledger.CreateAccountParams{
				Name: "   ",
				Type: state.AccountCash,
			}},
			wantErr: ledger.ErrEmptyName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := state.Default()
			l := ledger.New(app)

			acc, err := l.CreateAccount(tt.args.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantBalance, acc.Balance)
			assert.Equal(t, tt.wantBalance, acc.StartingBalance)
			assert.NotEqual(t, uuid.Nil, acc.ID)
			assert.False(t, acc.CreatedAt.IsZero())
		})
	}
}

func TestLedger_CreateAccount_DuplicateName(t *testing.T) {
	app := state.Default()
	l := ledger.New(app)

	newAccount(t, l, "Savings", 0)

	_, err := l.CreateAccount(ledger.CreateAccountParams{Name: "savings", Type: state.AccountCash})
	assert.ErrorIs(t, err, ledger.ErrDuplicateName)
}

func TestLedger_CreateTransaction_AdjustsBalance(t *testing.T) {
	app := state.Default()
	l := ledger.New(app)
	acc := newAccount(t, l, "Savings", 100000)

	_, err := l.CreateTransaction(ledger.CreateTransactionParams{
		AccountID: acc.ID,
		Date:      date(2024, 1, 2),
		Amount:    50000,
		Type:      state.TypeIncome,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(150000), acc.Balance)

	_, err = l.CreateTransaction(ledger.CreateTransactionParams{
		AccountID: acc.ID,
		Date:      date(2024, 1, 3),
		Amount:    20000,
		Type:      state.TypeExpense,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(130000), acc.Balance)
}

func TestLedger_CreateTransaction_BalanceInvariant(t *testing.T) {
	// balance == starting + sum(income) - sum(expense)
	app := state.Default()
	l := ledger.New(app)
	acc := newAccount(t, l, "Savings", 12345)

	amounts := []struct {
		amount int64
		typ    state.TransactionType
	}{
		{1000, state.TypeIncome},
		{250, state.TypeExpense},
		{9999, state.TypeIncome},
		{4321, state.TypeExpense},
	}

	var want int64 = 12345

	for i, a := range amounts {
		_, err := l.CreateTransaction(ledger.CreateTransactionParams{
			AccountID: acc.ID,
			Date:      date(2024, 2, i+1),
			Amount:    a.amount,
			Type:      a.typ,
		})
		require.NoError(t, err)

		if a.typ == state.TypeIncome {
			want += a.amount
		} else {
			want -= a.amount
		}
	}

	assert.Equal(t, want, acc.Balance)
}

func TestLedger_CreateTransaction_Validation(t *testing.T) {
	app := state.Default()
	l := ledger.New(app)
	acc := newAccount(t, l, "Savings", 0)

	_, err := l.CreateTransaction(ledger.CreateTransactionParams{
		AccountID: acc.ID,
		Amount:    0,
		Type:      state.TypeExpense,
	})
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)

	_, err = l.CreateTransaction(ledger.CreateTransactionParams{
		AccountID: uuid.New(),
		Amount:    100,
		Type:      state.TypeExpense,
	})
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestLedger_Transfer_DoubleEntry(t *testing.T) {
	app := state.Default()
	l := ledger.New(app)
	src := newAccount(t, l, "Checking", 100000)
	dst := newAccount(t, l, "Savings", 50000)

	tx, err := l.CreateTransaction(ledger.CreateTransactionParams{
		AccountID:   src.ID,
		ToAccountID: &dst.ID,
		Date:        date(2024, 1, 5),
		Amount:      30000,
		Type:        state.TypeTransfer,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(70000), src.Balance)
	assert.Equal(t, int64(80000), dst.Balance)

	// Moving money never changes the combined total.
	assert.Equal(t, int64(150000), src.Balance+dst.Balance)

	// Transfers default to the Transfer category.
	cat := app.Category(tx.CategoryID)
	require.NotNil(t, cat)
	assert.Equal(t, state.CategoryTransfer, cat.Name)
}

func TestLedger_Transfer_SameAccountRejected(t *testing.T) {
	app := state.Default()
	l := ledger.New(app)
	acc := newAccount(t, l, "Checking", 100000)

	_, err := l.CreateTransaction(ledger.CreateTransactionParams{
		AccountID:   acc.ID,
		ToAccountID: &acc.ID,
		Amount:      1000,
		Type:        state.TypeTransfer,
	})
	assert.ErrorIs(t, err, ledger.ErrSameAccount)
	assert.Equal(t, int64(100000), acc.Balance)
	assert.Empty(t, app.Transactions)
}

func TestLedger_UpdateTransaction_SameAccount(t *testing.T) {
	app := state.Default()
	l := ledger.New(app)
	acc := newAccount(t, l, "Savings", 100000)

	tx, err := l.CreateTransaction(ledger.CreateTransactionParams{
		AccountID: acc.ID,
		Date:      date(2024, 1, 2),
		Amount:    10000,
		Type:      state.TypeExpense,
	})
	require.NoError(t, err)
	require.Equal(t, int64(90000), acc.Balance)

	_, err = l.UpdateTransaction(tx.ID, ledger.CreateTransactionParams{
		AccountID: acc.ID,
		Date:      date(2024, 1, 2),
		Amount:    25000,
		Type:      state.TypeExpense,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(75000), acc.Balance)

	_, err = l.UpdateTransaction(tx.ID, ledger.CreateTransactionParams{
		AccountID: acc.ID,
		Date:      date(2024, 1, 2),
		Amount:    25000,
		Type:      state.TypeIncome,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(125000), acc.Balance)
}

func TestLedger_UpdateTransaction_MovedAccount(t *testing.T) {
	// Reverse on the old account, apply on the new one.
	app := state.Default()
	l := ledger.New(app)
	a := newAccount(t, l, "A", 100000)
	b := newAccount(t, l, "B", 100000)

	tx, err := l.CreateTransaction(ledger.CreateTransactionParams{
		AccountID: a.ID,
		Date:      date(2024, 1, 2),
		Amount:    40000,
		Type:      state.TypeExpense,
	})
	require.NoError(t, err)
	require.Equal(t, int64(60000), a.Balance)

	_, err = l.UpdateTransaction(tx.ID, ledger.CreateTransactionParams{
		AccountID: b.ID,
		Date:      date(2024, 1, 2),
		Amount:    40000,
		Type:      state.TypeExpense,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100000), a.Balance)
	assert.Equal(t, int64(60000), b.Balance)
}

func TestLedger_DeleteTransaction_RestoresBalance(t *testing.T) {
	app := state.Default()
	l := ledger.New(app)
	acc := newAccount(t, l, "Savings", 100000)

	tx, err := l.CreateTransaction(ledger.CreateTransactionParams{
		AccountID: acc.ID,
		Date:      date(2024, 1, 2),
		Amount:    15000,
		Type:      state.TypeExpense,
	})
	require.NoError(t, err)
	require.Equal(t, int64(85000), acc.Balance)

	require.NoError(t, l.DeleteTransaction(tx.ID))
	assert.Equal(t, int64(100000), acc.Balance)
	assert.Empty(t, app.Transactions)

	// Re-adding an equivalent transaction lands on the pre-delete value.
	_, err = l.CreateTransaction(ledger.CreateTransactionParams{
		AccountID: acc.ID,
		Date:      date(2024, 1, 2),
		Amount:    15000,
		Type:      state.TypeExpense,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(85000), acc.Balance)
}

func TestLedger_DeleteTransaction_NotFound(t *testing.T) {
	app := state.Default()
	l := ledger.New(app)

	assert.ErrorIs(t, l.DeleteTransaction(uuid.New()), ledger.ErrNotFound)
}

func TestLedger_DeleteAccount_CascadesTransactions(t *testing.T) {
	app := state.Default()
	l := ledger.New(app)
	a := newAccount(t, l, "A", 100000)
	b := newAccount(t, l, "B", 100000)

	_, err := l.CreateTransaction(ledger.CreateTransactionParams{
		AccountID: a.ID,
		Date:      date(2024, 1, 2),
		Amount:    5000,
		Type:      state.TypeExpense,
	})
	require.NoError(t, err)

	// Transfer from A to B, then delete A: B's credit must be reverted
	// along with the transaction.
	_, err = l.CreateTransaction(ledger.CreateTransactionParams{
		AccountID:   a.ID,
		ToAccountID: &b.ID,
		Date:        date(2024, 1, 3),
		Amount:      20000,
		Type:        state.TypeTransfer,
	})
	require.NoError(t, err)
	require.Equal(t, int64(120000), b.Balance)

	require.NoError(t, l.DeleteAccount(a.ID))

	assert.Nil(t, app.Account(a.ID))
	assert.Empty(t, app.Transactions)
	assert.Equal(t, int64(100000), b.Balance)
}

func TestLedger_SignedAmount(t *testing.T) {
	src := uuid.New()
	dst := uuid.New()
	other := uuid.New()

	transfer := &state.Transaction{
		AccountID:   src,
		ToAccountID: &dst,
		Amount:      100,
		Type:        state.TypeTransfer,
	}

	assert.Equal(t, int64(-100), ledger.SignedAmount(transfer, src))
	assert.Equal(t, int64(100), ledger.SignedAmount(transfer, dst))
	assert.Equal(t, int64(0), ledger.SignedAmount(transfer, other))

	income := &state.Transaction{AccountID: src, Amount: 42, Type: state.TypeIncome}
	assert.Equal(t, int64(42), ledger.SignedAmount(income, src))

	expense := &state.Transaction{AccountID: src, Amount: 42, Type: state.TypeExpense}
	assert.Equal(t, int64(-42), ledger.SignedAmount(expense, src))
}
