package ledger

import (
	"errors"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/artha/internal/state"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrEmptyName     = errors.New("name is required")
	ErrDuplicateName = errors.New("an account with that name already exists")
	ErrSameAccount   = errors.New("transfer source and destination must differ")
	ErrInvalidAmount = errors.New("amount must be positive")
)

// SignedAmount is the effect of tx on the given account's balance:
// +amount for income, -amount for expense, and for transfers -amount
// on the source and +amount on the destination. Zero if the
// transaction does not touch the account.
func SignedAmount(tx *state.Transaction, accountID uuid.UUID) int64 {
	if tx.AccountID == accountID {
		if tx.Type == state.TypeIncome {
			return tx.Amount
		}

		return -tx.Amount
	}

	if tx.Type == state.TypeTransfer && tx.ToAccountID != nil && *tx.ToAccountID == accountID {
		return tx.Amount
	}

	return 0
}
