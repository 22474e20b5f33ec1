package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/artha/internal/state"
)

// Ledger applies account and transaction mutations to a state object,
// keeping every touched account's balance consistent with its
// transaction stream. It mutates the state in place; persisting the
// result is the caller's job.
type Ledger struct {
	app *state.App
}

func New(app *state.App) *Ledger {
	return &Ledger{app: app}
}

type CreateAccountParams struct {
	Name            string
	Type            state.AccountType
	StartingBalance int64
	Number          string
	CreatedAt       time.Time
}

// CreateAccount adds a new account. Names are unique
// case-insensitively. Debt accounts (credit cards, loans) store their
// starting balance as a negative number regardless of input sign.
func (l *Ledger) CreateAccount(p CreateAccountParams) (*state.Account, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	for _, acc := range l.app.Accounts {
		if strings.EqualFold(acc.Name, name) {
			return nil, ErrDuplicateName
		}
	}

	starting := p.StartingBalance

	acc := &state.Account{
		ID:        uuid.New(),
		Name:      name,
		Type:      p.Type,
		Number:    p.Number,
		CreatedAt: p.CreatedAt,
	}
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = time.Now()
	}

	if acc.IsDebt() && starting > 0 {
		starting = -starting
	}

	acc.StartingBalance = starting
	acc.Balance = starting

	l.app.Accounts = append(l.app.Accounts, acc)

	return acc, nil
}

// DeleteAccount removes the account and every transaction touching it.
// Transfer counterparties get the removed transactions' effects
// reverted so their balances stay consistent.
func (l *Ledger) DeleteAccount(id uuid.UUID) error {
	if l.app.Account(id) == nil {
		return ErrNotFound
	}

	kept := l.app.Transactions[:0]

	for _, tx := range l.app.Transactions {
		touches := tx.AccountID == id ||
			(tx.ToAccountID != nil && *tx.ToAccountID == id)
		if !touches {
			kept = append(kept, tx)
			continue
		}

		// Revert on the side that survives the delete.
		if tx.AccountID != id {
			l.adjust(tx.AccountID, -SignedAmount(tx, tx.AccountID))
		}

		if tx.ToAccountID != nil && *tx.ToAccountID != id {
			l.adjust(*tx.ToAccountID, -SignedAmount(tx, *tx.ToAccountID))
		}
	}

	l.app.Transactions = kept

	for i, acc := range l.app.Accounts {
		if acc.ID == id {
			l.app.Accounts = append(l.app.Accounts[:i], l.app.Accounts[i+1:]...)
			break
		}
	}

	return nil
}

type CreateTransactionParams struct {
	AccountID   uuid.UUID
	ToAccountID *uuid.UUID
	Date        time.Time
	Description string
	Amount      int64
	Type        state.TransactionType
	CategoryID  uuid.UUID
	TagIDs      []uuid.UUID
}

// CreateTransaction validates the params, appends the transaction and
// applies its balance effect. Transfers debit the source and credit
// the destination.
func (l *Ledger) CreateTransaction(p CreateTransactionParams) (*state.Transaction, error) {
	if p.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if l.app.Account(p.AccountID) == nil {
		return nil, ErrNotFound
	}

	categoryID := p.CategoryID

	if p.Type == state.TypeTransfer {
		if p.ToAccountID == nil {
			return nil, ErrNotFound
		}

		if *p.ToAccountID == p.AccountID {
			return nil, ErrSameAccount
		}

		if l.app.Account(*p.ToAccountID) == nil {
			return nil, ErrNotFound
		}

		if categoryID == uuid.Nil {
			if c := l.app.CategoryByName(state.CategoryTransfer); c != nil {
				categoryID = c.ID
			}
		}
	}

	if categoryID == uuid.Nil {
		if c := l.app.CategoryByName(state.CategoryUncategorized); c != nil {
			categoryID = c.ID
		}
	}

	tx := &state.Transaction{
		ID:          uuid.New(),
		AccountID:   p.AccountID,
		ToAccountID: p.ToAccountID,
		Date:        p.Date,
		Description: p.Description,
		Amount:      p.Amount,
		Type:        p.Type,
		CategoryID:  categoryID,
		TagIDs:      p.TagIDs,
		CreatedAt:   time.Now(),
	}
	if tx.Date.IsZero() {
		tx.Date = tx.CreatedAt
	}

	l.apply(tx, 1)
	l.app.Transactions = append(l.app.Transactions, tx)

	return tx, nil
}

// UpdateTransaction reverts the old transaction's effect on the
// account(s) it used to touch, then applies the new params, which may
// move it to a different account.
func (l *Ledger) UpdateTransaction(id uuid.UUID, p CreateTransactionParams) (*state.Transaction, error) {
	tx := l.app.Transaction(id)
	if tx == nil {
		return nil, ErrNotFound
	}

	if p.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if l.app.Account(p.AccountID) == nil {
		return nil, ErrNotFound
	}

	if p.Type == state.TypeTransfer {
		if p.ToAccountID == nil {
			return nil, ErrNotFound
		}

		if *p.ToAccountID == p.AccountID {
			return nil, ErrSameAccount
		}

		if l.app.Account(*p.ToAccountID) == nil {
			return nil, ErrNotFound
		}
	}

	l.apply(tx, -1)

	tx.AccountID = p.AccountID
	tx.ToAccountID = p.ToAccountID
	tx.Description = p.Description
	tx.Amount = p.Amount
	tx.Type = p.Type
	if p.CategoryID != uuid.Nil {
		tx.CategoryID = p.CategoryID
	}

	tx.TagIDs = p.TagIDs
	if !p.Date.IsZero() {
		tx.Date = p.Date
	}

	l.apply(tx, 1)

	return tx, nil
}

// DeleteTransaction reverts the transaction's balance effect and
// removes it from the ledger.
func (l *Ledger) DeleteTransaction(id uuid.UUID) error {
	for i, tx := range l.app.Transactions {
		if tx.ID != id {
			continue
		}

		l.apply(tx, -1)
		l.app.Transactions = append(l.app.Transactions[:i], l.app.Transactions[i+1:]...)

		return nil
	}

	return ErrNotFound
}

// apply adds (sign=1) or reverts (sign=-1) the transaction's effect
// on every account it touches.
func (l *Ledger) apply(tx *state.Transaction, sign int64) {
	l.adjust(tx.AccountID, sign*SignedAmount(tx, tx.AccountID))

	if tx.ToAccountID != nil && *tx.ToAccountID != tx.AccountID {
		l.adjust(*tx.ToAccountID, sign*SignedAmount(tx, *tx.ToAccountID))
	}
}

func (l *Ledger) adjust(accountID uuid.UUID, delta int64) {
	if acc := l.app.Account(accountID); acc != nil {
		acc.Balance += delta
	}
}
