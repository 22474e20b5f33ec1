package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/artha/internal/state"
)

type accountResponse struct {
	ID              uuid.UUID         `json:"id"`
	Name            string            `json:"name"`
	Type            state.AccountType `json:"type"`
	Balance         int64             `json:"balance"`
	StartingBalance int64             `json:"starting_balance"`
	Number          string            `json:"number,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

func toAccountResponse(acc *state.Account) accountResponse {
	return accountResponse{
		ID:              acc.ID,
		Name:            acc.Name,
		Type:            acc.Type,
		Balance:         acc.Balance,
		StartingBalance: acc.StartingBalance,
		Number:          acc.Number,
		CreatedAt:       acc.CreatedAt,
	}
}

func toAccountResponseList(accs []*state.Account) []accountResponse {
	resp := make([]accountResponse, len(accs))
	for i, acc := range accs {
		resp[i] = toAccountResponse(acc)
	}

	return resp
}

type transactionResponse struct {
	ID          uuid.UUID             `json:"id"`
	AccountID   uuid.UUID             `json:"account_id"`
	ToAccountID *uuid.UUID            `json:"to_account_id,omitempty"`
	Date        time.Time             `json:"date"`
	Description string                `json:"description"`
	Amount      int64                 `json:"amount"`
	Type        state.TransactionType `json:"type"`
	CategoryID  uuid.UUID             `json:"category_id"`
	TagIDs      []uuid.UUID           `json:"tag_ids,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

func toTransactionResponse(tx *state.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		AccountID:   tx.AccountID,
		ToAccountID: tx.ToAccountID,
		Date:        tx.Date,
		Description: tx.Description,
		Amount:      tx.Amount,
		Type:        tx.Type,
		CategoryID:  tx.CategoryID,
		TagIDs:      tx.TagIDs,
		CreatedAt:   tx.CreatedAt,
	}
}

func toTransactionResponseList(txs []*state.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toTransactionResponse(tx)
	}

	return resp
}
