package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/artha/internal/balance"
	"github.com/MrJamesThe3rd/artha/internal/chart"
	"github.com/MrJamesThe3rd/artha/internal/http/request"
	"github.com/MrJamesThe3rd/artha/internal/ledger"
	"github.com/MrJamesThe3rd/artha/internal/state"
)

// StateStore loads and saves a user's state blob.
type StateStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*state.App, error)
	Save(ctx context.Context, userID uuid.UUID, app *state.App) error
}

type Handler struct {
	states StateStore
}

func NewHandler(states StateStore) *Handler {
	return &Handler{states: states}
}

func (h *Handler) AccountRoutes(r chi.Router) {
	r.Post("/", h.createAccount)
	r.Get("/", h.listAccounts)
	r.Delete("/{id}", h.deleteAccount)
}

func (h *Handler) TransactionRoutes(r chi.Router) {
	r.Post("/", h.createTransaction)
	r.Get("/", h.listTransactions)
	r.Patch("/{id}", h.updateTransaction)
	r.Delete("/{id}", h.deleteTransaction)
}

func (h *Handler) HistoryRoutes(r chi.Router) {
	r.Get("/", h.balanceHistory)
}

// load pulls the caller's state; a nil app means the response has
// already been written.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*state.App, uuid.UUID) {
	userID, ok := request.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, uuid.Nil
	}

	app, err := h.states.Get(r.Context(), userID)
	if err != nil {
		slog.Error("failed to load state", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return nil, uuid.Nil
	}

	return app, userID
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, userID uuid.UUID, app *state.App) bool {
	if err := h.states.Save(r.Context(), userID, app); err != nil {
		slog.Error("failed to save state", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return false
	}

	return true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ledger.ErrDuplicateName):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ledger.ErrSameAccount),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrEmptyName):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createAccountRequest struct {
	Name            string            `json:"name"`
	Type            state.AccountType `json:"type"`
	StartingBalance int64             `json:"starting_balance"`
	Number          string            `json:"number"`
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	app, userID := h.load(w, r)
	if app == nil {
		return
	}

	acc, err := ledger.New(app).CreateAccount(ledger.CreateAccountParams{
		Name:            req.Name,
		Type:            req.Type,
		StartingBalance: req.StartingBalance,
		Number:          req.Number,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if !h.save(w, r, userID, app) {
		return
	}

	writeJSON(w, http.StatusCreated, toAccountResponse(acc))
}

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	app, _ := h.load(w, r)
	if app == nil {
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponseList(app.Accounts))
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	app, userID := h.load(w, r)
	if app == nil {
		return
	}

	if err := ledger.New(app).DeleteAccount(id); err != nil {
		writeError(w, err)
		return
	}

	if !h.save(w, r, userID, app) {
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type transactionRequest struct {
	AccountID   uuid.UUID             `json:"account_id"`
	ToAccountID *uuid.UUID            `json:"to_account_id,omitempty"`
	Date        time.Time             `json:"date"`
	Description string                `json:"description"`
	Amount      int64                 `json:"amount"`
	Type        state.TransactionType `json:"type"`
	CategoryID  uuid.UUID             `json:"category_id"`
	TagIDs      []uuid.UUID           `json:"tag_ids"`
}

func (req transactionRequest) toParams() ledger.CreateTransactionParams {
	return ledger.CreateTransactionParams{
		AccountID:   req.AccountID,
		ToAccountID: req.ToAccountID,
		Date:        req.Date,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        req.Type,
		CategoryID:  req.CategoryID,
		TagIDs:      req.TagIDs,
	}
}

func (h *Handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	app, userID := h.load(w, r)
	if app == nil {
		return
	}

	tx, err := ledger.New(app).CreateTransaction(req.toParams())
	if err != nil {
		writeError(w, err)
		return
	}

	if !h.save(w, r, userID, app) {
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	app, _ := h.load(w, r)
	if app == nil {
		return
	}

	txs := app.Transactions

	if s := r.URL.Query().Get("account_id"); s != "" {
		accountID, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid account_id", http.StatusBadRequest)
			return
		}

		filtered := make([]*state.Transaction, 0, len(txs))

		for _, tx := range txs {
			if ledger.SignedAmount(tx, accountID) != 0 {
				filtered = append(filtered, tx)
			}
		}

		txs = filtered
	}

	if s := r.URL.Query().Get("period"); s != "" {
		start := balance.Start(balance.Period(s), time.Now(), app.Accounts)
		filtered := make([]*state.Transaction, 0, len(txs))

		for _, tx := range txs {
			if !tx.Date.Before(start) {
				filtered = append(filtered, tx)
			}
		}

		txs = filtered
	}

	// Newest first for display.
	sorted := make([]*state.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	writeJSON(w, http.StatusOK, toTransactionResponseList(sorted))
}

func (h *Handler) updateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	app, userID := h.load(w, r)
	if app == nil {
		return
	}

	tx, err := ledger.New(app).UpdateTransaction(id, req.toParams())
	if err != nil {
		writeError(w, err)
		return
	}

	if !h.save(w, r, userID, app) {
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponse(tx))
}

func (h *Handler) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	app, userID := h.load(w, r)
	if app == nil {
		return
	}

	if err := ledger.New(app).DeleteTransaction(id); err != nil {
		writeError(w, err)
		return
	}

	if !h.save(w, r, userID, app) {
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) balanceHistory(w http.ResponseWriter, r *http.Request) {
	app, _ := h.load(w, r)
	if app == nil {
		return
	}

	period := balance.PeriodMax
	if s := r.URL.Query().Get("period"); s != "" {
		period = balance.Period(s)
	}

	accounts := app.Accounts

	if s := r.URL.Query().Get("account_id"); s != "" {
		accountID, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid account_id", http.StatusBadRequest)
			return
		}

		acc := app.Account(accountID)
		if acc == nil {
			http.Error(w, "account not found", http.StatusNotFound)
			return
		}

		accounts = []*state.Account{acc}
	}

	series := balance.Reconstruct(accounts, app.Transactions, period, time.Now())

	writeJSON(w, http.StatusOK, chart.FromSeries(series))
}
