package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/artha/internal/chart"
	"github.com/MrJamesThe3rd/artha/internal/http/request"
	"github.com/MrJamesThe3rd/artha/internal/portfolio"
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

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/summary", h.summary)
	r.Get("/allocation", h.allocation)
	r.Get("/growth", h.growth)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/holdings", h.addHolding)
	r.Delete("/holdings/{id}", h.deleteHolding)
}

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
	case errors.Is(err, portfolio.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, portfolio.ErrEmptyName), errors.Is(err, portfolio.ErrNoHoldings):
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

type holdingRequest struct {
	Kind         state.HoldingKind       `json:"kind"`
	Name         string                  `json:"name"`
	Ticker       string                  `json:"ticker"`
	Quantity     float64                 `json:"quantity"`
	BuyValue     int64                   `json:"buy_value"`
	CurrentValue int64                   `json:"current_value"`
	FixedIncome  *state.FixedIncomeMeta  `json:"fixed_income,omitempty"`
	Contribution *state.ContributionMeta `json:"contribution,omitempty"`
	Vesting      *state.VestingMeta      `json:"vesting,omitempty"`
}

func (req holdingRequest) toParams() portfolio.HoldingParams {
	return portfolio.HoldingParams{
		Kind:         req.Kind,
		Name:         req.Name,
		Ticker:       req.Ticker,
		Quantity:     req.Quantity,
		BuyValue:     req.BuyValue,
		CurrentValue: req.CurrentValue,
		FixedIncome:  req.FixedIncome,
		Contribution: req.Contribution,
		Vesting:      req.Vesting,
	}
}

type createPortfolioRequest struct {
	Name     string              `json:"name"`
	Type     state.PortfolioType `json:"type"`
	Holdings []holdingRequest    `json:"holdings"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	app, userID := h.load(w, r)
	if app == nil {
		return
	}

	params := portfolio.CreatePortfolioParams{Name: req.Name, Type: req.Type}
	for _, hr := range req.Holdings {
		params.Holdings = append(params.Holdings, hr.toParams())
	}

	pf, err := portfolio.New(app).CreatePortfolio(params)
	if err != nil {
		writeError(w, err)
		return
	}

	if !h.save(w, r, userID, app) {
		return
	}

	writeJSON(w, http.StatusCreated, pf)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	app, _ := h.load(w, r)
	if app == nil {
		return
	}

	writeJSON(w, http.StatusOK, portfolio.GroupByClass(app.Portfolios))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	app, _ := h.load(w, r)
	if app == nil {
		return
	}

	writeJSON(w, http.StatusOK, portfolio.Summarize(app.Portfolios))
}

func (h *Handler) allocation(w http.ResponseWriter, r *http.Request) {
	app, _ := h.load(w, r)
	if app == nil {
		return
	}

	writeJSON(w, http.StatusOK, portfolio.Allocation(app.Portfolios))
}

// growth serves the recorded portfolio history windowed to the
// requested period (1m, 6m, 1y or max).
func (h *Handler) growth(w http.ResponseWriter, r *http.Request) {
	app, _ := h.load(w, r)
	if app == nil {
		return
	}

	period := chart.GrowthPeriod(r.URL.Query().Get("period"))
	if period == "" {
		period = chart.GrowthMax
	}

	writeJSON(w, http.StatusOK, chart.PortfolioGrowth(app.PortfolioHistory, period, time.Now()))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	app, userID := h.load(w, r)
	if app == nil {
		return
	}

	if err := portfolio.New(app).DeletePortfolio(id); err != nil {
		writeError(w, err)
		return
	}

	if !h.save(w, r, userID, app) {
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addHolding(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req holdingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	app, userID := h.load(w, r)
	if app == nil {
		return
	}

	holding, err := portfolio.New(app).AddHolding(id, req.toParams())
	if err != nil {
		writeError(w, err)
		return
	}

	if !h.save(w, r, userID, app) {
		return
	}

	writeJSON(w, http.StatusCreated, holding)
}

func (h *Handler) deleteHolding(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	app, userID := h.load(w, r)
	if app == nil {
		return
	}

	if err := portfolio.New(app).DeleteHolding(id); err != nil {
		writeError(w, err)
		return
	}

	if !h.save(w, r, userID, app) {
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
