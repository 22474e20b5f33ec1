package export

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/artha/internal/export"
	"github.com/MrJamesThe3rd/artha/internal/http/request"
	"github.com/MrJamesThe3rd/artha/internal/state"
)

// StateStore loads a user's state blob.
type StateStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*state.App, error)
}

type Handler struct {
	svc    *export.Service
	states StateStore
}

func NewHandler(svc *export.Service, states StateStore) *Handler {
	return &Handler{svc: svc, states: states}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

// download streams the caller's transactions as a CSV attachment.
// Optional query parameters: account_id, from, to (YYYY-MM-DD).
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	userID, ok := request.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	app, err := h.states.Get(r.Context(), userID)
	if err != nil {
		slog.Error("failed to load state", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(time.Now())))

	if _, err := h.svc.Write(w, app, filter); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

func parseFilter(r *http.Request) (export.Filter, error) {
	var filter export.Filter

	if raw := r.URL.Query().Get("account_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid account_id")
		}

		filter.AccountID = id
	}

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return filter, fmt.Errorf("invalid from date, use YYYY-MM-DD")
		}

		filter.From = from
	}

	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return filter, fmt.Errorf("invalid to date, use YYYY-MM-DD")
		}

		filter.To = to
	}

	return filter, nil
}
