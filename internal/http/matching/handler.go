package matching

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/artha/internal/http/request"
	"github.com/MrJamesThe3rd/artha/internal/matching"
	"github.com/MrJamesThe3rd/artha/internal/state"
)

// StateStore loads a user's state blob.
type StateStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*state.App, error)
}

type Handler struct {
	svc    *matching.Service
	states StateStore
}

func NewHandler(svc *matching.Service, states StateStore) *Handler {
	return &Handler{svc: svc, states: states}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
}

type suggestResponse struct {
	Description  string     `json:"description"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`
	CategoryName string     `json:"category_name,omitempty"`
}

// suggest proposes a category for a transaction description based on
// the caller's history.
func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	userID, ok := request.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	description := r.URL.Query().Get("description")
	if description == "" {
		http.Error(w, "description query parameter is required", http.StatusBadRequest)
		return
	}

	app, err := h.states.Get(r.Context(), userID)
	if err != nil {
		slog.Error("failed to load state", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := suggestResponse{Description: description}

	if id := h.svc.Suggest(app, description); id != uuid.Nil {
		resp.CategoryID = &id

		if c := app.Category(id); c != nil {
			resp.CategoryName = c.Name
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
