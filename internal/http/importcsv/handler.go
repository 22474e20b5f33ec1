package importcsv

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/artha/internal/http/request"
	"github.com/MrJamesThe3rd/artha/internal/importer"
	"github.com/MrJamesThe3rd/artha/internal/ledger"
	"github.com/MrJamesThe3rd/artha/internal/state"
)

// StateStore loads and saves a user's state blob.
type StateStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*state.App, error)
	Save(ctx context.Context, userID uuid.UUID, app *state.App) error
}

type Handler struct {
	importSvc *importer.Service
	states    StateStore
}

func NewHandler(importSvc *importer.Service, states StateStore) *Handler {
	return &Handler{importSvc: importSvc, states: states}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	accountID, err := uuid.Parse(r.FormValue("account_id"))
	if err != nil {
		http.Error(w, "account_id field is required", http.StatusBadRequest)
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatLedger
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.importSvc.Parse(format, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	userID, ok := request.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	app, err := h.states.Get(r.Context(), userID)
	if err != nil {
		slog.Error("failed to load state", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	imported, err := h.importSvc.Apply(app, accountID, result.Rows)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "account not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	// One persist for the whole batch.
	if err := h.states.Save(r.Context(), userID, app); err != nil {
		slog.Error("failed to save state", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	resp := importResponse{Imported: imported, Skipped: result.Skipped}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
