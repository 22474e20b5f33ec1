package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/artha/internal/auth"
	"github.com/MrJamesThe3rd/artha/internal/http/request"
)

type Handler struct {
	svc *auth.Service
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts the public authentication endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/magic-link", h.requestLink)
	r.Post("/verify", h.verify)
}

// UserRoutes mounts the endpoints that require a session.
func (h *Handler) UserRoutes(r chi.Router) {
	r.Get("/me", h.me)
}

type magicLinkRequest struct {
	Email string `json:"email"`
}

func (h *Handler) requestLink(w http.ResponseWriter, r *http.Request) {
	var req magicLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, err := h.svc.RequestLink(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidEmail) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	// The token normally goes out by email; surfacing it in logs keeps
	// local setups usable without a mail sender.
	slog.Debug("magic link issued", "email", req.Email, "token", token)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)

	if err := json.NewEncoder(w).Encode(map[string]string{"message": "magic link sent"}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type verifyRequest struct {
	Token string `json:"token"`
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	jwt, err := h.svc.Verify(r.Context(), req.Token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]string{"token": jwt}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, ok := request.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.svc.Me(r.Context(), userID)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(user); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
