package http

import (
	"net/http"
	"strings"

	"github.com/MrJamesThe3rd/artha/internal/auth"
	"github.com/MrJamesThe3rd/artha/internal/http/request"
)

// Authenticate rejects requests without a valid Bearer session token
// and stores the caller's user id on the context.
func Authenticate(svc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const prefix = "Bearer "

			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, prefix) {
				http.Error(w, "missing or invalid authorization header", http.StatusUnauthorized)
				return
			}

			userID, err := svc.ParseSession(strings.TrimPrefix(header, prefix))
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(request.WithUserID(r.Context(), userID)))
		})
	}
}
