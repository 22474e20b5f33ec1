package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/artha/internal/auth"
	authHandler "github.com/MrJamesThe3rd/artha/internal/http/auth"
	exportHandler "github.com/MrJamesThe3rd/artha/internal/http/export"
	"github.com/MrJamesThe3rd/artha/internal/http/importcsv"
	ledgerHandler "github.com/MrJamesThe3rd/artha/internal/http/ledger"
	matchingHandler "github.com/MrJamesThe3rd/artha/internal/http/matching"
	portfolioHandler "github.com/MrJamesThe3rd/artha/internal/http/portfolio"
	"github.com/MrJamesThe3rd/artha/internal/http/statesync"
)

func New(
	authSvc *auth.Service,
	authV1 *authHandler.Handler,
	ledgerV1 *ledgerHandler.Handler,
	portfolioV1 *portfolioHandler.Handler,
	importV1 *importcsv.Handler,
	exportV1 *exportHandler.Handler,
	matchingV1 *matchingHandler.Handler,
	stateV1 *statesync.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("OK"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(authSvc))

			r.Route("/users", authV1.UserRoutes)
			r.Route("/state", stateV1.Routes)

			r.Route("/accounts", func(r chi.Router) {
				ledgerV1.AccountRoutes(r)
			})

			r.Route("/transactions", func(r chi.Router) {
				ledgerV1.TransactionRoutes(r)
			})

			r.Route("/balance-history", ledgerV1.HistoryRoutes)

			r.Route("/portfolios", func(r chi.Router) {
				portfolioV1.Routes(r)
			})

			r.Route("/import", importV1.Routes)
			r.Route("/export", exportV1.Routes)
			r.Route("/matching", matchingV1.Routes)
		})
	})

	return router
}
