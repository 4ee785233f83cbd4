package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authService "github.com/frotaops/fleetledger/internal/auth"
	"github.com/frotaops/fleetledger/internal/http/auth"
	"github.com/frotaops/fleetledger/internal/http/category"
	"github.com/frotaops/fleetledger/internal/http/export"
	"github.com/frotaops/fleetledger/internal/http/ledger"
	"github.com/frotaops/fleetledger/internal/http/party"
	"github.com/frotaops/fleetledger/internal/http/paymentmethod"
)

func New(
	authSvc *authService.Service,
	allowedOrigins []string,
	authV1 *auth.Handler,
	ledgerV1 *ledger.Handler,
	categoriesV1 *category.Handler,
	partiesV1 *party.Handler,
	methodsV1 *paymentmethod.Handler,
	exportV1 *export.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireToken(authSvc))

			r.Route("/finance", func(r chi.Router) {
				r.Route("/export", exportV1.Routes)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AllowContentType("application/json"))
					ledgerV1.Routes(r)
				})
			})

			r.Route("/categories", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				categoriesV1.Routes(r)
			})

			r.Route("/parties", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				partiesV1.Routes(r)
			})

			r.Route("/payment-methods", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				methodsV1.Routes(r)
			})
		})
	})

	return router
}
