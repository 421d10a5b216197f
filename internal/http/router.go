package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dsilveira/tally/internal/http/budget"
	"github.com/dsilveira/tally/internal/http/categorymap"
	"github.com/dsilveira/tally/internal/http/importcsv"
	"github.com/dsilveira/tally/internal/http/report"
	"github.com/dsilveira/tally/internal/http/transaction"
)

func New(
	transactionsV1 *transaction.Handler,
	budgetsV1 *budget.Handler,
	reportsV1 *report.Handler,
	importV1 *importcsv.Handler,
	categoriesV1 *categorymap.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			budgetsV1.Routes(r)
		})

		r.Route("/reports", reportsV1.Routes)

		r.Route("/import", importV1.Routes)

		r.Route("/categories", categoriesV1.Routes)
	})

	return router
}
