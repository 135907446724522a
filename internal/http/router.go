package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tramitefacil/tramitefacil/internal/http/catalog"
	"github.com/tramitefacil/tramitefacil/internal/http/transaction"
	"github.com/tramitefacil/tramitefacil/internal/payment"
)

const healthTimeout = 5 * time.Second

func New(
	catalogV1 *catalog.Handler,
	transactionsV1 *transaction.Handler,
	provider payment.Provider,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Get("/healthz", healthz(provider))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/tramites", catalogV1.Routes)

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})
	})

	return router
}

func healthz(provider payment.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]string{"status": "ok", "payments": "ok"}
		status := http.StatusOK

		if provider == nil {
			body["payments"] = "unconfigured"
		} else {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			defer cancel()

			if err := provider.HealthCheck(ctx); err != nil {
				body["payments"] = "unavailable"
				status = http.StatusServiceUnavailable
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}
