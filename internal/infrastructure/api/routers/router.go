package routers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mufasadev/easypay-receipts/internal/di"
	"github.com/mufasadev/easypay-receipts/internal/infrastructure/api/handlers"
	http2 "github.com/mufasadev/easypay-receipts/internal/infrastructure/api/http"
	"github.com/mufasadev/easypay-receipts/internal/infrastructure/api/middlewares"
	"github.com/mufasadev/easypay-receipts/pkg/log"
)

func NewRouter(container *di.Container, allowedOrigins []string) *chi.Mux {
	logger := log.GetLogger()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewares.AccessLogger(&logger))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", handlers.Health)
	router.Handle("/metrics", promhttp.Handler())

	rh := container.ReceiptHandler
	th := container.TransactionHandler

	router.Route("/api", func(r chi.Router) {
		// path used by the dashboard since before versioning
		r.With(middlewares.JSONContentTypeMiddleware).Post("/send-receipt", rh.SendReceipt)

		// Set up v1 routes with a path prefix
		r.Route("/v1", func(r chi.Router) {
			r.Route("/receipts", func(r chi.Router) {
				r.With(middlewares.JSONContentTypeMiddleware).Post("/preview", rh.Preview)
				r.Get(fmt.Sprintf("/{%s}/dispatches", http2.ReferenceParam), rh.History)
			})
			r.Route(fmt.Sprintf("/transactions/{%s}", http2.TransactionIDParam), func(r chi.Router) {
				r.Use(middlewares.TransactionIDValidationMiddleware)
				r.With(middlewares.JSONContentTypeMiddleware).Patch("/status", th.UpdateStatus)
				r.Post("/receipt", th.ResendReceipt)
			})
		})
	})

	return router
}
