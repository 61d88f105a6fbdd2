package router

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	invoiceHandler *handler.InvoiceHandler,
	health http.HandlerFunc,
	allowedOrigin string,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Order: RequestID -> Recovery -> Logging -> CORS
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(allowedOrigin))

	r.Get("/health", health)

	r.Route("/productos", func(r chi.Router) {
		r.Get("/", productHandler.List)
		r.Post("/", productHandler.Create)
		r.Get("/{id}", productHandler.GetByID)
		r.Put("/{id}", productHandler.Update)
		r.Delete("/{id}", productHandler.Delete)
	})

	r.Route("/facturas", func(r chi.Router) {
		r.Post("/", invoiceHandler.Create)
		r.Get("/{id}", invoiceHandler.GetReport)
	})

	return r
}
