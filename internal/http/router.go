package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type RouterConfig struct {
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
}

func NewRouter(cfg RouterConfig, store Storefront, logger *zap.Logger) http.Handler {
	productHandler := NewProductHandler(store, logger)
	cartHandler := NewCartHandler(store, logger)
	orderHandler := NewOrderHandler(store, logger)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(LoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(BodyLimitMiddleware(cfg.MaxRequestBodySize))

	health := newResponder(logger)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", productHandler.List)
		r.Get("/pricing/tiers", productHandler.Tiers)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
		})

		r.Route("/order", func(r chi.Router) {
			r.Get("/", orderHandler.Get)
			r.Post("/open", orderHandler.Open)
			r.Post("/confirm", orderHandler.Confirm)
			r.Post("/close", orderHandler.Close)
		})
	})

	return otelhttp.NewHandler(r, "storefront")
}
