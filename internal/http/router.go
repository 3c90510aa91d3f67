package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type RouterConfig struct {
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
	SessionCookieName  string
	SessionTTL         time.Duration
	CookieSecure       bool
}

// NewRouter wires the storefront routes. Only /api/v1 routes carry a session.
func NewRouter(svc Storefront, cfg RouterConfig, log *zap.Logger) http.Handler {
	productHandler := NewProductHandler(svc, cfg.RequestTimeout)
	cartHandler := NewCartHandler(svc, cfg.RequestTimeout)
	enquiryHandler := NewEnquiryHandler(svc, cfg.RequestTimeout)
	sessionHandler := NewSessionHandler(svc, cfg.SessionCookieName, cfg.RequestTimeout)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(MaxBodySize(cfg.MaxRequestBodySize))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(SessionMiddleware(cfg.SessionCookieName, cfg.CookieSecure, cfg.SessionTTL))

		r.Get("/shop", sessionHandler.Shop)
		r.Delete("/session", sessionHandler.End)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/{product_id}", productHandler.Get)
			r.Put("/{product_id}/rating", productHandler.Rate)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})

		r.Get("/checkout", cartHandler.Checkout)
		r.Post("/enquiries", enquiryHandler.Submit)
	})

	return r
}
