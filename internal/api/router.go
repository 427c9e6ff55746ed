package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type RouterOptions struct {
	CORSOrigins []string
	APIRPS      float64
	APIBurst    int
}

// NewRouter wires the middleware stack and all routes
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Report-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var apiMiddlewares []func(http.Handler) http.Handler
	if opts.APIRPS > 0 {
		apiMiddlewares = append(apiMiddlewares, RateLimit(opts.APIRPS, opts.APIBurst))
	}
	h.RegisterRoutes(r, apiMiddlewares...)

	return r
}
