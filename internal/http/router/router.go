package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"freight-broker-service/internal/domain"
	"freight-broker-service/internal/http/handlers"
	"freight-broker-service/internal/http/middleware"
	"freight-broker-service/internal/http/middleware/ratelimit"
	"freight-broker-service/internal/logx"
)

// New constructs a chi-based http.Handler with base middleware and routes.
func New(
	h *handlers.Handlers,
	loads *handlers.LoadHandler,
	trucks *handlers.TruckHandler,
	rl *ratelimit.Middleware,
	logger logx.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(5 * time.Second))
	r.Use(middleware.Observability(logger))
	if rl != nil {
		r.Use(rl.Handler())
	}

	r.Get("/ping", h.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())
	r.NotFound(http.HandlerFunc(h.NotFound))

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.WithIdentity)

		api.Route("/loads", func(lr chi.Router) {
			lr.Get("/", loads.List)
			lr.Get("/{id}", loads.GetByID)
			lr.Get("/{id}/shipping-log", loads.ShippingLog)

			lr.Group(func(sr chi.Router) {
				sr.Use(middleware.RequireRole(domain.RoleShipper))
				sr.Post("/", loads.Create)
				sr.Patch("/{id}", loads.Update)
				sr.Delete("/{id}", loads.Delete)
				sr.Post("/{id}/post", loads.Post)
			})

			lr.Group(func(dr chi.Router) {
				dr.Use(middleware.RequireRole(domain.RoleDriver))
				dr.Post("/{id}/state", loads.Advance)
			})
		})

		api.Route("/trucks", func(tr chi.Router) {
			tr.Use(middleware.RequireRole(domain.RoleDriver))
			tr.Post("/", trucks.Create)
			tr.Get("/", trucks.List)
			tr.Patch("/{id}", trucks.Update)
			tr.Delete("/{id}", trucks.Delete)
			tr.Post("/{id}/assign", trucks.Assign)
		})
	})

	return r
}
