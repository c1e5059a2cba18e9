// Package httptransport assembles the HTTP surface: middleware chain,
// module handlers, health, and metrics.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"employees/internal/platform/metrics"
	"employees/internal/platform/middleware"
	"employees/pkg/platform/httputil"
)

// Registrar is implemented by module handlers that mount their own routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthChecker reports dependency health for the readiness endpoint.
type HealthChecker func(ctx context.Context) error

// NewRouter wires all endpoints behind the shared middleware chain.
func NewRouter(logger *slog.Logger, m *metrics.Metrics, health HealthChecker, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)
	r.Use(m.Middleware)

	for _, h := range handlers {
		h.Register(r)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		if health != nil {
			if err := health(req.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": err.Error()})
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
