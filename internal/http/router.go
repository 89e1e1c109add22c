// Package httpapi assembles the HTTP surface: middleware chain, rider
// routes, ops routes, health and metrics.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pharmafinder/internal/platform/metrics"
	riderhandler "pharmafinder/internal/rider/handler"
	"pharmafinder/pkg/platform/httputil"
	adminmw "pharmafinder/pkg/platform/middleware/admin"
	authmw "pharmafinder/pkg/platform/middleware/auth"
	"pharmafinder/pkg/platform/middleware/metadata"
	"pharmafinder/pkg/platform/middleware/request"
	"pharmafinder/pkg/platform/middleware/requesttime"
)

const requestTimeout = 30 * time.Second

// HealthCheck reports whether one backend is reachable.
type HealthCheck func(ctx context.Context) error

// Deps are the collaborators the router needs. Metrics and Gatherer must be
// non-nil; Checks may be empty.
type Deps struct {
	Riders        *riderhandler.Handler
	Validator     authmw.CallerValidator
	Logger        *slog.Logger
	Metrics       *metrics.Metrics
	Gatherer      prometheus.Gatherer
	OpsAdminToken string
	Checks        map[string]HealthCheck
}

// NewRouter wires every public endpoint.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(request.Recovery(d.Logger))
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(request.Logger(d.Logger))
	r.Use(request.Latency(d.Metrics))

	r.Get("/healthz", healthHandler(d.Checks))
	r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(request.RecoveryWith(d.Logger, riderhandler.WritePanic))
		r.Use(chimw.Timeout(requestTimeout))
		r.Use(request.ContentTypeJSON)
		r.Use(authmw.OptionalCaller(d.Validator, d.Logger))
		d.Riders.Register(r)
	})

	r.Route("/ops", func(r chi.Router) {
		r.Use(request.ContentTypeJSON)
		r.Use(adminmw.RequireAdminToken(d.OpsAdminToken, d.Logger))
		d.Riders.RegisterOps(r)
	})
	return r
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		report := map[string]string{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				report[name] = err.Error()
				continue
			}
			report[name] = "ok"
		}
		body := map[string]any{"status": "ok", "checks": report}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		httputil.WriteJSON(w, status, body)
	}
}
