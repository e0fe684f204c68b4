package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	jwttoken "inspectready/internal/jwt_token"
	"inspectready/internal/platform/config"
	"inspectready/internal/platform/metrics"
	"inspectready/internal/ratelimit"
	ratelimitmw "inspectready/internal/ratelimit/middleware"
	"inspectready/internal/readiness/handler"
	"inspectready/internal/readiness/service"
	"inspectready/pkg/platform/httputil"
	"inspectready/pkg/platform/middleware/auth"
	"inspectready/pkg/platform/middleware/metadata"
	"inspectready/pkg/platform/middleware/request"
	"inspectready/pkg/platform/middleware/requesttime"
)

type pinger interface {
	Ping(ctx context.Context) map[string]error
}

func newRouter(cfg config.Server, log *slog.Logger, reg prometheus.Registerer, svc *service.Service, limiter ratelimit.Store, deps pinger, opts ...handler.Option) http.Handler {
	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience,
		jwttoken.WithLeeway(cfg.JWTLeeway))

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(metrics.New(reg).Middleware)
	r.Use(request.AccessLog(log))

	r.Get("/healthz", healthz(deps))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtService.Validator(), log))
		r.Use(ratelimitmw.New(limiter, cfg.RateLimitPerMinute, log).PerCompany)
		handler.New(svc, log, opts...).Register(r)
	})
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthz(deps pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: map[string]string{}}
		status := http.StatusOK
		for name, err := range deps.Ping(ctx) {
			if err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
