// Labelboard - Course Label Management
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/labelboard

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/labelboard/internal/middleware"
)

// RouterConfig assembles the HTTP surface. AdminMount registers the
// dashboard routes; AdminAuth, when non-nil, wraps them in
// authentication.
type RouterConfig struct {
	Handler           *Handler
	AdminMount        func(chi.Router)
	AdminAuth         func(http.Handler) http.Handler
	CORSOrigins       []string
	RateLimitReqs     int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
}

// NewRouter builds the router: health probes and metrics outside the
// rate limiter, the REST endpoint and dashboard inside it.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", "X-XSRF-Token"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/api/v1/health/live", cfg.Handler.HealthLive)
	r.Get("/api/v1/health/ready", cfg.Handler.HealthReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if !cfg.RateLimitDisabled {
			r.Use(httprate.LimitByIP(cfg.RateLimitReqs, cfg.RateLimitWindow))
		}
		r.Use(middleware.PrometheusMetrics)

		r.Route(RestPath, func(r chi.Router) {
			r.Get("/", cfg.Handler.GetLabel)
			r.Put("/", cfg.Handler.PutLabel)
			r.Delete("/", cfg.Handler.DeleteLabel)
		})

		if cfg.AdminMount != nil {
			r.Group(func(r chi.Router) {
				if cfg.AdminAuth != nil {
					r.Use(cfg.AdminAuth)
				}
				cfg.AdminMount(r)
			})
		}
	})

	return r
}
