// Labelboard - Course Label Management
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/labelboard

// Package main is the entry point for the Labelboard server.
//
// Labelboard manages course labels: named tags that group course
// content for filtering and analytics. It serves an admin dashboard
// for listing, adding, editing and deleting labels, and a JSON REST
// endpoint used by the editor.
//
// Startup order:
//
//  1. Configuration (Koanf v2: defaults, config.yaml, environment)
//  2. Logging (zerolog)
//  3. BadgerDB record store with in-process list cache
//  4. Anti-forgery token manager and admin authentication
//  5. HTTP server under a suture supervision tree
//
// The server shuts down gracefully on SIGINT and SIGTERM, draining
// in-flight requests up to server.shutdown_timeout.
//
// Minimal production configuration:
//
//	export SECURITY_XSRF_SECRET=$(openssl rand -base64 32)
//	export SECURITY_ADMIN_USERNAME=admin
//	export SECURITY_ADMIN_PASSWORD=secure-password
//	./labelboard
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/labelboard/internal/admin"
	"github.com/tomtom215/labelboard/internal/api"
	"github.com/tomtom215/labelboard/internal/auth"
	"github.com/tomtom215/labelboard/internal/cache"
	"github.com/tomtom215/labelboard/internal/config"
	"github.com/tomtom215/labelboard/internal/labels"
	"github.com/tomtom215/labelboard/internal/logging"
	"github.com/tomtom215/labelboard/internal/store"
	"github.com/tomtom215/labelboard/internal/supervisor"
	"github.com/tomtom215/labelboard/internal/supervisor/services"
	"github.com/tomtom215/labelboard/internal/xsrf"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "labelboard: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)).
		Bool("in_memory", cfg.Database.InMemory).
		Msg("starting labelboard")

	db, err := store.OpenBadger(cfg.Database.Path, cfg.Database.InMemory)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("failed to close database")
		}
	}()

	svc := labels.NewService(store.New(db, cache.New()))

	tokens, err := xsrf.NewManager(cfg.Security.XSRFSecret, cfg.Security.XSRFTokenTTL)
	if err != nil {
		return fmt.Errorf("failed to create token manager: %w", err)
	}

	nav := admin.NewNavRegistry()
	admin.RegisterNav(nav)

	dashboard, err := admin.NewDashboard(svc, tokens, nav)
	if err != nil {
		return fmt.Errorf("failed to create dashboard: %w", err)
	}

	var adminAuth func(http.Handler) http.Handler
	if cfg.Security.AdminUsername != "" {
		basicAuth, err := auth.NewBasicAuthManager(cfg.Security.AdminUsername, cfg.Security.AdminPassword)
		if err != nil {
			return fmt.Errorf("failed to configure admin auth: %w", err)
		}
		adminAuth = basicAuth.Middleware
	} else {
		logging.Warn().Msg("admin dashboard is unauthenticated; set SECURITY_ADMIN_USERNAME")
	}

	handler := api.NewHandler(svc, tokens, func() error {
		if db.IsClosed() {
			return errors.New("database is closed")
		}
		return nil
	})

	router := api.NewRouter(api.RouterConfig{
		Handler:           handler,
		AdminMount:        func(r chi.Router) { dashboard.Routes(r) },
		AdminAuth:         adminAuth,
		CORSOrigins:       cfg.Security.CORSOrigins,
		RateLimitReqs:     cfg.Security.RateLimitReqs,
		RateLimitWindow:   cfg.Security.RateLimitWindow,
		RateLimitDisabled: cfg.Security.RateLimitDisabled,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)
	tree.AddService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("serving")
	errCh := tree.ServeBackground(ctx)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("supervisor exited: %w", err)
		}
	case <-ctx.Done():
		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("supervisor exited: %w", err)
			}
		case <-time.After(cfg.Server.ShutdownTimeout + 5*time.Second):
			logging.Warn().Msg("shutdown timed out")
		}
	}

	logging.Info().Msg("labelboard stopped")
	return nil
}
