// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the course admin dashboard.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"courseadmin/internal/api"
	"courseadmin/internal/cache"
	"courseadmin/internal/config"
	"courseadmin/internal/database"
	"courseadmin/internal/handlers"
	"courseadmin/internal/middleware"
	"courseadmin/internal/render"
	"courseadmin/internal/router"
	"courseadmin/internal/session"
	"courseadmin/internal/store"
)

func main() {
	// Load configuration from environment variables (and .env when present).
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON elsewhere.
	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"api", cfg.APIBaseURL,
	)

	// MongoDB holds the banners.
	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second)
	mongoClient, mongoDB, err := database.ConnectMongo(startCtx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		cancelStart()
		slog.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	bannerStore := store.NewBannerStore(mongoDB)
	if err := bannerStore.EnsureIndexes(startCtx); err != nil {
		slog.Warn("failed to ensure banner indexes", "error", err)
	}
	cancelStart()

	// PostgreSQL is optional; without it the activity log is off.
	var db *sql.DB
	var activityStore *store.ActivityStore
	if cfg.ActivityLogEnabled() {
		pgCtx, cancelPG := context.WithTimeout(context.Background(), 30*time.Second)
		db, err = database.Connect(pgCtx, cfg.DSN())
		if err != nil {
			cancelPG()
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		err = database.Migrate(pgCtx, db)
		cancelPG()
		if err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		activityStore = store.NewActivityStore(db)
		slog.Info("activity log enabled")
	} else {
		slog.Warn("POSTGRES_HOST not set, activity log disabled")
	}

	// Valkey backs sessions and the dropdown option cache.
	vkCtx, cancelVK := context.WithTimeout(context.Background(), 5*time.Second)
	valkeyClient, err := cache.ConnectValkey(vkCtx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	cancelVK()
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}

	// In non-development environments, mark cookies Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)
	lookups := cache.NewLookupCache(valkeyClient, cfg.LookupTTL)

	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	client := api.New(cfg.APIBaseURL, cfg.APITimeout)

	adminHandlers := handlers.NewAdmin(renderer, sessionStore, client, bannerStore, activityStore, lookups, cfg.MaxBannerBytes)
	authHandlers := handlers.NewAuth(renderer, sessionStore, client)

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)

	r := router.New(sessionStore, adminHandlers, authHandlers, secureCookies, loginLimiter, router.BodyLimits{
		Admin:  cfg.MaxUploadBytes,
		Banner: cfg.BannerBodyLimit(),
	})

	// WriteTimeout covers a banner upload plus the upstream API timeout.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.APITimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	exitCode := 0
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		exitCode = 1
	}

	loginLimiter.Stop()
	if err := valkeyClient.Close(); err != nil {
		slog.Warn("failed to close valkey", "error", err)
	}
	if db != nil {
		if err := db.Close(); err != nil {
			slog.Warn("failed to close database", "error", err)
		}
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		slog.Warn("failed to disconnect mongodb", "error", err)
	}

	if exitCode != 0 {
		os.Exit(exitCode)
	}
	slog.Info("server stopped gracefully")
}
