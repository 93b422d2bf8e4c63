// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/intravvel/console-go/internal/ai"
	"github.com/intravvel/console-go/internal/config"
	"github.com/intravvel/console-go/internal/handler/api"
	"github.com/intravvel/console-go/internal/identity"
	"github.com/intravvel/console-go/internal/logging"
	"github.com/intravvel/console-go/internal/mailer"
	"github.com/intravvel/console-go/internal/scheduler"
	"github.com/intravvel/console-go/internal/store"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "intravvel console - travel services admin console\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INTRAVVEL_DB_PATH          SQLite database path (default: ./data/console.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INTRAVVEL_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INTRAVVEL_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INTRAVVEL_TOKEN_TTL_HOURS  Bearer token lifetime in hours (default: 24)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INTRAVVEL_AI_PROVIDER      AI provider: gemini|openai (default: gemini)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GEMINI_API_KEY             Gemini API credential (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OPENAI_API_KEY             OpenAI API credential (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INTRAVVEL_SMTP_HOST        SMTP relay for contact notifications (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ADMIN_EMAIL                Recipient for contact notifications (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("console %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	eventLogHandler := logging.NewEventLogHandler(textHandler, db)
	logger = slog.New(eventLogHandler)
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	// Seed default data
	ctx := context.Background()
	adminPassword := cfg.AdminPassword
	if adminPassword == "" {
		adminPassword = store.DefaultAdminPassword
	}
	if err := store.Seed(ctx, db, store.DefaultAdminEmail, adminPassword); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	// Seed demo services in development when requested
	if cfg.DoSeed && cfg.IsDevelopment() {
		if err := store.SeedDemo(ctx, db); err != nil {
			return fmt.Errorf("seeding demo content: %w", err)
		}
	}

	// Authentication provider
	tokenTTL := time.Duration(cfg.TokenTTLHours) * time.Hour
	identityService := identity.NewService(db, tokenTTL, logger)
	slog.Info("identity service initialized", "token_ttl", tokenTTL)

	// AI content bridge
	generator := ai.NewBridge(cfg.AIProvider, cfg.AIAPIKey(), cfg.AIModel, logger)
	if generator.Configured() {
		slog.Info("AI content bridge initialized", "provider", cfg.AIProvider)
	} else {
		slog.Warn("AI content bridge has no credential; generation is disabled",
			"provider", cfg.AIProvider)
	}

	// Contact notification mailer
	m := mailer.New(mailer.Config{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		Username:   cfg.EmailUser,
		Password:   cfg.EmailPass,
		AdminEmail: cfg.AdminEmail,
	}, logger)
	if m.Configured() {
		slog.Info("mailer initialized", "host", cfg.SMTPHost)
	} else {
		slog.Info("mailer not configured; contact notifications are disabled")
	}

	// Initialize and start scheduler
	sched := scheduler.New(db, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	apiHandler := api.NewHandler(db, identityService, generator, m, logger)

	// Create router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/health", apiHandler.Health)
	r.Mount("/api/v1", apiHandler.Routes())
	slog.Info("REST API v1 mounted at /api/v1")

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
