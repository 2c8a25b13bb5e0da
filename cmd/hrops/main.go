// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// hrops is a server-rendered admin console over the remote HR services.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/hrops/hrops-go/internal/cache"
	"github.com/hrops/hrops-go/internal/config"
	"github.com/hrops/hrops-go/internal/handler"
	"github.com/hrops/hrops-go/internal/hrclient"
	"github.com/hrops/hrops-go/internal/logging"
	"github.com/hrops/hrops-go/internal/middleware"
	"github.com/hrops/hrops-go/internal/notify"
	"github.com/hrops/hrops-go/internal/render"
	"github.com/hrops/hrops-go/internal/scheduler"
	"github.com/hrops/hrops-go/internal/session"
	"github.com/hrops/hrops-go/internal/store"
	"github.com/hrops/hrops-go/internal/timesheet"
	"github.com/hrops/hrops-go/internal/toast"
	"github.com/hrops/hrops-go/internal/version"
	"github.com/hrops/hrops-go/web"
)

// Build-time version information, injected via ldflags.
var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildTime    = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		info := version.Info{Version: buildVersion, GitCommit: buildCommit, BuildTime: buildTime}
		fmt.Printf("hrops %s (%s, built %s)\n", info.Version, info.GitCommit, info.BuildTime)
		return
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development convenience)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(textHandler))

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

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Mirror WARN and above into the event log table.
	logger := slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	sessionManager := session.New(db, cfg.IsDevelopment())
	sessionState := session.NewState(sessionManager)
	slog.Info("session manager initialized")

	healthCache, err := cache.NewCache(cache.CacheConfig{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	})
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := healthCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("templates sub fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	toasts := toast.NewRegistry(cfg.ToastDuration)
	defer toasts.Close()

	// Push notification channel with reconnect. The channel runs for the
	// process lifetime; page loads only read its history.
	notifications := notify.NewChannel(cfg.NotifySocketURL, cfg.NotifyHistoryLimit, logger)
	notifyCtx, stopNotify := context.WithCancel(context.Background())
	go notifications.Run(notifyCtx)
	defer func() {
		stopNotify()
		notifications.Close()
	}()
	slog.Info("notification channel started", "url", cfg.NotifySocketURL)

	newClient := func(base string) *hrclient.Client {
		return hrclient.New(hrclient.Options{
			BaseURL: base,
			Token:   sessionState.Token,
			Timeout: cfg.ClientTimeout,
		})
	}
	clients := handler.NewClients(
		newClient(cfg.CoreServiceURL),
		newClient(cfg.ProjectServiceURL),
		newClient(cfg.LeaveServiceURL),
	)

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	slog.Info("login protection initialized")

	h := handler.New(handler.Options{
		Logger:          logger,
		Renderer:        renderer,
		Session:         sessionState,
		Toasts:          toasts,
		Notifications:   notifications,
		LoginProtection: loginProtection,
		Clients:         clients,
		Timesheets:      timesheet.NewStore(),
		HealthCache:     healthCache,
		HealthTTL:       time.Duration(cfg.CacheTTL) * time.Second,
	})

	// Background jobs: prune old notifications, keep the health probe warm.
	sched := scheduler.New(logger)
	if err := sched.AddJob("@every 1h", "notification retention sweep", func() error {
		removed := notifications.Prune(time.Now().Add(-cfg.NotifyRetention))
		if removed > 0 {
			logger.Info("pruned notifications", "removed", removed)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("registering retention job: %w", err)
	}
	if err := sched.AddJob("@every 30s", "service health refresh", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return h.RefreshHealth(ctx)
	}); err != nil {
		return fmt.Errorf("registering health job: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.RequestPath)
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.ServerPort)))

	h.Routes(r)

	// Static assets from the embedded dist tree, cached for a year.
	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return fmt.Errorf("static sub fs: %w", err)
	}
	r.With(middleware.StaticCache(31536000)).
		Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
