// Copyright (c) 2025-2026 TravelEdu
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

	"github.com/joho/godotenv"

	"github.com/traveledu/tcms-go/internal/aitrans"
	"github.com/traveledu/tcms-go/internal/cache"
	"github.com/traveledu/tcms-go/internal/config"
	"github.com/traveledu/tcms-go/internal/contact"
	"github.com/traveledu/tcms-go/internal/content"
	"github.com/traveledu/tcms-go/internal/geoip"
	"github.com/traveledu/tcms-go/internal/handler"
	"github.com/traveledu/tcms-go/internal/logging"
	"github.com/traveledu/tcms-go/internal/media"
	"github.com/traveledu/tcms-go/internal/middleware"
	"github.com/traveledu/tcms-go/internal/migrate"
	"github.com/traveledu/tcms-go/internal/notify"
	"github.com/traveledu/tcms-go/internal/scheduler"
	"github.com/traveledu/tcms-go/internal/session"
	"github.com/traveledu/tcms-go/internal/store"
	"github.com/traveledu/tcms-go/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	importLegacy := flag.Bool("import-legacy", false, "Import content from the legacy MySQL database and exit")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "tcms - TravelEdu CMS backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TCMS_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TCMS_DB_PATH           SQLite database path (default: ./data/tcms.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TCMS_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TCMS_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TCMS_UPLOADS_DIR       Uploads directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TCMS_REDIS_URL         Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TCMS_LEGACY_MYSQL_DSN  Legacy database DSN for -import-legacy\n")
	}

	flag.Parse()

	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		_, _ = fmt.Printf("tcms %s (built: %s)\n", info.String(), info.BuildTime)
		os.Exit(0)
	}

	if err := run(*importLegacy); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(importLegacy bool) error {
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
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("closing database", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	// WARN and ERROR records also land in the events table.
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := store.Seed(ctx, db); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	cacheBackend := "memory"
	if cfg.UseRedisCache() {
		cacheBackend = "redis"
	}
	c, err := cache.NewCache(cache.CacheConfig{
		Type:            cacheBackend,
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
		if err := c.Close(); err != nil {
			slog.Error("closing cache", "error", err)
		}
	}()
	if cacheBackend == "redis" {
		slog.Info("cache initialized", "backend", cacheBackend, "url", cache.SanitizeRedisURL(cfg.RedisURL))
	} else {
		slog.Info("cache initialized", "backend", cacheBackend)
	}

	contentSvc := content.NewService(db, c)
	mediaSvc := media.NewService(db, cfg.UploadsDir)

	if cfg.DoSeed {
		admin, err := store.New(db).FirstAdminUser(ctx)
		if err != nil {
			return fmt.Errorf("looking up admin account for demo seed: %w", err)
		}
		if err := contentSvc.SeedDemo(ctx, admin.ID); err != nil {
			return fmt.Errorf("seeding demo content: %w", err)
		}
	}

	if importLegacy {
		return runLegacyImport(ctx, cfg, db, contentSvc, logger)
	}

	geo := geoip.NewLookup()
	if cfg.GeoIPEnabled() {
		if err := geo.Init(cfg.GeoIPDBPath); err != nil {
			slog.Warn("geoip disabled", "error", err)
		} else {
			defer geo.Close()
		}
	}

	var mailer notify.Mailer
	if cfg.SMTPEnabled() {
		mailer = notify.NewSMTPMailer(cfg)
	}
	dispatcher := notify.NewDispatcher(mailer, logger, notify.Config{})
	dispatcher.Start(ctx)
	defer dispatcher.Stop()

	contactSvc := contact.NewService(db, geo, dispatcher)

	sessions := session.New(db, cfg.IsDevelopment())

	apiHandler := handler.New(cfg, db, contentSvc, mediaSvc, contactSvc, sessions, c)
	if cfg.AIEnabled() {
		apiHandler.SetTranslator(aitrans.New(cfg))
		slog.Info("ai translation drafts enabled", "model", cfg.OpenAIModel)
	}

	var resolver middleware.AuthorResolver
	if cfg.AuthDisabled && cfg.IsDevelopment() {
		resolver = &middleware.DevResolver{Queries: store.New(db)}
		slog.Warn("authentication disabled, requests act as the first admin")
	} else {
		resolver = &middleware.SessionResolver{Sessions: sessions, Queries: store.New(db)}
	}

	sched := scheduler.New(db, contentSvc, mediaSvc, geo, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           apiHandler.Routes(resolver),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server",
			"addr", cfg.ServerAddr(),
			"env", cfg.Env,
			"version", appVersion,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

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

// runLegacyImport performs the one-shot import from the predecessor site.
func runLegacyImport(ctx context.Context, cfg *config.Config, db *sql.DB, contentSvc *content.Service, logger *slog.Logger) error {
	if cfg.LegacyMySQLDSN == "" {
		return fmt.Errorf("TCMS_LEGACY_MYSQL_DSN is required for -import-legacy")
	}

	admin, err := store.New(db).FirstAdminUser(ctx)
	if err != nil {
		return fmt.Errorf("looking up admin account for import attribution: %w", err)
	}

	reader, err := migrate.NewReader(cfg.LegacyMySQLDSN)
	if err != nil {
		return err
	}
	defer reader.Close()

	res, err := migrate.NewImporter(contentSvc, admin.ID, logger).Run(ctx, reader)
	if err != nil {
		return err
	}
	fmt.Printf("imported %d programs and %d posts (%d skipped)\n",
		res.ProgramsImported, res.PostsImported, res.Skipped)
	return nil
}
