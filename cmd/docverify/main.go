// Command docverify submits documents for field extraction and verifies the results.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/docverify/internal/adapters/driven/api"
	"github.com/custodia-labs/docverify/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docverify/internal/adapters/driven/export"
	"github.com/custodia-labs/docverify/internal/adapters/driven/schema"
	"github.com/custodia-labs/docverify/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docverify/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docverify/internal/adapters/driven/watch"
	"github.com/custodia-labs/docverify/internal/adapters/driving/cli"
	"github.com/custodia-labs/docverify/internal/core/ports/driven"
	"github.com/custodia-labs/docverify/internal/core/services"
	"github.com/custodia-labs/docverify/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Environment overrides.
const (
	envAPIURL   = "DOCVERIFY_API_URL"
	envLogLevel = "DOCVERIFY_LOG_LEVEL"
	envHome     = "DOCVERIFY_HOME"
)

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetVersion(version)
	cli.SetFactory(build)
	code := cli.Execute(ctx)

	stop()
	os.Exit(code)
}

// build wires the adapters into the core services.
func build(ctx context.Context, opts cli.Options) (*cli.Services, func() error, error) {
	home := firstNonEmpty(opts.HomeDir, os.Getenv(envHome))
	if home == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, nil, fmt.Errorf("locate home directory: %w", err)
		}
		home = dir
	}

	configStore := openConfig(home)
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("load settings: %w", err)
	}

	if level := firstNonEmpty(os.Getenv(envLogLevel), settings.LogLevel); level != "" {
		if err := logger.SetLevel(level); err != nil {
			logger.Warn("%v, keeping %s", err, logger.Level())
		}
	}

	baseURL := firstNonEmpty(opts.APIURL, os.Getenv(envAPIURL), settings.API.BaseURL)

	var (
		session driven.SessionStore
		history driven.HistoryStore
		release = func() error { return nil }
	)
	if opts.Ephemeral {
		session = memory.NewSessionStore()
		history = memory.NewHistoryStore()
	} else {
		store, err := sqlite.NewStore(filepath.Join(home, "data"))
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		session = store.SessionStore()
		history = store.HistoryStore()
		release = store.Close
	}

	slot := services.NewCredentialSlot()

	gateway, err := api.NewGateway(baseURL, slot, settings.API.Timeout,
		api.WithRateLimiter(api.NewRateLimiter(settings.API.RateLimit,
			api.WithMaxRetryAfter(settings.Poll.Delay))))
	if err != nil {
		return nil, nil, errors.Join(fmt.Errorf("api gateway: %w", err), release())
	}
	issuer, err := api.NewTokenIssuer(baseURL, settings.API.Timeout)
	if err != nil {
		return nil, nil, errors.Join(fmt.Errorf("token issuer: %w", err), release())
	}

	validator, err := schema.NewValidator()
	if err != nil {
		return nil, nil, errors.Join(fmt.Errorf("response schema: %w", err), release())
	}

	authService := services.NewAuthService(issuer, slot, session)
	if err := authService.Restore(ctx); err != nil {
		logger.Warn("restore session: %v", err)
	}

	documentService := services.NewDocumentService(
		services.NewSubmitter(gateway),
		services.NewPoller(gateway, settings.Poll, services.WithValidator(validator)),
		services.NewUpdater(gateway),
		session,
		history,
	)

	exportService := services.NewExportService(session, history,
		export.NewCSVExporter(),
		export.NewJSONExporter(),
		export.NewXLSXExporter(),
	)

	logger.Debug("api %s, home %s, ephemeral %t", baseURL, home, opts.Ephemeral)

	return &cli.Services{
		Auth:      authService,
		Documents: documentService,
		Export:    exportService,
		Settings:  settingsService,
		History:   services.NewHistoryService(history),
		Watch:     services.NewWatchService(watch.NewWatcher(), documentService),
	}, release, nil
}

// openConfig falls back to an in-memory store when the file cannot be used,
// so a read-only home still runs with defaults.
func openConfig(home string) driven.ConfigStore {
	store, err := file.NewConfigStore(home)
	if err != nil {
		logger.Warn("config file unavailable, using defaults: %v", err)
		return memory.NewConfigStore()
	}
	return store
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
