package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/BerylCAtieno/persona-insights/internal/a2a"
	"github.com/BerylCAtieno/persona-insights/internal/agent"
	"github.com/BerylCAtieno/persona-insights/internal/cache"
	"github.com/BerylCAtieno/persona-insights/internal/config"
	"github.com/BerylCAtieno/persona-insights/internal/llm"
	"github.com/BerylCAtieno/persona-insights/internal/logging"
	"github.com/BerylCAtieno/persona-insights/internal/profiler"
	"github.com/BerylCAtieno/persona-insights/internal/prompt"
	"github.com/BerylCAtieno/persona-insights/internal/web"
)

// App holds the wired server and what must be closed on exit.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Server   *http.Server
	provider llm.Provider
	logFile  io.Closer
}

func initializeApp(ctx context.Context) (*App, error) {
	cfg, err := config.ProvideConfig()
	if err != nil {
		return nil, err
	}

	logger, logFile, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	app := &App{Config: cfg, Logger: logger, logFile: logFile}

	provider, err := llm.NewProvider(ctx, cfg.LLM)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("create llm provider: %w", err)
	}
	app.provider = provider
	client := llm.NewClient(provider, cfg.LLM.Model, logger)

	builder, err := prompt.NewBuilder(cfg.Insight.SchemaVersion, cfg.Insight.Language)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("load prompt template: %w", err)
	}
	service := profiler.NewService(builder, client, logger)

	card, err := agent.LoadCard(cfg.HTTP.BaseURL())
	if err != nil {
		app.Close()
		return nil, err
	}

	reports := cache.NewReportStore(cfg.ReportCache.MaxSize, time.Duration(cfg.ReportCache.TTLMinutes)*time.Minute)
	router, err := web.NewRouter(
		logger,
		web.NewInsightHandler(service, reports, logger),
		web.NewHealthHandler(provider, logger),
		a2a.NewHandler(service, card, logger),
	)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Server = &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return app, nil
}

// Close releases the provider client and then the log file.
func (a *App) Close() {
	if a.provider != nil {
		if err := a.provider.Close(); err != nil {
			a.Logger.Warn("llm_provider_close_failed", "err", err)
		}
		a.provider = nil
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}
