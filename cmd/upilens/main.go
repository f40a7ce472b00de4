package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"upilens/internal/advisor"
	"upilens/internal/charts"
	"upilens/internal/config"
	"upilens/internal/core"
	"upilens/internal/export"
	apphttp "upilens/internal/http"
	"upilens/internal/ledger"
	applog "upilens/internal/log"
)

func main() {
	// Optional .env for local runs; a missing file is not an error.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	records, warnings, err := ledger.LoadFile(cfg.LedgerPath)
	if err != nil {
		logger.Error("failed to load ledger", "path", cfg.LedgerPath, "error", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		logger.Warn("skipped ledger row", "line", w.Line, "reason", w.Reason)
	}
	logger.Info("ledger loaded", "path", cfg.LedgerPath, "records", len(records), "skipped", len(warnings))

	backend := newAdvisorBackend(cfg, logger)
	advisorSvc := advisor.NewService(backend, cfg.AdviceTimeout, logger.WithComponent("advisor"))

	renderer := charts.NewRenderer()
	exporter := export.NewService(renderer, logger.WithComponent("export"))

	srv := apphttp.NewServer(apphttp.Options{
		Addr:    ":" + cfg.Port,
		Records: records,
		Defaults: core.Params{
			SmallAmountCents:   cfg.SmallAmountCents,
			RecurrenceMinCount: cfg.RecurrenceMinCount,
			TopMerchants:       cfg.TopMerchants,
		},
		CacheSize: cfg.CacheSize,
		CacheTTL:  cfg.CacheTTL,
		Advisor:   advisorSvc,
		Renderer:  renderer,
		Exporter:  exporter,
		Logger:    logger,
	})

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 60 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("starting upilens server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("server stopped gracefully")
}

// newAdvisorBackend picks the Gemini backend when an API key is configured
// and a canned offline response otherwise.
func newAdvisorBackend(cfg *config.Config, logger *applog.Logger) advisor.Advisor {
	if cfg.GeminiAPIKey == "" {
		logger.Info("no Gemini API key set, advice runs offline")
		return &advisor.Canned{Response: advisor.FallbackAdvice}
	}

	gem, err := advisor.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Warn("Gemini client init failed, advice runs offline", "error", err)
		return &advisor.Canned{Response: advisor.FallbackAdvice}
	}
	logger.Info("Gemini advisor initialized", "model", cfg.GeminiModel)
	return gem
}
