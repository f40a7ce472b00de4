package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"upilens/internal/advisor"
	"upilens/internal/charts"
	"upilens/internal/config"
	"upilens/internal/core"
	"upilens/internal/export"
	"upilens/internal/ledger"
	applog "upilens/internal/log"
)

// upilens-report is a one-shot exporter: it loads the ledger, aggregates
// the requested range and writes the charts and advice reports as PDF
// files, without starting the HTTP server.
func main() {
	_ = godotenv.Load()

	var (
		ledgerPath = flag.String("ledger", "", "path to the ledger CSV (defaults to LEDGER_PATH)")
		startStr   = flag.String("start", "", "start date YYYY-MM-DD (defaults to the earliest record)")
		endStr     = flag.String("end", "", "end date YYYY-MM-DD (defaults to the latest record)")
		catsStr    = flag.String("categories", "", "comma-separated category filter (defaults to all)")
		outDir     = flag.String("out", ".", "output directory for the PDF files")
	)
	flag.Parse()

	logger := applog.New(applog.Config{Component: "upilens-report"})
	applog.SetDefault(logger)

	cfg := config.Load()
	if *ledgerPath != "" {
		cfg.LedgerPath = *ledgerPath
	}
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
	if len(records) == 0 {
		logger.Error("ledger holds no usable records", "path", cfg.LedgerPath)
		os.Exit(1)
	}

	params, err := buildParams(cfg, records, *startStr, *endStr, *catsStr)
	if err != nil {
		logger.Error("invalid filter", "error", err)
		os.Exit(1)
	}

	sum := core.Aggregate(records, params)

	backend := newAdvisorBackend(cfg, logger)
	advisorSvc := advisor.NewService(backend, cfg.AdviceTimeout, logger.WithComponent("advisor"))
	exporter := export.NewService(charts.NewRenderer(), logger.WithComponent("export"))

	ctx := context.Background()

	chartsPDF, err := exporter.ChartsReport(ctx, sum)
	if err != nil {
		logger.Error("charts report failed", "error", err)
		os.Exit(1)
	}
	advicePDF, err := exporter.AdviceReport(advisorSvc.Advise(ctx, sum))
	if err != nil {
		logger.Error("advice report failed", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Error("failed to create output directory", "dir", *outDir, "error", err)
		os.Exit(1)
	}
	for name, data := range map[string][]byte{
		"spending_charts.pdf":  chartsPDF,
		"financial_advice.pdf": advicePDF,
	} {
		path := filepath.Join(*outDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			logger.Error("failed to write report", "path", path, "error", err)
			os.Exit(1)
		}
		logger.Info("report written", "path", path, "bytes", len(data))
	}
}

func buildParams(cfg *config.Config, records []core.Transaction, startStr, endStr, catsStr string) (core.Params, error) {
	p := core.Params{
		SmallAmountCents:   cfg.SmallAmountCents,
		RecurrenceMinCount: cfg.RecurrenceMinCount,
		TopMerchants:       cfg.TopMerchants,
	}

	seen := make(map[string]bool)
	for i, t := range records {
		if i == 0 || t.Date.Before(p.Start.Time) {
			p.Start = t.Date
		}
		if i == 0 || t.Date.After(p.End.Time) {
			p.End = t.Date
		}
		if !seen[t.Category] {
			seen[t.Category] = true
			p.Categories = append(p.Categories, t.Category)
		}
	}

	if startStr != "" {
		d, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return p, fmt.Errorf("invalid start date %q: use YYYY-MM-DD", startStr)
		}
		p.Start = core.Date{Time: d}
	}
	if endStr != "" {
		d, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return p, fmt.Errorf("invalid end date %q: use YYYY-MM-DD", endStr)
		}
		p.End = core.Date{Time: d}
	}
	if catsStr != "" {
		p.Categories = p.Categories[:0]
		for _, c := range strings.Split(catsStr, ",") {
			if trimmed := strings.TrimSpace(c); trimmed != "" {
				p.Categories = append(p.Categories, trimmed)
			}
		}
	}

	return p, nil
}

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
	return gem
}
