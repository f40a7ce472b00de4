// Package export assembles summary charts and advice text into PDF reports.
package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"upilens/internal/charts"
	"upilens/internal/core"
	applog "upilens/internal/log"
)

// Kind selects which report an export produces.
type Kind string

const (
	KindCharts Kind = "charts"
	KindAdvice Kind = "advice"
)

// ParseKind maps a request parameter onto a report kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindCharts:
		return KindCharts, nil
	case KindAdvice:
		return KindAdvice, nil
	default:
		return "", fmt.Errorf("unknown export kind %q", s)
	}
}

// Service builds PDF reports from summary bundles.
type Service struct {
	renderer *charts.Renderer
	logger   *applog.Logger
}

func NewService(renderer *charts.Renderer, logger *applog.Logger) *Service {
	return &Service{
		renderer: renderer,
		logger:   logger,
	}
}

type chartPage struct {
	title string
	image []byte
}

// ChartsReport renders every chart for the bundle and lays them out one per
// page. Charts with no data are left out; a bundle with no plottable data
// still yields a valid PDF with a note page.
func (s *Service) ChartsReport(ctx context.Context, sum core.Summary) ([]byte, error) {
	jobID := uuid.NewString()
	s.logger.Info("building charts report", "job_id", jobID)

	pages := []chartPage{
		{title: "Spending by Category"},
		{title: "Category Share"},
		{title: "Spending by Day"},
		{title: "Spending by Hour"},
		{title: "Monthly Spending Trend"},
	}
	renderers := []func(core.Summary) ([]byte, error){
		s.renderer.CategoryBar,
		s.renderer.CategoryPie,
		s.renderer.WeekdayBar,
		s.renderer.HourBar,
		s.renderer.MonthlyTrend,
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			image, err := renderers[i](sum)
			if err != nil {
				return fmt.Errorf("chart %q: %w", pages[i].title, err)
			}
			pages[i].image = image
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("render charts: %w", err)
	}

	pdf := newDocument("Spending Charts Report")
	rendered := 0
	for _, page := range pages {
		if page.image == nil {
			continue
		}
		addChartPage(pdf, page.title, page.image)
		rendered++
	}
	if rendered == 0 {
		pdf.AddPage()
		pdf.SetFont("Arial", "", 12)
		pdf.MultiCell(0, 8, "No transactions matched the selected filters.", "", "L", false)
	}

	out, err := finish(pdf)
	if err != nil {
		return nil, err
	}
	s.logger.Info("charts report ready", "job_id", jobID, "pages", rendered, "bytes", len(out))
	return out, nil
}

// AdviceReport wraps advice text in a one-page PDF.
func (s *Service) AdviceReport(advice string) ([]byte, error) {
	jobID := uuid.NewString()
	s.logger.Info("building advice report", "job_id", jobID)

	pdf := newDocument("Financial Advice Report")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Financial Advice", "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 8, advice, "", "L", false)

	out, err := finish(pdf)
	if err != nil {
		return nil, err
	}
	s.logger.Info("advice report ready", "job_id", jobID, "bytes", len(out))
	return out, nil
}

func newDocument(title string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.SetMargins(10, 10, 10)
	return pdf
}

func addChartPage(pdf *fpdf.Fpdf, title string, image []byte) {
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(title, opts, bytes.NewReader(image))
	pdf.ImageOptions(title, 10, 30, 190, 0, false, opts, 0, "")
}

func finish(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
