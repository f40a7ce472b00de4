// Package charts renders summary bundles as PNG images.
package charts

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"upilens/internal/core"
)

const (
	chartWidth  = 1200
	chartHeight = 600
)

// Renderer turns summary slices into PNG charts. A renderer with no data to
// plot returns nil bytes and no error so callers can skip the image.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func background() chart.Style {
	return chart.Style{
		Padding: chart.Box{
			Top:    50,
			Left:   50,
			Right:  50,
			Bottom: 50,
		},
		FillColor: chart.ColorWhite,
	}
}

func amountFormatter(v interface{}) string {
	return fmt.Sprintf("%.0f", v.(float64))
}

func barStyle() chart.Style {
	return chart.Style{
		StrokeColor: chart.ColorBlue,
		FillColor:   chart.ColorBlue.WithAlpha(100),
		FontSize:    12,
		FontColor:   chart.ColorBlack,
	}
}

func renderBars(title string, bars []chart.Value) ([]byte, error) {
	graph := chart.BarChart{
		Title: title,
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: chart.ColorBlack,
		},
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   60,
		Background: background(),
		YAxis: chart.YAxis{
			ValueFormatter: amountFormatter,
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render %s: %w", title, err)
	}
	return buffer.Bytes(), nil
}

// CategoryBar plots total spend per category, highest first.
func (r *Renderer) CategoryBar(sum core.Summary) ([]byte, error) {
	if len(sum.CategoryTotals) == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, 0, len(sum.CategoryTotals))
	for _, ct := range sum.CategoryTotals {
		bars = append(bars, chart.Value{
			Label: ct.Category,
			Value: ct.Total.Units(),
			Style: barStyle(),
		})
	}
	return renderBars("Spending by Category", bars)
}

// CategoryPie plots the category share of total spend. Categories with a
// non-positive total are skipped since a pie slice cannot represent them.
func (r *Renderer) CategoryPie(sum core.Summary) ([]byte, error) {
	var total float64
	for _, ct := range sum.CategoryTotals {
		if ct.Total.Cents > 0 {
			total += ct.Total.Units()
		}
	}
	if total == 0 {
		return nil, nil
	}

	values := make([]chart.Value, 0, len(sum.CategoryTotals))
	for _, ct := range sum.CategoryTotals {
		if ct.Total.Cents <= 0 {
			continue
		}
		amount := ct.Total.Units()
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %.0f (%.1f%%)", ct.Category, amount, amount/total*100),
			Value: amount,
		})
	}

	pie := chart.PieChart{
		Width:      chartWidth,
		Height:     chartHeight,
		Values:     values,
		Background: background(),
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render category pie: %w", err)
	}
	return buffer.Bytes(), nil
}

// WeekdayBar plots total spend per weekday, highest first.
func (r *Renderer) WeekdayBar(sum core.Summary) ([]byte, error) {
	if len(sum.WeekdayTotals) == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, 0, len(sum.WeekdayTotals))
	for _, wt := range sum.WeekdayTotals {
		bars = append(bars, chart.Value{
			Label: wt.Weekday.String(),
			Value: wt.Total.Units(),
			Style: barStyle(),
		})
	}
	return renderBars("Spending by Day", bars)
}

// HourBar plots total spend per hour of day, highest first.
func (r *Renderer) HourBar(sum core.Summary) ([]byte, error) {
	if len(sum.HourTotals) == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, 0, len(sum.HourTotals))
	for _, ht := range sum.HourTotals {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%02d", ht.Hour),
			Value: ht.Total.Units(),
			Style: barStyle(),
		})
	}
	return renderBars("Spending by Hour", bars)
}

// MonthlyTrend plots spend per calendar month as a time series.
func (r *Renderer) MonthlyTrend(sum core.Summary) ([]byte, error) {
	if len(sum.MonthlyTrend) == 0 {
		return nil, nil
	}

	xValues := make([]time.Time, len(sum.MonthlyTrend))
	yValues := make([]float64, len(sum.MonthlyTrend))
	for i, mt := range sum.MonthlyTrend {
		xValues[i] = time.Date(mt.Month.Year, mt.Month.Month, 1, 0, 0, 0, 0, time.UTC)
		yValues[i] = mt.Total.Units()
	}
	// go-chart refuses a series with fewer than two points, so a lone month
	// is extended with a flat segment into the next month.
	if len(xValues) == 1 {
		xValues = append(xValues, xValues[0].AddDate(0, 1, 0))
		yValues = append(yValues, yValues[0])
	}

	graph := chart.Chart{
		Title: "Monthly Spending Trend",
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: chart.ColorBlack,
		},
		Width:      chartWidth,
		Height:     chartHeight,
		Background: background(),
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01"),
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: amountFormatter,
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Total",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
				},
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render monthly trend: %w", err)
	}
	return buffer.Bytes(), nil
}
