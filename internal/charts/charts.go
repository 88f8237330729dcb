// Package charts renders report charts as PNG images.
package charts

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"laporan/internal/core"
	"laporan/internal/report"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to chart")

const (
	barWidth   = 40
	barSpacing = 20
	height     = 400
	minWidth   = 480
)

var (
	incomeColor  = drawing.ColorFromHex("2e7d32")
	expenseColor = drawing.ColorFromHex("c62828")
)

// RenderMonthlyBars draws income and expense bars for each month, oldest
// first, as a PNG.
func RenderMonthlyBars(series []report.MonthTotals) ([]byte, error) {
	if !hasData(series) {
		return nil, ErrNoData
	}

	bars := make([]chart.Value, 0, len(series)*2)
	for _, m := range series {
		label := shortLabel(m.Month)
		bars = append(bars,
			chart.Value{
				Label: label + " +",
				Value: m.Income,
				Style: chart.Style{FillColor: incomeColor, StrokeColor: incomeColor},
			},
			chart.Value{
				Label: label + " -",
				Value: m.Expense,
				Style: chart.Style{FillColor: expenseColor, StrokeColor: expenseColor},
			},
		)
	}

	width := 120 + len(bars)*(barWidth+barSpacing)
	if width < minWidth {
		width = minWidth
	}

	graph := chart.BarChart{
		Title:      "Pemasukan dan Pengeluaran per Bulan",
		TitleStyle: chart.Style{FontSize: 12, FontColor: chart.ColorBlack},
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
			FillColor: chart.ColorWhite,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return core.FormatRupiah(f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render monthly chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func hasData(series []report.MonthTotals) bool {
	for _, m := range series {
		if m.Income != 0 || m.Expense != 0 {
			return true
		}
	}
	return false
}

// shortLabel gives "Jan 24" style axis labels.
func shortLabel(k core.MonthKey) string {
	name := k.Label()
	return fmt.Sprintf("%s %02d", name[:3], k.Year%100)
}
