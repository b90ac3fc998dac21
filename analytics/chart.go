// analytics/chart.go
package analytics

import (
	"errors"
	"fmt"

	"github.com/vicanso/go-charts/v2"
)

// RenderEquityPNG renders an equity curve to a PNG line chart.
func RenderEquityPNG(points []ChartDataPoint, title string) ([]byte, error) {
	if len(points) == 0 {
		return nil, errors.New("no points to render")
	}

	values := make([]float64, len(points))
	labels := make([]string, len(points))
	minVal, maxVal := points[0].Balance, points[0].Balance

	for i, p := range points {
		values[i] = p.Balance
		if p.TradeNumber == 0 && !p.Transfer {
			labels[i] = "Start"
		} else if p.Transfer {
			labels[i] = p.Date.Format("Jan 02") + " (T)"
		} else {
			labels[i] = fmt.Sprintf("#%d", p.TradeNumber)
		}
		if p.Balance < minVal {
			minVal = p.Balance
		}
		if p.Balance > maxVal {
			maxVal = p.Balance
		}
	}

	padding := (maxVal - minVal) * 0.05
	if padding == 0 {
		padding = maxVal * 0.05
	}
	yMin := minVal - padding
	yMax := maxVal + padding

	splitNum := 6
	if len(labels) <= 30 {
		splitNum = len(labels) / 3
		if splitNum < 3 {
			splitNum = 3
		}
	}

	p, err := charts.LineRender(
		[][]float64{values},
		charts.TitleTextOptionFunc(title),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        labels,
			SplitNumber: splitNum,
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.YAxisOptionFunc(charts.YAxisOption{
			Min:         &yMin,
			Max:         &yMax,
			DivideCount: 5,
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}
	return buf, nil
}
