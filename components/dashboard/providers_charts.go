package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// ChartSeriesSource turns fixture data into chart axes and series for a metric.
type ChartSeriesSource func(fixtures FixtureStore, metric string) (xAxis []string, series []map[string]any, err error)

// FixtureChartProvider composes fixture series into an echarts widget.
type FixtureChartProvider struct {
	fixtures FixtureStore
	source   ChartSeriesSource
	renderer *EChartsProvider
}

// NewFixtureChartProvider builds a chart provider fed by the fixture store.
func NewFixtureChartProvider(fixtures FixtureStore, source ChartSeriesSource, renderer *EChartsProvider) *FixtureChartProvider {
	if renderer == nil {
		renderer = NewEChartsProvider("line")
	}
	return &FixtureChartProvider{
		fixtures: fixtures,
		source:   source,
		renderer: renderer,
	}
}

// Fetch renders the chart widget.
func (p *FixtureChartProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	if p.fixtures == nil || p.source == nil {
		return nil, fmt.Errorf("chart provider: fixtures and source are required")
	}
	cfg := meta.Instance.Configuration
	if cfg == nil {
		cfg = map[string]any{}
	}
	metric := strings.ToLower(stringValue(cfg["metric"], "orders"))
	xAxis, series, err := p.source(p.fixtures, metric)
	if err != nil {
		return nil, fmt.Errorf("chart provider: %w", err)
	}

	temp := meta
	temp.Instance.Configuration = map[string]any{
		"title":    stringValue(cfg["title"], titleize(metric)),
		"subtitle": stringValue(cfg["subtitle"], ""),
		"x_axis":   xAxis,
		"series":   series,
		"dynamic":  boolValue(cfg["dynamic"]),
		"theme":    cfg["theme"],
	}
	if p.renderer.ChartType() == "heatmap" {
		temp.Instance.Configuration["y_axis"] = []string{"Demand"}
	}

	data, err := p.renderer.Fetch(ctx, temp)
	if err != nil {
		return nil, err
	}
	data["metric"] = metric
	return data, nil
}

// TrendSeries charts the weekly order trend.
func TrendSeries(fixtures FixtureStore, metric string) ([]string, []map[string]any, error) {
	points := fixtures.Trends()
	labels := make([]string, len(points))
	values := make([]float64, len(points))
	for i, point := range points {
		labels[i] = point.Date
		switch metric {
		case "orders":
			values[i] = float64(point.Orders)
		case "revenue":
			values[i] = point.Revenue
		default:
			return nil, nil, fmt.Errorf("unsupported trend metric %q", metric)
		}
	}
	return labels, []map[string]any{{"name": titleize(metric), "data": values}}, nil
}

// DistrictSeries charts regional demand or order volume.
func DistrictSeries(fixtures FixtureStore, metric string) ([]string, []map[string]any, error) {
	districts := fixtures.Districts()
	labels := make([]string, len(districts))
	values := make([]float64, len(districts))
	for i, district := range districts {
		labels[i] = district.Name
		switch metric {
		case "demand":
			values[i] = float64(district.Demand)
		case "orders":
			values[i] = float64(district.Orders)
		default:
			return nil, nil, fmt.Errorf("unsupported district metric %q", metric)
		}
	}
	return labels, []map[string]any{{"name": titleize(metric), "data": values}}, nil
}

// SettlementSeries charts invoice totals per settlement status.
func SettlementSeries(fixtures FixtureStore, _ string) ([]string, []map[string]any, error) {
	totals := settlementTotals(fixtures.Payments())
	labels := make([]string, 0, len(totals))
	points := make([]map[string]any, 0, len(totals))
	for _, status := range SettlementStatuses() {
		amount, ok := totals[status]
		if !ok {
			continue
		}
		labels = append(labels, string(status))
		points = append(points, map[string]any{"name": string(status), "value": amount})
	}
	return labels, []map[string]any{{"name": "Settlements", "data": points}}, nil
}

func settlementTotals(payments []Payment) map[SettlementStatus]float64 {
	totals := map[SettlementStatus]float64{}
	for _, payment := range payments {
		totals[payment.Status] += payment.Amount
	}
	return totals
}

func rankedDistricts(districts []DistrictStat) []DistrictStat {
	sort.SliceStable(districts, func(i, j int) bool {
		return districts[i].Demand > districts[j].Demand
	})
	return districts
}

func titleize(value string) string {
	if value == "" {
		return ""
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
