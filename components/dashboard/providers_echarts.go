package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "320px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// demandPalette runs from idle to saturated demand.
var demandPalette = []string{"#1a1a1a", "#0077ff", "#00bfff", "#00f2ff"}

// ThemeResolver selects a chart theme for the widget being rendered.
type ThemeResolver func(WidgetContext) string

// ChartSeries is one legend entry and its values.
type ChartSeries struct {
	Name   string
	Points []ChartPoint
}

// ChartPoint is a single, optionally labelled value.
type ChartPoint struct {
	Label string
	Value float64
}

// chartSpec is the parsed widget configuration handed to a builder.
type chartSpec struct {
	Title    string
	Subtitle string
	XAxis    []string
	YAxis    []string
	Series   []ChartSeries
	Theme    string
	ChartID  string
}

type chartBuilder func(p *EChartsProvider, spec chartSpec) (string, error)

var chartBuilders = map[string]chartBuilder{
	"bar":     buildBar,
	"line":    buildLine,
	"pie":     buildPie,
	"heatmap": buildHeatMap,
}

// EChartsProvider renders server-side chart HTML for one chart kind.
type EChartsProvider struct {
	chartType     string
	cache         RenderCache
	theme         string
	themeResolver ThemeResolver
	assetsHost    string
}

// EChartsProviderOption customizes provider behavior.
type EChartsProviderOption func(*EChartsProvider)

// WithChartCache injects a render cache. Nil disables caching.
func WithChartCache(cache RenderCache) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.cache = cache
	}
}

// WithChartTheme sets a static theme (defaults to Westeros).
func WithChartTheme(theme string) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.theme = theme
	}
}

// WithChartThemeResolver picks the theme per widget, e.g. from dark mode.
func WithChartThemeResolver(resolver ThemeResolver) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.themeResolver = resolver
	}
}

// WithChartAssetsHost loads the ECharts scripts from another host. The host
// is treated as a directory.
func WithChartAssetsHost(host string) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.assetsHost = ensureTrailingSlash(strings.TrimSpace(host))
	}
}

// NewEChartsProvider builds a provider for bar, line, pie or heatmap charts.
func NewEChartsProvider(chartType string, options ...EChartsProviderOption) *EChartsProvider {
	p := &EChartsProvider{
		chartType: strings.ToLower(strings.TrimSpace(chartType)),
		cache:     sharedChartCache,
		theme:     types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// ChartType reports the chart kind rendered by the provider.
func (p *EChartsProvider) ChartType() string {
	return p.chartType
}

// Fetch renders the chart described by the widget configuration.
func (p *EChartsProvider) Fetch(_ context.Context, meta WidgetContext) (WidgetData, error) {
	cfg := meta.Instance.Configuration
	if cfg == nil {
		cfg = map[string]any{}
	}
	build, ok := chartBuilders[p.chartType]
	if !ok {
		return nil, fmt.Errorf("dashboard: unsupported chart type %q", p.chartType)
	}
	spec, err := p.parseSpec(cfg, meta)
	if err != nil {
		return nil, err
	}

	render := func() (string, error) { return build(p, spec) }
	var markup string
	if p.cache != nil {
		key := strings.Join([]string{meta.Instance.DefinitionID, meta.Instance.ID, p.chartType, spec.Theme, configHash(cfg)}, ":")
		markup, err = p.cache.GetOrRender(key, render)
	} else {
		markup, err = render()
	}
	if err != nil {
		return nil, err
	}

	data := WidgetData{
		"chart_html": markup,
		"chart_type": p.chartType,
		"title":      spec.Title,
		"subtitle":   spec.Subtitle,
		"theme":      spec.Theme,
	}
	if boolValue(cfg["dynamic"]) {
		data["dynamic"] = true
		if endpoint := stringValue(cfg["refresh_endpoint"], ""); endpoint != "" {
			data["refresh_endpoint"] = endpoint
		}
	}
	return data, nil
}

func (p *EChartsProvider) parseSpec(cfg map[string]any, meta WidgetContext) (chartSpec, error) {
	spec := chartSpec{
		Title:    stringValue(cfg["title"], "Chart"),
		Subtitle: stringValue(cfg["subtitle"], ""),
		Series:   seriesFromConfig(cfg["series"]),
		XAxis:    stringSliceValue(cfg["x_axis"]),
		YAxis:    stringSliceValue(cfg["y_axis"]),
		Theme:    p.resolveTheme(meta),
		ChartID:  chartElementID(meta.Instance.ID),
	}
	if len(spec.Series) == 0 {
		return chartSpec{}, fmt.Errorf("dashboard: chart series is required")
	}
	if len(spec.XAxis) == 0 {
		spec.XAxis = axisFromSeries(spec.Series)
	}
	if override := strings.TrimSpace(stringValue(cfg["theme"], "")); override != "" {
		spec.Theme = override
	}
	return spec, nil
}

func (p *EChartsProvider) resolveTheme(meta WidgetContext) string {
	if p.themeResolver != nil {
		if theme := p.themeResolver(meta); theme != "" {
			return theme
		}
	}
	if p.theme != "" {
		return p.theme
	}
	return types.ThemeWesteros
}

func (p *EChartsProvider) globals(spec chartSpec, extra ...charts.GlobalOpts) []charts.GlobalOpts {
	setup := opts.Initialization{
		ChartID: spec.ChartID,
		Theme:   spec.Theme,
		Width:   "100%",
		Height:  defaultChartHeight,
	}
	if p.assetsHost != "" {
		setup.AssetsHost = p.assetsHost
	}
	base := []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: spec.Title, Subtitle: spec.Subtitle}),
		charts.WithInitializationOpts(setup),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
	return append(base, extra...)
}

func buildBar(p *EChartsProvider, spec chartSpec) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(p.globals(spec)...)
	bar.SetXAxis(spec.XAxis)
	for _, s := range spec.Series {
		bar.AddSeries(s.Name, mapPoints(s.Points, func(_ int, pt ChartPoint) opts.BarData {
			return opts.BarData{Name: pt.Label, Value: pt.Value}
		}))
	}
	return markupOf(bar)
}

func buildLine(p *EChartsProvider, spec chartSpec) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(p.globals(spec)...)
	line.SetXAxis(spec.XAxis)
	for _, s := range spec.Series {
		line.AddSeries(s.Name, mapPoints(s.Points, func(_ int, pt ChartPoint) opts.LineData {
			return opts.LineData{Name: pt.Label, Value: pt.Value}
		}))
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return markupOf(line)
}

func buildPie(p *EChartsProvider, spec chartSpec) (string, error) {
	pie := charts.NewPie()
	pie.SetGlobalOptions(p.globals(spec)...)
	for _, s := range spec.Series {
		pie.AddSeries(s.Name, mapPoints(s.Points, func(i int, pt ChartPoint) opts.PieData {
			name := pt.Label
			if name == "" {
				name = fmt.Sprintf("Slice %d", i+1)
			}
			return opts.PieData{Name: name, Value: pt.Value}
		}))
	}
	return markupOf(pie)
}

// buildHeatMap places each series on its own row, one cell per x label.
func buildHeatMap(p *EChartsProvider, spec chartSpec) (string, error) {
	rows := spec.YAxis
	if len(rows) == 0 {
		rows = make([]string, len(spec.Series))
		for i, s := range spec.Series {
			rows[i] = s.Name
		}
	}
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(p.globals(spec,
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: rows}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        100,
			InRange:    &opts.VisualMapInRange{Color: demandPalette},
		}),
	)...)
	hm.SetXAxis(spec.XAxis)
	for row, s := range spec.Series {
		hm.AddSeries(s.Name, mapPoints(s.Points, func(col int, pt ChartPoint) opts.HeatMapData {
			return opts.HeatMapData{Name: pt.Label, Value: [3]any{col, row, pt.Value}}
		}))
	}
	return markupOf(hm)
}

// chartElementID turns a widget instance id into a DOM/JS safe chart id so the
// same widget renders identical markup on every request. Empty ids fall back
// to the random id go-echarts assigns.
func chartElementID(instanceID string) string {
	instanceID = strings.TrimSpace(instanceID)
	if instanceID == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString("chart_")
	for _, r := range instanceID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func mapPoints[T any](points []ChartPoint, fn func(int, ChartPoint) T) []T {
	out := make([]T, len(points))
	for i, pt := range points {
		out[i] = fn(i, pt)
	}
	return out
}

func markupOf(chart interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
