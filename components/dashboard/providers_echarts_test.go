package dashboard

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEChartsBarProvider(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("bar", WithChartCache(nil))
	ctx := sampleChartContext("aqua.widget.region_volume", map[string]any{
		"title":  "Regional Order Volume",
		"x_axis": []string{"Mumbai", "Pune", "Thane"},
		"series": []map[string]any{
			{"name": "Orders", "data": []float64{12500, 8400, 7600}},
		},
	})

	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)

	assert.Equal(t, "bar", data["chart_type"])
	assert.Equal(t, "Regional Order Volume", data["title"])
	assert.Contains(t, html(data), "echarts")
}

func TestEChartsLineProvider(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("line", WithChartCache(nil))
	ctx := sampleChartContext("aqua.widget.supply_trend", map[string]any{
		"title":   "Supply Dynamics",
		"x_axis":  []string{"Mon", "Tue", "Wed"},
		"dynamic": true,
		"series": []map[string]any{
			{"name": "Orders", "data": []float64{400, 300, 200}},
		},
	})

	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	assert.Equal(t, "line", data["chart_type"])
	assert.Equal(t, true, data["dynamic"])
	assert.Contains(t, html(data), "echarts")
}

func TestEChartsPieProvider(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("pie", WithChartCache(nil))
	ctx := sampleChartContext("aqua.widget.settlement_mix", map[string]any{
		"title": "Settlement Mix",
		"series": []map[string]any{
			{
				"name": "Settlements",
				"data": []map[string]any{
					{"name": "Paid", "value": 4800},
					{"name": "Overdue", "value": 3000},
				},
			},
		},
	})

	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	assert.Equal(t, "pie", data["chart_type"])
	assert.Contains(t, html(data), "echarts")
}

func TestEChartsHeatmapProvider(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("heatmap", WithChartCache(nil))
	ctx := sampleChartContext("aqua.widget.demand_heatmap", map[string]any{
		"title":  "Territory Demand",
		"x_axis": []string{"Mumbai", "Pune"},
		"y_axis": []string{"Demand"},
		"series": []map[string]any{
			{"name": "Demand", "data": []float64{85, 72}},
		},
	})

	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	assert.Equal(t, "heatmap", data["chart_type"])
	assert.Contains(t, html(data), "visualmap")
}

func TestEChartsProviderInvalidType(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("bubble", WithChartCache(nil))
	ctx := sampleChartContext("aqua.widget.region_volume", map[string]any{
		"title": "Unsupported",
		"series": []map[string]any{
			{"name": "Series", "data": []float64{1}},
		},
	})

	_, err := provider.Fetch(context.Background(), ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestEChartsProviderRequiresSeries(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("bar", WithChartCache(nil))
	_, err := provider.Fetch(context.Background(), sampleChartContext("aqua.widget.region_volume", nil))
	require.Error(t, err)
}

func TestEChartsProviderUsesCache(t *testing.T) {
	t.Parallel()
	cache := &countingCache{}
	provider := NewEChartsProvider("bar", WithChartCache(cache))
	ctx := sampleChartContext("aqua.widget.region_volume", map[string]any{
		"title":  "Cached",
		"series": []map[string]any{{"name": "Series", "data": []float64{1, 2}}},
	})

	_, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	_, err = provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(1), cache.calls)
}

func TestEChartsProviderThemeOverride(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("bar", WithChartCache(nil), WithChartThemeResolver(func(WidgetContext) string {
		return types.ThemeWalden
	}))
	ctx := sampleChartContext("aqua.widget.region_volume", map[string]any{
		"title":  "Theme Override",
		"series": []map[string]any{{"name": "Series", "data": []float64{5, 6}}},
		"theme":  "wonderland",
	})

	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	assert.Equal(t, "wonderland", data["theme"])
}

func TestEChartsProviderThemeFollowsDarkMode(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("bar", WithChartCache(nil), WithChartThemeResolver(ChartThemeForState))
	ctx := sampleChartContext("aqua.widget.region_volume", map[string]any{
		"title":  "Theme From State",
		"series": []map[string]any{{"name": "Series", "data": []float64{1, 2}}},
	})

	ctx.State = ShellState{DarkMode: true}
	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	assert.Equal(t, types.ThemeChalk, data["theme"])

	ctx.State = ShellState{DarkMode: false}
	data, err = provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	assert.Equal(t, types.ThemeWesteros, data["theme"])
}

func TestEChartsProviderStaticTheme(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("bar", WithChartCache(nil), WithChartTheme(types.ThemeWalden))
	ctx := sampleChartContext("aqua.widget.region_volume", map[string]any{
		"title":  "Explicit Theme",
		"series": []map[string]any{{"name": "Series", "data": []float64{1}}},
	})

	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	assert.Equal(t, types.ThemeWalden, data["theme"])
}

func TestFixtureChartProviders(t *testing.T) {
	fixtures := DefaultFixtures()
	providers := DefaultProviders(fixtures, WithChartCache(nil))
	cases := map[string]map[string]any{
		WidgetSupplyTrend:   {"title": "Supply Dynamics", "metric": "orders", "kind": "line"},
		WidgetDemandHeatmap: {"title": "Territory Demand", "metric": "demand", "kind": "heatmap"},
		WidgetRegionVolume:  {"metric": "orders", "kind": "bar"},
		WidgetRevenueChart:  {"metric": "revenue", "kind": "bar"},
		WidgetSettlementMix: {"metric": "revenue", "kind": "pie"},
	}
	for code, cfg := range cases {
		data, err := providers[code].Fetch(context.Background(), sampleChartContext(code, cfg))
		require.NoError(t, err, code)
		assert.NotEmpty(t, data["chart_html"], code)
	}

	heatmap, err := providers[WidgetDemandHeatmap].Fetch(context.Background(), sampleChartContext(WidgetDemandHeatmap, cases[WidgetDemandHeatmap]))
	require.NoError(t, err)
	tiles, ok := heatmap["districts"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, tiles, 6)
	assert.Equal(t, "Full Neon", tiles[0]["tier"])
}

func sampleChartContext(definition string, cfg map[string]any) WidgetContext {
	return WidgetContext{
		Instance: WidgetInstance{
			ID:            definition + "-instance",
			DefinitionID:  definition,
			Configuration: cfg,
		},
		Viewer: ViewerContext{UserID: "tester", Locale: "en"},
		State:  DefaultShellState(),
	}
}

func html(data WidgetData) string {
	val, _ := data["chart_html"].(string)
	return strings.ToLower(val)
}

type countingCache struct {
	calls int32
	value string
}

func (c *countingCache) GetOrRender(_ string, render func() (string, error)) (string, error) {
	if c.value != "" {
		return c.value, nil
	}
	html, err := render()
	if err != nil {
		return "", err
	}
	atomic.AddInt32(&c.calls, 1)
	c.value = html
	return html, nil
}

func BenchmarkEChartsBarChart(b *testing.B) {
	provider := NewEChartsProvider("bar", WithChartCache(nil))
	ctx := sampleChartContext("aqua.widget.region_volume", map[string]any{
		"title":  "Benchmark",
		"x_axis": []string{"A", "B", "C", "D", "E"},
		"series": []map[string]any{
			{"name": "S1", "data": []float64{10, 20, 30, 40, 50}},
			{"name": "S2", "data": []float64{11, 21, 31, 41, 51}},
		},
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := provider.Fetch(context.Background(), ctx); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEChartsBarChartCached(b *testing.B) {
	provider := NewEChartsProvider("bar", WithChartCache(NewChartCache(5*time.Minute)))
	ctx := sampleChartContext("aqua.widget.region_volume", map[string]any{
		"title":  "Cached Benchmark",
		"x_axis": []string{"A", "B", "C", "D", "E"},
		"series": []map[string]any{
			{"name": "S1", "data": []float64{10, 20, 30, 40, 50}},
		},
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := provider.Fetch(context.Background(), ctx); err != nil {
			b.Fatal(err)
		}
	}
}

func TestEChartsProviderMarkupIsStableWithoutCache(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("line", WithChartCache(nil))
	ctx := sampleChartContext("aqua.widget.supply_trend", map[string]any{
		"series": []map[string]any{{"name": "Volume", "data": []float64{3, 5, 8}}},
	})

	first, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	second, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)

	assert.Equal(t, first["chart_html"], second["chart_html"])
	assert.Contains(t, html(first), "chart_aqua_widget_supply_trend_instance")
}

func TestChartElementID(t *testing.T) {
	assert.Equal(t, "chart_dashboard_aqua_widget_kpi_cards", chartElementID("dashboard:aqua.widget.kpi_cards"))
	assert.Empty(t, chartElementID("  "))
}

func TestEChartsProviderAssetsHostIsDirectory(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("bar", WithChartCache(nil), WithChartAssetsHost("https://cdn.example/assets"))
	data, err := provider.Fetch(context.Background(), sampleChartContext("aqua.widget.region_volume", map[string]any{
		"series": []map[string]any{{"name": "Orders", "data": []float64{4, 2}}},
	}))
	require.NoError(t, err)
	assert.Contains(t, html(data), "https://cdn.example/assets/echarts.min.js")
	assert.NotContains(t, html(data), "assetsecharts")
}
