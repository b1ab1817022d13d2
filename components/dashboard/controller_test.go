package dashboard

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubViewService struct {
	view View
	err  error
}

func (s *stubViewService) View(context.Context, ViewerContext) (View, error) {
	return s.view, s.err
}

type stubRenderer struct {
	lastTemplate string
	lastPayload  map[string]any
	err          error
}

func (r *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.lastTemplate = name
	if payload, ok := data.(map[string]any); ok {
		r.lastPayload = payload
	}
	if len(out) > 0 && out[0] != nil {
		out[0].Write([]byte("<html></html>"))
	}
	return "<html></html>", r.err
}

func TestControllerRenderTemplate(t *testing.T) {
	service := &stubViewService{
		view: View{
			State:   DefaultShellState(),
			Heading: HeadingFor(TabDashboard),
			Roles:   Roles(),
			Widgets: []WidgetInstance{
				{ID: "dashboard:" + WidgetKPICards, DefinitionID: WidgetKPICards, Metadata: map[string]any{"data": WidgetData{"cards": []map[string]any{}}}},
			},
			Counters: TickSnapshot{Production: 1204520, Revenue: 450000},
			Theme:    DefaultTheme(SelectorForState(DefaultShellState())),
		},
	}
	renderer := &stubRenderer{}
	controller := NewController(ControllerOptions{
		Service:  service,
		Renderer: renderer,
		Template: "dashboard.html",
	})

	var buf bytes.Buffer
	if err := controller.RenderTemplate(context.Background(), ViewerContext{UserID: "owner"}, &buf); err != nil {
		t.Fatalf("RenderTemplate returned error: %v", err)
	}
	if renderer.lastTemplate != "dashboard.html" {
		t.Fatalf("expected dashboard template to render, got %s", renderer.lastTemplate)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected rendered output")
	}

	counters := renderer.lastPayload["counters"].(map[string]any)
	assert.Equal(t, "1,204,520", counters["production"])
	assert.Equal(t, "$450,000", counters["revenue"])

	widgets := renderer.lastPayload["widgets"].([]map[string]any)
	require.Len(t, widgets, 1)
	assert.Equal(t, "kpi_cards", widgets[0]["partial"])

	state := renderer.lastPayload["state"].(map[string]any)
	assert.Equal(t, "dashboard", state["tab"])
	assert.Equal(t, true, state["dark_mode"])

	theme := renderer.lastPayload["theme"].(map[string]any)
	assert.Equal(t, "dark", theme["variant"])
	assert.Contains(t, theme["css"], "--accent: #00f2ff;")
}

func TestControllerPropagatesServiceErrors(t *testing.T) {
	controller := NewController(ControllerOptions{
		Service:  &stubViewService{err: errors.New("store offline")},
		Renderer: &stubRenderer{},
	})
	err := controller.RenderTemplate(context.Background(), ViewerContext{}, io.Discard)
	require.EqualError(t, err, "store offline")
}

func TestControllerRequiresRenderer(t *testing.T) {
	controller := NewController(ControllerOptions{Service: &stubViewService{}})
	require.Error(t, controller.RenderTemplate(context.Background(), ViewerContext{}, io.Discard))
}

func TestBuildViewPayloadPartials(t *testing.T) {
	service := NewService(Options{ChartOptions: []EChartsProviderOption{WithChartCache(nil)}})
	view, err := service.View(context.Background(), ViewerContext{})
	require.NoError(t, err)

	payload := BuildViewPayload(view, DefaultEChartsAssetsHost)
	partials := map[string]string{}
	for _, widget := range payload["widgets"].([]map[string]any) {
		partials[widget["code"].(string)] = widget["partial"].(string)
	}
	assert.Equal(t, "chart", partials[WidgetSupplyTrend])
	assert.Equal(t, "chart", partials[WidgetDemandHeatmap])
	assert.Equal(t, "kpi_cards", partials[WidgetKPICards])
	assert.Equal(t, "quick_actions", partials[WidgetQuickActions])
	assert.Equal(t, DefaultEChartsAssetsHost, payload["assets_host"])
}

func TestEmbeddedTemplatesRender(t *testing.T) {
	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)

	controller := NewController(ControllerOptions{
		Service:  NewService(Options{}),
		Renderer: renderer,
	})
	var buf bytes.Buffer
	require.NoError(t, controller.RenderTemplate(context.Background(), ViewerContext{}, &buf))
	assert.Contains(t, buf.String(), "Command")
	assert.Contains(t, buf.String(), "Low Stock Alert")
}

func TestEChartsAssetsHostOverride(t *testing.T) {
	t.Setenv(envEChartsCDN, "https://cdn.example.com/echarts")
	assert.Equal(t, "https://cdn.example.com/echarts/", EChartsAssetsHost())
}

func TestControllerAssetsHostGetsTrailingSlash(t *testing.T) {
	controller := NewController(ControllerOptions{
		Service:    &stubViewService{view: View{State: DefaultShellState()}},
		Renderer:   &stubRenderer{},
		AssetsHost: " https://cdn.example/assets ",
	})
	payload, err := controller.ViewPayload(context.Background(), ViewerContext{})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/assets/", payload["assets_host"])
}
