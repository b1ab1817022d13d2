package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

const defaultTemplate = "dashboard.html"

var errMissingRenderer = errors.New("dashboard: renderer not configured")

// Renderer is the subset of go-template the controller needs.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

type viewService interface {
	View(ctx context.Context, viewer ViewerContext) (View, error)
}

// ControllerOptions configures the template controller.
type ControllerOptions struct {
	Service    viewService
	Renderer   Renderer
	Template   string
	AssetsHost string
}

// Controller turns composed views into template payloads and HTML.
type Controller struct {
	opts ControllerOptions
}

// NewController wires the service and renderer into a controller.
func NewController(opts ControllerOptions) *Controller {
	if opts.Template == "" {
		opts.Template = defaultTemplate
	}
	opts.AssetsHost = ensureTrailingSlash(strings.TrimSpace(opts.AssetsHost))
	if opts.AssetsHost == "" {
		opts.AssetsHost = EChartsAssetsHost()
	}
	return &Controller{opts: opts}
}

// RenderTemplate renders the viewer's current screen into out.
func (c *Controller) RenderTemplate(ctx context.Context, viewer ViewerContext, out io.Writer) error {
	if c.opts.Renderer == nil {
		return errMissingRenderer
	}
	payload, err := c.ViewPayload(ctx, viewer)
	if err != nil {
		return err
	}
	_, err = c.opts.Renderer.Render(c.opts.Template, payload, out)
	return err
}

// ViewPayload builds the template payload for the viewer's current screen.
func (c *Controller) ViewPayload(ctx context.Context, viewer ViewerContext) (map[string]any, error) {
	if c.opts.Service == nil {
		return nil, errors.New("dashboard: view service not configured")
	}
	view, err := c.opts.Service.View(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return BuildViewPayload(view, c.opts.AssetsHost), nil
}

// BuildViewPayload flattens a view into the map consumed by templates.
func BuildViewPayload(view View, assetsHost string) map[string]any {
	widgets := make([]map[string]any, 0, len(view.Widgets))
	for _, inst := range view.Widgets {
		entry := map[string]any{
			"id":      inst.ID,
			"code":    inst.DefinitionID,
			"area":    inst.AreaCode,
			"name":    inst.Metadata["name"],
			"partial": widgetPartial(inst),
			"data":    inst.Metadata["data"],
		}
		if msg, ok := inst.Metadata["error"].(string); ok && msg != "" {
			entry["error"] = msg
		}
		widgets = append(widgets, entry)
	}

	roles := make([]map[string]any, 0, len(view.Roles))
	for _, role := range view.Roles {
		roles = append(roles, map[string]any{
			"value":  string(role),
			"active": role == view.State.Role,
		})
	}

	payload := map[string]any{
		"state":       templateValue(view.State),
		"heading":     templateValue(view.Heading),
		"navigation":  templateValue(view.Navigation),
		"roles":       roles,
		"widgets":     widgets,
		"alerts":      templateValue(view.Alerts),
		"assets_host": assetsHost,
		"counters": map[string]any{
			"production": FormatCount(view.Counters.Production),
			"revenue":    FormatCurrency(view.Counters.Revenue),
			"ticks":      view.Counters.Ticks,
		},
	}
	if view.Theme != nil {
		payload["theme"] = map[string]any{
			"name":    view.Theme.Name,
			"variant": view.Theme.Variant,
			"css":     view.Theme.CSSVariablesInline(),
		}
	}
	return payload
}

// templateValue converts structs into generic maps keyed by their json names so
// templates address fields the same way API clients do.
func templateValue(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}

func widgetPartial(inst WidgetInstance) string {
	if data, ok := inst.Metadata["data"].(WidgetData); ok {
		if _, chart := data["chart_html"]; chart {
			return "chart"
		}
		if _, rows := data["rows"]; rows {
			return "table"
		}
	}
	switch inst.DefinitionID {
	case WidgetKPICards:
		return "kpi_cards"
	case WidgetSyncBanner:
		return "sync_banner"
	}
	return strings.TrimPrefix(inst.DefinitionID, "aqua.widget.")
}
