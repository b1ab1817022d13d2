package dashboard

import "context"

// Provider fetches data required to render a widget instance.
type Provider interface {
	Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error)
}

// WidgetContext contains the metadata needed by providers. State and Counters
// are snapshots; providers must treat them as read-only.
type WidgetContext struct {
	Instance WidgetInstance
	Viewer   ViewerContext
	State    ShellState
	Counters TickSnapshot
}

// WidgetData is an opaque payload passed to templates.
type WidgetData map[string]any

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, meta WidgetContext) (WidgetData, error)

// Fetch calls f(ctx, meta).
func (f ProviderFunc) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	return f(ctx, meta)
}
