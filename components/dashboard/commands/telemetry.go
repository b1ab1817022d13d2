package commands

import (
	"context"

	dashboard "github.com/qloax/niks-aqua/components/dashboard"
)

// Telemetry allows commands to emit structured events.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

func recordState(ctx context.Context, t Telemetry, event string, viewer dashboard.ViewerContext, state dashboard.ShellState) {
	t.Record(ctx, event, map[string]any{
		"viewer": viewer.UserID,
		"role":   string(state.Role),
		"tab":    string(state.Tab),
	})
}
