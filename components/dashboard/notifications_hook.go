package dashboard

import (
	"context"
	"errors"
)

// RefreshHooks fans a widget event out to several hooks. Every hook is called
// even when an earlier one fails; failures are joined.
type RefreshHooks []RefreshHook

// WidgetUpdated satisfies RefreshHook.
func (hooks RefreshHooks) WidgetUpdated(ctx context.Context, event WidgetEvent) error {
	var errs []error
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		if err := hook.WidgetUpdated(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// TelemetryHook records widget events as telemetry so ticks and shell
// changes show up in the structured log.
type TelemetryHook struct {
	Telemetry Telemetry
	// SkipTicks suppresses the high-frequency tick events.
	SkipTicks bool
}

// WidgetUpdated records the event.
func (h *TelemetryHook) WidgetUpdated(ctx context.Context, event WidgetEvent) error {
	if h == nil || h.Telemetry == nil {
		return nil
	}
	if h.SkipTicks && event.Reason == tickReason {
		return nil
	}
	payload := map[string]any{
		"reason": event.Reason,
		"area":   event.AreaCode,
	}
	if event.Viewer != "" {
		payload["viewer"] = event.Viewer
	}
	if event.Instance.DefinitionID != "" {
		payload["widget"] = event.Instance.DefinitionID
	}
	h.Telemetry.Record(ctx, "dashboard.widget.refresh", payload)
	return nil
}
