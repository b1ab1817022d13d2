package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/qloax/niks-aqua/components/dashboard"
)

// SetAlertsOpenInput opens or closes the alert drawer.
type SetAlertsOpenInput struct {
	Viewer dashboard.ViewerContext
	Open   bool
	Result *dashboard.ShellState
}

// AcknowledgeAlertsInput targets the viewer's alert drawer.
type AcknowledgeAlertsInput struct {
	Viewer dashboard.ViewerContext
}

type alertService interface {
	SetAlertsOpen(ctx context.Context, viewer dashboard.ViewerContext, open bool) (dashboard.ShellState, error)
	AcknowledgeAlerts(ctx context.Context, viewer dashboard.ViewerContext) error
}

// SetAlertsOpenCommand drives the drawer visibility.
type SetAlertsOpenCommand struct {
	service   alertService
	telemetry Telemetry
}

// NewSetAlertsOpenCommand creates the command.
func NewSetAlertsOpenCommand(service alertService, telemetry Telemetry) *SetAlertsOpenCommand {
	return &SetAlertsOpenCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetAlertsOpenInput] = (*SetAlertsOpenCommand)(nil)

// Execute records the drawer state.
func (c *SetAlertsOpenCommand) Execute(ctx context.Context, msg SetAlertsOpenInput) error {
	if c.service == nil {
		return errors.New("alerts command requires service")
	}
	state, err := c.service.SetAlertsOpen(ctx, msg.Viewer, msg.Open)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = state
	}
	c.telemetry.Record(ctx, "dashboard.command.alerts", map[string]any{
		"viewer": msg.Viewer.UserID,
		"open":   state.AlertsOpen,
	})
	return nil
}

// AcknowledgeAlertsCommand accepts the drawer's acknowledge action. Alerts stay untouched.
type AcknowledgeAlertsCommand struct {
	service   alertService
	telemetry Telemetry
}

// NewAcknowledgeAlertsCommand creates the command.
func NewAcknowledgeAlertsCommand(service alertService, telemetry Telemetry) *AcknowledgeAlertsCommand {
	return &AcknowledgeAlertsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AcknowledgeAlertsInput] = (*AcknowledgeAlertsCommand)(nil)

// Execute forwards the acknowledgement.
func (c *AcknowledgeAlertsCommand) Execute(ctx context.Context, msg AcknowledgeAlertsInput) error {
	if c.service == nil {
		return errors.New("acknowledge command requires service")
	}
	if err := c.service.AcknowledgeAlerts(ctx, msg.Viewer); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.alerts_ack", map[string]any{
		"viewer": msg.Viewer.UserID,
	})
	return nil
}
