package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/qloax/niks-aqua/components/dashboard"
)

// SwitchTabInput selects the active screen. Unknown tabs fall back to the dashboard.
type SwitchTabInput struct {
	Viewer dashboard.ViewerContext
	Tab    string
	Result *dashboard.ShellState
}

type tabSwitcher interface {
	SwitchTab(ctx context.Context, viewer dashboard.ViewerContext, tab string) (dashboard.ShellState, error)
}

// SwitchTabCommand changes the active tab.
type SwitchTabCommand struct {
	service   tabSwitcher
	telemetry Telemetry
}

// NewSwitchTabCommand creates the command.
func NewSwitchTabCommand(service tabSwitcher, telemetry Telemetry) *SwitchTabCommand {
	return &SwitchTabCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SwitchTabInput] = (*SwitchTabCommand)(nil)

// Execute applies the tab change.
func (c *SwitchTabCommand) Execute(ctx context.Context, msg SwitchTabInput) error {
	if c.service == nil {
		return errors.New("switch tab command requires service")
	}
	state, err := c.service.SwitchTab(ctx, msg.Viewer, msg.Tab)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = state
	}
	recordState(ctx, c.telemetry, "dashboard.command.tab", msg.Viewer, state)
	return nil
}
