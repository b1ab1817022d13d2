package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/qloax/niks-aqua/components/dashboard"
)

// SwitchRoleInput selects the KPI perspective.
type SwitchRoleInput struct {
	Viewer dashboard.ViewerContext
	Role   string
	// Result receives the updated shell state when set.
	Result *dashboard.ShellState
}

type roleSwitcher interface {
	SwitchRole(ctx context.Context, viewer dashboard.ViewerContext, role dashboard.Role) (dashboard.ShellState, error)
}

// SwitchRoleCommand validates and applies a role change.
type SwitchRoleCommand struct {
	service   roleSwitcher
	telemetry Telemetry
}

// NewSwitchRoleCommand creates the command.
func NewSwitchRoleCommand(service roleSwitcher, telemetry Telemetry) *SwitchRoleCommand {
	return &SwitchRoleCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SwitchRoleInput] = (*SwitchRoleCommand)(nil)

// Execute rejects roles outside the closed set before touching state.
func (c *SwitchRoleCommand) Execute(ctx context.Context, msg SwitchRoleInput) error {
	if c.service == nil {
		return errors.New("switch role command requires service")
	}
	role, err := dashboard.ParseRole(msg.Role)
	if err != nil {
		return err
	}
	state, err := c.service.SwitchRole(ctx, msg.Viewer, role)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = state
	}
	recordState(ctx, c.telemetry, "dashboard.command.role", msg.Viewer, state)
	return nil
}
