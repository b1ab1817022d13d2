package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/qloax/niks-aqua/components/dashboard"
)

// ToggleInput flips a boolean shell flag for the viewer.
type ToggleInput struct {
	Viewer dashboard.ViewerContext
	Result *dashboard.ShellState
}

type themeToggler interface {
	ToggleDarkMode(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.ShellState, error)
}

type sidebarToggler interface {
	ToggleSidebar(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.ShellState, error)
}

// ToggleThemeCommand switches between the dark and light palettes.
type ToggleThemeCommand struct {
	service   themeToggler
	telemetry Telemetry
}

// NewToggleThemeCommand creates the command.
func NewToggleThemeCommand(service themeToggler, telemetry Telemetry) *ToggleThemeCommand {
	return &ToggleThemeCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleInput] = (*ToggleThemeCommand)(nil)

// Execute flips dark mode.
func (c *ToggleThemeCommand) Execute(ctx context.Context, msg ToggleInput) error {
	if c.service == nil {
		return errors.New("toggle theme command requires service")
	}
	state, err := c.service.ToggleDarkMode(ctx, msg.Viewer)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = state
	}
	c.telemetry.Record(ctx, "dashboard.command.theme", map[string]any{
		"viewer":    msg.Viewer.UserID,
		"dark_mode": state.DarkMode,
	})
	return nil
}

// ToggleSidebarCommand collapses or expands the navigation sidebar.
type ToggleSidebarCommand struct {
	service   sidebarToggler
	telemetry Telemetry
}

// NewToggleSidebarCommand creates the command.
func NewToggleSidebarCommand(service sidebarToggler, telemetry Telemetry) *ToggleSidebarCommand {
	return &ToggleSidebarCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleInput] = (*ToggleSidebarCommand)(nil)

// Execute flips the sidebar flag.
func (c *ToggleSidebarCommand) Execute(ctx context.Context, msg ToggleInput) error {
	if c.service == nil {
		return errors.New("toggle sidebar command requires service")
	}
	state, err := c.service.ToggleSidebar(ctx, msg.Viewer)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = state
	}
	c.telemetry.Record(ctx, "dashboard.command.sidebar", map[string]any{
		"viewer":    msg.Viewer.UserID,
		"collapsed": state.SidebarCollapsed,
	})
	return nil
}
