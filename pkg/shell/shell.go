package shell

import (
	"context"
	"errors"
	"fmt"

	core "github.com/qloax/niks-aqua/components/dashboard"
	dashboardpkg "github.com/qloax/niks-aqua/pkg/dashboard"
)

// MenuBuilder ensures dashboard entries exist within a host admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures sidebar link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
}

// Config wires the dashboard service into a host shell.
type Config struct {
	EnableDashboard bool
	MenuCode        string
	MenuBuilder     MenuBuilder
	Service         *dashboardpkg.Service
	// RoutePrefix is joined with the tab name, e.g. "admin.dashboard" gives "admin.dashboard.orders".
	RoutePrefix string
}

// Shell seeds host navigation with the dashboard tabs.
type Shell struct {
	cfg Config
}

// New creates a Shell helper.
func New(cfg Config) (*Shell, error) {
	if cfg.EnableDashboard && cfg.Service == nil {
		return nil, errors.New("shell: dashboard service is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	if cfg.RoutePrefix == "" {
		cfg.RoutePrefix = "admin.dashboard"
	}
	return &Shell{cfg: cfg}, nil
}

// Dashboard exposes the configured dashboard service when enabled.
func (s *Shell) Dashboard() *dashboardpkg.Service {
	if !s.cfg.EnableDashboard {
		return nil
	}
	return s.cfg.Service
}

// MenuItems lists one entry per tab in sidebar order.
func (s *Shell) MenuItems() []MenuItem {
	nav := core.Navigation(core.TabDashboard)
	items := make([]MenuItem, 0, len(nav))
	for i, entry := range nav {
		route := s.cfg.RoutePrefix
		if entry.Tab != core.TabDashboard {
			route = fmt.Sprintf("%s.%s", s.cfg.RoutePrefix, entry.Tab)
		}
		items = append(items, MenuItem{
			Label:    entry.Label,
			Route:    route,
			Icon:     entry.Icon,
			Position: i,
		})
	}
	return items
}

// Bootstrap seeds menu entries when dashboard support is enabled.
func (s *Shell) Bootstrap(ctx context.Context) error {
	if !s.cfg.EnableDashboard || s.cfg.MenuBuilder == nil {
		return nil
	}
	var errs []error
	for _, item := range s.MenuItems() {
		if err := s.cfg.MenuBuilder.EnsureMenuItem(ctx, s.cfg.MenuCode, item); err != nil {
			errs = append(errs, fmt.Errorf("shell: menu item %s: %w", item.Route, err))
		}
	}
	return errors.Join(errs...)
}
