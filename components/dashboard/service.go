package dashboard

import (
	"context"
	"errors"
	"fmt"
)

var (
	errMissingFixtures = errors.New("dashboard: fixture store not configured")
	errMissingProvider = errors.New("dashboard: provider not registered")
)

const (
	reasonRole = "role"
	reasonTab  = "tab"
)

// Options configures the dashboard Service. Every collaborator is provided via
// interface so applications can swap implementations.
type Options struct {
	Fixtures        FixtureStore
	ShellStore      ShellStore
	Providers       ProviderRegistry
	ConfigValidator ConfigValidator
	RefreshHook     RefreshHook
	Telemetry       Telemetry
	Ticker          *Ticker
	ThemeProvider   ThemeProvider
	ChartOptions    []EChartsProviderOption
}

// Service composes role-scoped views on top of the fixture store.
type Service struct {
	opts Options
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Fixtures == nil {
		opts.Fixtures = DefaultFixtures()
	}
	if opts.ShellStore == nil {
		opts.ShellStore = NewInMemoryShellStore()
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.Providers == nil {
		chartOpts := append([]EChartsProviderOption{WithChartThemeResolver(ChartThemeForState)}, opts.ChartOptions...)
		reg, err := NewDefaultRegistry(opts.Fixtures, chartOpts...)
		if err != nil {
			opts.Telemetry.Record(context.Background(), "dashboard.registry.error", map[string]any{"error": err.Error()})
			reg = NewRegistry()
		}
		opts.Providers = reg
	}
	if opts.ConfigValidator == nil {
		opts.ConfigValidator = NewJSONSchemaValidator()
	}
	if opts.Ticker == nil {
		opts.Ticker = NewTicker(TickerOptions{
			RefreshHook: opts.RefreshHook,
			Telemetry:   opts.Telemetry,
		})
	}
	return &Service{opts: opts}
}

// View is everything the shell needs to render one screen.
type View struct {
	State      ShellState       `json:"state"`
	Heading    Heading          `json:"heading"`
	Navigation []NavItem        `json:"navigation"`
	Roles      []Role           `json:"roles"`
	Widgets    []WidgetInstance `json:"widgets"`
	Alerts     AlertDrawer      `json:"alerts"`
	Counters   TickSnapshot     `json:"counters"`
	Theme      *ThemeSelection  `json:"-"`
}

// Ticker exposes the live counter simulator.
func (s *Service) Ticker() *Ticker {
	return s.opts.Ticker
}

// Fixtures exposes the fixture store.
func (s *Service) Fixtures() FixtureStore {
	return s.opts.Fixtures
}

// KPIs returns the KPI set for a role.
func (s *Service) KPIs(role Role) []KPI {
	return s.opts.Fixtures.KPIs(role)
}

// State returns the viewer's shell state.
func (s *Service) State(ctx context.Context, viewer ViewerContext) (ShellState, error) {
	return s.opts.ShellStore.Load(ctx, viewer)
}

// View renders the viewer's current screen using the live counters.
func (s *Service) View(ctx context.Context, viewer ViewerContext) (View, error) {
	state, err := s.opts.ShellStore.Load(ctx, viewer)
	if err != nil {
		return View{}, err
	}
	view, err := s.RenderView(ctx, viewer, state, s.opts.Ticker.Snapshot())
	if err != nil {
		return View{}, err
	}
	s.recordTelemetry(ctx, "dashboard.view.render", map[string]any{
		"viewer": viewer.UserID,
		"tab":    string(view.State.Tab),
		"role":   string(view.State.Role),
	})
	return view, nil
}

// RenderView composes a view from an explicit state and counter snapshot.
// Unknown tabs render exactly like the dashboard.
func (s *Service) RenderView(ctx context.Context, viewer ViewerContext, state ShellState, counters TickSnapshot) (View, error) {
	if s.opts.Fixtures == nil {
		return View{}, errMissingFixtures
	}
	normalizeShellState(&state)
	theme := s.resolveTheme(ctx, state)
	widgets := s.attachProviderData(ctx, viewer, state, counters, layoutFor(state.Tab))
	return View{
		State:      state,
		Heading:    HeadingFor(state.Tab),
		Navigation: Navigation(state.Tab),
		Roles:      Roles(),
		Widgets:    widgets,
		Alerts:     BuildAlertDrawer(s.opts.Fixtures.Alerts(), state.AlertsOpen),
		Counters:   counters,
		Theme:      theme,
	}, nil
}

// SwitchRole changes the active role. On the dashboard only the KPI widget is refreshed.
func (s *Service) SwitchRole(ctx context.Context, viewer ViewerContext, role Role) (ShellState, error) {
	if !role.Valid() {
		return ShellState{}, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	state, err := s.opts.ShellStore.Update(ctx, viewer, func(st *ShellState) {
		st.Role = role
	})
	if err != nil {
		return ShellState{}, err
	}
	if state.Tab == TabDashboard {
		if err := s.refreshKPIs(ctx, viewer, state); err != nil {
			return state, err
		}
	}
	s.recordTelemetry(ctx, "dashboard.role.switch", map[string]any{
		"viewer": viewer.UserID,
		"role":   string(role),
	})
	return state, nil
}

func (s *Service) refreshKPIs(ctx context.Context, viewer ViewerContext, state ShellState) error {
	instance := widget(TabDashboard, WidgetKPICards, map[string]any{"live_revenue": true})
	widgets := s.attachProviderData(ctx, viewer, state, s.opts.Ticker.Snapshot(), []WidgetInstance{instance})
	return s.opts.RefreshHook.WidgetUpdated(ctx, WidgetEvent{
		AreaCode: string(TabDashboard),
		Instance: widgets[0],
		Reason:   reasonRole,
		Viewer:   ViewerID(viewer),
	})
}

// SwitchTab changes the active tab, normalizing unknown values to the dashboard.
func (s *Service) SwitchTab(ctx context.Context, viewer ViewerContext, tab string) (ShellState, error) {
	target := NormalizeTab(tab)
	state, err := s.opts.ShellStore.Update(ctx, viewer, func(st *ShellState) {
		st.Tab = target
	})
	if err != nil {
		return ShellState{}, err
	}
	if err := s.opts.RefreshHook.WidgetUpdated(ctx, WidgetEvent{
		AreaCode: string(target),
		Reason:   reasonTab,
		Viewer:   ViewerID(viewer),
	}); err != nil {
		return state, err
	}
	s.recordTelemetry(ctx, "dashboard.tab.switch", map[string]any{
		"viewer":    viewer.UserID,
		"requested": tab,
		"tab":       string(target),
	})
	return state, nil
}

// ToggleDarkMode flips the theme variant.
func (s *Service) ToggleDarkMode(ctx context.Context, viewer ViewerContext) (ShellState, error) {
	return s.updateState(ctx, viewer, "dashboard.theme.toggle", func(st *ShellState) {
		st.DarkMode = !st.DarkMode
	})
}

// ToggleSidebar collapses or expands the sidebar.
func (s *Service) ToggleSidebar(ctx context.Context, viewer ViewerContext) (ShellState, error) {
	return s.updateState(ctx, viewer, "dashboard.sidebar.toggle", func(st *ShellState) {
		st.SidebarCollapsed = !st.SidebarCollapsed
	})
}

// SetAlertsOpen opens or closes the alert drawer.
func (s *Service) SetAlertsOpen(ctx context.Context, viewer ViewerContext, open bool) (ShellState, error) {
	return s.updateState(ctx, viewer, "dashboard.alerts.toggle", func(st *ShellState) {
		st.AlertsOpen = open
	})
}

// SetChatOpen records whether the assistant widget is visible.
func (s *Service) SetChatOpen(ctx context.Context, viewer ViewerContext, open bool) (ShellState, error) {
	return s.updateState(ctx, viewer, "dashboard.chat.toggle", func(st *ShellState) {
		st.ChatOpen = open
	})
}

// AcknowledgeAlerts is an extension point; alerts are not mutated.
func (s *Service) AcknowledgeAlerts(ctx context.Context, viewer ViewerContext) error {
	s.recordTelemetry(ctx, "dashboard.alerts.acknowledge", map[string]any{
		"viewer": viewer.UserID,
		"count":  len(s.opts.Fixtures.Alerts()),
	})
	return nil
}

func (s *Service) updateState(ctx context.Context, viewer ViewerContext, event string, mutate func(*ShellState)) (ShellState, error) {
	state, err := s.opts.ShellStore.Update(ctx, viewer, mutate)
	if err != nil {
		return ShellState{}, err
	}
	s.recordTelemetry(ctx, event, map[string]any{"viewer": viewer.UserID})
	return state, nil
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func (s *Service) resolveTheme(ctx context.Context, state ShellState) *ThemeSelection {
	selector := SelectorForState(state)
	if s.opts.ThemeProvider != nil {
		selection, err := s.opts.ThemeProvider.SelectTheme(ctx, selector)
		if err == nil && selection != nil {
			return selection
		}
		if err != nil {
			s.recordTelemetry(ctx, "dashboard.theme.error", map[string]any{"error": err.Error()})
		}
	}
	return DefaultTheme(selector)
}

func (s *Service) validateConfiguration(definitionID string, config map[string]any) error {
	if s.opts.ConfigValidator == nil || s.opts.Providers == nil {
		return nil
	}
	def, ok := s.opts.Providers.Definition(definitionID)
	if !ok {
		return nil
	}
	return s.opts.ConfigValidator.Validate(def, config)
}

func (s *Service) attachProviderData(ctx context.Context, viewer ViewerContext, state ShellState, counters TickSnapshot, widgets []WidgetInstance) []WidgetInstance {
	enriched := make([]WidgetInstance, len(widgets))
	copy(enriched, widgets)
	for i, inst := range enriched {
		enriched[i].Metadata = map[string]any{}
		if def, ok := s.opts.Providers.Definition(inst.DefinitionID); ok {
			enriched[i].Metadata["name"] = def.Name
			enriched[i].Metadata["category"] = def.Category
		}
		if err := s.validateConfiguration(inst.DefinitionID, inst.Configuration); err != nil {
			s.widgetError(ctx, &enriched[i], err)
			continue
		}
		provider, ok := s.opts.Providers.Provider(inst.DefinitionID)
		if !ok || provider == nil {
			s.widgetError(ctx, &enriched[i], fmt.Errorf("%w: %s", errMissingProvider, inst.DefinitionID))
			continue
		}
		data, err := provider.Fetch(ctx, WidgetContext{
			Instance: inst,
			Viewer:   viewer,
			State:    state,
			Counters: counters,
		})
		if err != nil {
			s.widgetError(ctx, &enriched[i], err)
			continue
		}
		enriched[i].Metadata["data"] = data
	}
	return enriched
}

func (s *Service) widgetError(ctx context.Context, inst *WidgetInstance, err error) {
	inst.Metadata["error"] = err.Error()
	s.recordTelemetry(ctx, "dashboard.widget.provider_error", map[string]any{
		"definition_id": inst.DefinitionID,
		"error":         err.Error(),
	})
}

type noopRefreshHook struct{}

func (noopRefreshHook) WidgetUpdated(context.Context, WidgetEvent) error { return nil }
