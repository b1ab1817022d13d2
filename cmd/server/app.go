package main

import (
	"bytes"
	"context"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/qloax/niks-aqua/components/assistant"
	"github.com/qloax/niks-aqua/components/dashboard"
	"github.com/qloax/niks-aqua/components/dashboard/commands"
	"github.com/qloax/niks-aqua/components/dashboard/httpapi"
	"github.com/qloax/niks-aqua/components/dashboard/queries"
	"github.com/qloax/niks-aqua/pkg/config"
	dashboardpkg "github.com/qloax/niks-aqua/pkg/dashboard"
	"github.com/qloax/niks-aqua/pkg/fixturesync"
	"github.com/qloax/niks-aqua/pkg/logger"
	"github.com/qloax/niks-aqua/pkg/shell"
)

type application struct {
	suite      *dashboardpkg.Suite
	ticker     *dashboard.Ticker
	broadcast  *dashboard.BroadcastHook
	controller *dashboard.Controller
	handlers   *httpapi.Handlers
	redis      *redis.Client
}

func newApp(ctx context.Context, cfg *config.Config) (*application, error) {
	telemetry := logger.NewTelemetry(&logger.Log)
	app := &application{broadcast: dashboard.NewBroadcastHook()}

	fixtures, err := fixturesync.Load(ctx, fixtureSources(cfg)...)
	if fixtures == nil {
		return nil, err
	}
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Fixture source unavailable, using fallback")
	}

	chartOpts := []dashboard.EChartsProviderOption{}
	if cfg.Charts.AssetsHost != "" {
		chartOpts = append(chartOpts, dashboard.WithChartAssetsHost(cfg.Charts.AssetsHost))
	}
	if cfg.Cache.Enabled {
		opts, err := cfg.Cache.RedisOptions()
		if err != nil {
			return nil, err
		}
		app.redis = redis.NewClient(opts)
		if err := app.redis.Ping(ctx).Err(); err != nil {
			logger.Log.Warn().Err(err).Msg("Redis ping failed, chart cache will degrade to direct rendering")
		}
		chartOpts = append(chartOpts, dashboard.WithChartCache(dashboard.NewRedisChartCache(app.redis, cfg.Cache.ChartTTL(), telemetry)))
	} else {
		chartOpts = append(chartOpts, dashboard.WithChartCache(dashboard.NewChartCache(cfg.Cache.ChartTTL())))
	}

	refresh := dashboard.RefreshHooks{
		app.broadcast,
		&dashboard.TelemetryHook{Telemetry: telemetry, SkipTicks: true},
	}
	app.ticker = dashboard.NewTicker(dashboard.TickerOptions{
		Interval:           cfg.Ticker.Interval,
		ProductionSeed:     cfg.Ticker.ProductionSeed,
		RevenueSeed:        cfg.Ticker.RevenueSeed,
		MaxProductionStep:  cfg.Ticker.MaxProductionStep,
		MaxRevenueStep:     cfg.Ticker.MaxRevenueStep,
		RevenueProbability: cfg.Ticker.RevenueProbability,
		RefreshHook:        refresh,
		Telemetry:          telemetry,
	})

	assistantLog := logger.Log
	bridge, err := assistant.NewBridge(ctx, assistant.Options{
		APIKey:          cfg.Assistant.APIKey,
		Model:           cfg.Assistant.Model,
		Temperature:     cfg.Assistant.Temperature,
		Offline:         assistant.NewOfflineGenerator(assistant.WithOfflineLatency(cfg.Assistant.OfflineLatency)),
		Timeout:         cfg.Assistant.Timeout,
		BreakerFailures: cfg.Assistant.BreakerFailures,
		BreakerCooldown: cfg.Assistant.BreakerCooldown,
		Logger:          &assistantLog,
	})
	if err != nil {
		return nil, err
	}

	app.suite = dashboardpkg.NewSuite(bridge, dashboardpkg.Options{
		Fixtures:     fixtures,
		RefreshHook:  refresh,
		Telemetry:    telemetry,
		Ticker:       app.ticker,
		ChartOptions: chartOpts,
	})
	service := app.suite.Service
	sessions := app.suite.Sessions

	renderer, err := dashboard.NewTemplateRenderer()
	if err != nil {
		return nil, err
	}
	app.controller = dashboard.NewController(dashboard.ControllerOptions{
		Service:    service,
		Renderer:   renderer,
		AssetsHost: cfg.Charts.AssetsHost,
	})

	app.handlers = &httpapi.Handlers{
		SwitchRole:  commands.NewSwitchRoleCommand(service, telemetry),
		SwitchTab:   commands.NewSwitchTabCommand(service, telemetry),
		ToggleTheme: commands.NewToggleThemeCommand(service, telemetry),
		Sidebar:     commands.NewToggleSidebarCommand(service, telemetry),
		Alerts:      commands.NewSetAlertsOpenCommand(service, telemetry),
		Acknowledge: commands.NewAcknowledgeAlertsCommand(service, telemetry),
		ToggleChat:  commands.NewToggleChatCommand(sessions, service, telemetry),
		SendMessage: commands.NewSendMessageCommand(sessions, service, telemetry),
		View:        queries.NewViewQuery(service),
		State:       queries.NewStateQuery(service),
		Transcript:  queries.NewTranscriptQuery(sessions),
	}

	sh, err := shell.New(shell.Config{
		EnableDashboard: true,
		Service:         service,
		MenuBuilder:     logMenuBuilder{log: logger.Log},
	})
	if err != nil {
		return nil, err
	}
	if err := sh.Bootstrap(ctx); err != nil {
		return nil, err
	}

	logger.Log.Info().
		Bool("assistant_offline", bridge.Offline()).
		Bool("redis_cache", app.redis != nil).
		Int("orders", len(fixtures.Orders())).
		Msg("Dashboard ready")
	return app, nil
}

func fixtureSources(cfg *config.Config) []fixturesync.Source {
	var sources []fixturesync.Source
	if cfg.Fixtures.URL != "" {
		client, err := fixturesync.NewHTTPClient(fixturesync.HTTPConfig{BaseURL: cfg.Fixtures.URL, APIKey: cfg.Fixtures.APIKey})
		if err == nil {
			sources = append(sources, client)
		}
	}
	if cfg.Fixtures.Path != "" {
		sources = append(sources, fixturesync.FileSource{Path: cfg.Fixtures.Path})
	}
	return append(sources, fixturesync.StaticSource{})
}

func (a *application) serveShell(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := a.controller.RenderTemplate(r.Context(), httpapi.Viewer(r), &buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (a *application) Close() {
	if err := a.suite.Close(); err != nil {
		logger.Log.Warn().Err(err).Msg("Assistant close failed")
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}

type logMenuBuilder struct {
	log zerolog.Logger
}

func (b logMenuBuilder) EnsureMenuItem(_ context.Context, menuCode string, item shell.MenuItem) error {
	b.log.Debug().Str("menu", menuCode).Str("route", item.Route).Str("label", item.Label).Msg("Menu item ensured")
	return nil
}
