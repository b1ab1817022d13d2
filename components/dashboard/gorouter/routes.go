package gorouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	gocommand "github.com/goliatone/go-command"
	router "github.com/goliatone/go-router"

	"github.com/qloax/niks-aqua/components/assistant"
	"github.com/qloax/niks-aqua/components/dashboard"
	"github.com/qloax/niks-aqua/components/dashboard/commands"
	"github.com/qloax/niks-aqua/components/dashboard/httpapi"
)

const defaultViewer = "owner"

// RequestContext is the subset of router.Context the dashboard handlers use.
type RequestContext interface {
	Context() context.Context
	Body() []byte
	Query(name string, defaultValue ...string) string
	Header(key string) string
	Locals(key any, value ...any) any
	SetHeader(key, value string) router.Context
	Send(body []byte) error
	JSON(code int, v any) error
}

// ViewerResolver converts a request into a dashboard.ViewerContext.
type ViewerResolver func(RequestContext) dashboard.ViewerContext

// Routes is the registration surface a router group exposes.
type Routes interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	WebSocket(path string, cfg router.WebSocketConfig, handler func(router.WebSocketContext) error) router.RouteInfo
}

// Config wires go-router with the dashboard controller, commands and broadcast hook.
type Config[T any] struct {
	Router         router.Router[T]
	Controller     *dashboard.Controller
	API            *httpapi.Handlers
	Broadcast      *dashboard.BroadcastHook
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	HTML        string
	View        string
	State       string
	Role        string
	Tab         string
	Theme       string
	Sidebar     string
	Alerts      string
	AlertsAck   string
	ChatToggle  string
	ChatMessage string
	Chat        string
	WebSocket   string
}

// Register mounts dashboard routes (HTML, JSON, commands, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	base := cfg.BasePath
	if base == "" {
		base = "/admin"
	}
	mount(cfg.Router.Group(base), cfg.Controller, cfg.API, cfg.Broadcast, cfg.ViewerResolver, defaultRouteConfig(cfg.Routes))
	return nil
}

type endpoint struct {
	method  string
	path    string
	handler func(RequestContext) error
}

func mount(r Routes, controller *dashboard.Controller, api *httpapi.Handlers, hook *dashboard.BroadcastHook, resolver ViewerResolver, routes RouteConfig) {
	for _, ep := range endpoints(controller, api, resolver, routes) {
		switch ep.method {
		case http.MethodPost:
			r.Post(ep.path, wrap(ep.handler))
		default:
			r.Get(ep.path, wrap(ep.handler))
		}
	}
	if hook != nil {
		registerWebSocket(r, hook, routes.WebSocket)
	}
}

type openPayload struct {
	Open *bool `json:"open"`
}

func endpoints(controller *dashboard.Controller, api *httpapi.Handlers, resolver ViewerResolver, routes RouteConfig) []endpoint {
	if resolver == nil {
		resolver = defaultViewerResolver
	}
	eps := []endpoint{
		{http.MethodGet, routes.HTML, func(ctx RequestContext) error {
			var buf bytes.Buffer
			if err := controller.RenderTemplate(ctx.Context(), resolver(ctx), &buf); err != nil {
				return respondError(ctx, http.StatusInternalServerError, err)
			}
			ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
			return ctx.Send(buf.Bytes())
		}},
		{http.MethodGet, routes.View, func(ctx RequestContext) error {
			payload, err := controller.ViewPayload(ctx.Context(), resolver(ctx))
			if err != nil {
				return respondError(ctx, http.StatusInternalServerError, err)
			}
			return ctx.JSON(http.StatusOK, payload)
		}},
	}
	if api == nil {
		return eps
	}

	if api.State != nil {
		eps = append(eps, endpoint{http.MethodGet, routes.State, func(ctx RequestContext) error {
			state, err := api.State.Query(ctx.Context(), resolver(ctx))
			if err != nil {
				return respondCommandError(ctx, err)
			}
			return ctx.JSON(http.StatusOK, state)
		}})
	}

	if api.SwitchRole != nil {
		eps = append(eps, endpoint{http.MethodPost, routes.Role, func(ctx RequestContext) error {
			var payload struct {
				Role string `json:"role"`
			}
			if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
			var state dashboard.ShellState
			if err := api.SwitchRole.Execute(ctx.Context(), commands.SwitchRoleInput{Viewer: resolver(ctx), Role: payload.Role, Result: &state}); err != nil {
				return respondCommandError(ctx, err)
			}
			return ctx.JSON(http.StatusOK, state)
		}})
	}

	if api.SwitchTab != nil {
		eps = append(eps, endpoint{http.MethodPost, routes.Tab, func(ctx RequestContext) error {
			var payload struct {
				Tab string `json:"tab"`
			}
			if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
			var state dashboard.ShellState
			if err := api.SwitchTab.Execute(ctx.Context(), commands.SwitchTabInput{Viewer: resolver(ctx), Tab: payload.Tab, Result: &state}); err != nil {
				return respondCommandError(ctx, err)
			}
			return ctx.JSON(http.StatusOK, state)
		}})
	}

	toggles := []struct {
		path string
		cmd  gocommand.Commander[commands.ToggleInput]
	}{
		{routes.Theme, api.ToggleTheme},
		{routes.Sidebar, api.Sidebar},
	}
	for _, toggle := range toggles {
		if toggle.cmd == nil {
			continue
		}
		eps = append(eps, endpoint{http.MethodPost, toggle.path, func(ctx RequestContext) error {
			var state dashboard.ShellState
			if err := toggle.cmd.Execute(ctx.Context(), commands.ToggleInput{Viewer: resolver(ctx), Result: &state}); err != nil {
				return respondCommandError(ctx, err)
			}
			return ctx.JSON(http.StatusOK, state)
		}})
	}

	if api.Alerts != nil {
		eps = append(eps, endpoint{http.MethodPost, routes.Alerts, func(ctx RequestContext) error {
			var payload openPayload
			if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
			var state dashboard.ShellState
			input := commands.SetAlertsOpenInput{Viewer: resolver(ctx), Open: payload.Open != nil && *payload.Open, Result: &state}
			if err := api.Alerts.Execute(ctx.Context(), input); err != nil {
				return respondCommandError(ctx, err)
			}
			return ctx.JSON(http.StatusOK, state)
		}})
	}

	if api.Acknowledge != nil {
		eps = append(eps, endpoint{http.MethodPost, routes.AlertsAck, func(ctx RequestContext) error {
			if err := api.Acknowledge.Execute(ctx.Context(), commands.AcknowledgeAlertsInput{Viewer: resolver(ctx)}); err != nil {
				return respondCommandError(ctx, err)
			}
			return ctx.JSON(http.StatusOK, map[string]string{"status": "acknowledged"})
		}})
	}

	if api.ToggleChat != nil {
		eps = append(eps, endpoint{http.MethodPost, routes.ChatToggle, func(ctx RequestContext) error {
			var payload openPayload
			if body := ctx.Body(); len(bytes.TrimSpace(body)) > 0 {
				if err := json.Unmarshal(body, &payload); err != nil {
					return respondError(ctx, http.StatusBadRequest, err)
				}
			}
			var state assistant.ChatState
			if err := api.ToggleChat.Execute(ctx.Context(), commands.ToggleChatInput{Viewer: resolver(ctx), Open: payload.Open, Result: &state}); err != nil {
				return respondCommandError(ctx, err)
			}
			return ctx.JSON(http.StatusOK, map[string]any{"state": state})
		}})
	}

	if api.SendMessage != nil {
		eps = append(eps, endpoint{http.MethodPost, routes.ChatMessage, func(ctx RequestContext) error {
			var payload struct {
				Text string `json:"text"`
			}
			if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
			var reply assistant.Message
			if err := api.SendMessage.Execute(ctx.Context(), commands.SendMessageInput{Viewer: resolver(ctx), Text: payload.Text, Result: &reply}); err != nil {
				return respondCommandError(ctx, err)
			}
			return ctx.JSON(http.StatusCreated, reply)
		}})
	}

	if api.Transcript != nil {
		eps = append(eps, endpoint{http.MethodGet, routes.Chat, func(ctx RequestContext) error {
			snapshot, err := api.Transcript.Query(ctx.Context(), resolver(ctx))
			if err != nil {
				return respondCommandError(ctx, err)
			}
			return ctx.JSON(http.StatusOK, snapshot)
		}})
	}
	return eps
}

func registerWebSocket(r Routes, hook *dashboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		viewer := dashboard.ViewerID(dashboard.ViewerContext{UserID: strings.TrimSpace(ws.Query("viewer"))})
		events, cancel := hook.SubscribeViewer(viewer)
		defer cancel()
		if err := streamEvents(ws.Context(), events, ws.WriteJSON); err != nil {
			return err
		}
		return ws.Close()
	})
}

// streamEvents forwards events until the channel closes or ctx is done.
func streamEvents(ctx context.Context, events <-chan dashboard.WidgetEvent, write func(any) error) error {
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := write(event); err != nil {
				return err
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func wrap(handler func(RequestContext) error) router.HandlerFunc {
	return router.WrapHandler(func(ctx router.Context) error {
		return handler(ctx)
	})
}

func defaultViewerResolver(ctx RequestContext) dashboard.ViewerContext {
	var viewer dashboard.ViewerContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		viewer.UserID = v
	}
	if viewer.UserID == "" {
		viewer.UserID = strings.TrimSpace(ctx.Query("viewer"))
	}
	if viewer.UserID == "" {
		viewer.UserID = defaultViewer
	}
	viewer.Locale = inferLocale(ctx)
	return viewer
}

func inferLocale(ctx RequestContext) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	return ctx.Header("Accept-Language")
}

func respondCommandError(ctx RequestContext, err error) error {
	return respondError(ctx, httpapi.StatusFor(err), err)
}

func respondError(ctx RequestContext, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	defaults := map[*string]string{
		&routes.HTML:        "/dashboard",
		&routes.View:        "/dashboard/_view",
		&routes.State:       "/dashboard/_state",
		&routes.Role:        "/dashboard/role",
		&routes.Tab:         "/dashboard/tab",
		&routes.Theme:       "/dashboard/theme",
		&routes.Sidebar:     "/dashboard/sidebar",
		&routes.Alerts:      "/dashboard/alerts",
		&routes.AlertsAck:   "/dashboard/alerts/ack",
		&routes.ChatToggle:  "/dashboard/chat/toggle",
		&routes.ChatMessage: "/dashboard/chat/messages",
		&routes.Chat:        "/dashboard/chat",
		&routes.WebSocket:   "/dashboard/ws",
	}
	for field, value := range defaults {
		if *field == "" {
			*field = value
		}
	}
	return routes
}
