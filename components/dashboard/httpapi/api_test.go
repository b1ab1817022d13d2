package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/qloax/niks-aqua/components/assistant"
	"github.com/qloax/niks-aqua/components/dashboard"
	"github.com/qloax/niks-aqua/components/dashboard/commands"
)

type stubCommander[T any] struct {
	last  T
	calls int
	err   error
}

func (s *stubCommander[T]) Execute(ctx context.Context, msg T) error {
	s.last = msg
	s.calls++
	return s.err
}

type stubQuerier[T any, R any] struct {
	last   T
	result R
	err    error
}

func (s *stubQuerier[T, R]) Query(ctx context.Context, msg T) (R, error) {
	s.last = msg
	return s.result, s.err
}

func TestHandleSwitchRole(t *testing.T) {
	role := &stubCommander[commands.SwitchRoleInput]{}
	api := &Handlers{SwitchRole: role}
	req := httptest.NewRequest(http.MethodPost, "/dashboard/role?viewer=ops", strings.NewReader(`{"role":"Retailer"}`))
	rec := httptest.NewRecorder()
	api.HandleSwitchRole(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if role.last.Role != "Retailer" || role.last.Viewer.UserID != "ops" {
		t.Fatalf("unexpected input %+v", role.last)
	}
}

func TestHandleSwitchRoleUnknown(t *testing.T) {
	role := &stubCommander[commands.SwitchRoleInput]{err: dashboard.ErrUnknownRole}
	api := &Handlers{SwitchRole: role}
	req := httptest.NewRequest(http.MethodPost, "/dashboard/role", strings.NewReader(`{"role":"Admin"}`))
	rec := httptest.NewRecorder()
	api.HandleSwitchRole(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleSwitchTabDefaultsViewer(t *testing.T) {
	tab := &stubCommander[commands.SwitchTabInput]{}
	api := &Handlers{SwitchTab: tab}
	req := httptest.NewRequest(http.MethodPost, "/dashboard/tab", strings.NewReader(`{"tab":"orders"}`))
	rec := httptest.NewRecorder()
	api.HandleSwitchTab(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if tab.last.Viewer.UserID != "owner" || tab.last.Tab != "orders" {
		t.Fatalf("unexpected input %+v", tab.last)
	}
}

func TestHandleMalformedBody(t *testing.T) {
	tab := &stubCommander[commands.SwitchTabInput]{}
	api := &Handlers{SwitchTab: tab}
	req := httptest.NewRequest(http.MethodPost, "/dashboard/tab", strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	api.HandleSwitchTab(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if tab.calls != 0 {
		t.Fatalf("command should not run on malformed input")
	}
}

func TestHandleToggles(t *testing.T) {
	theme := &stubCommander[commands.ToggleInput]{}
	sidebar := &stubCommander[commands.ToggleInput]{}
	api := &Handlers{ToggleTheme: theme, Sidebar: sidebar}
	for _, handler := range []http.HandlerFunc{api.HandleToggleTheme, api.HandleToggleSidebar} {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	}
	if theme.calls != 1 || sidebar.calls != 1 {
		t.Fatalf("expected each toggle once, got theme=%d sidebar=%d", theme.calls, sidebar.calls)
	}
}

func TestHandleAlerts(t *testing.T) {
	alerts := &stubCommander[commands.SetAlertsOpenInput]{}
	ack := &stubCommander[commands.AcknowledgeAlertsInput]{}
	api := &Handlers{Alerts: alerts, Acknowledge: ack}

	rec := httptest.NewRecorder()
	api.HandleAlerts(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"open":true}`)))
	if rec.Code != http.StatusOK || !alerts.last.Open {
		t.Fatalf("expected drawer open, code=%d input=%+v", rec.Code, alerts.last)
	}

	rec = httptest.NewRecorder()
	api.HandleAcknowledgeAlerts(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusNoContent || ack.calls != 1 {
		t.Fatalf("expected 204 ack, got %d", rec.Code)
	}
}

func TestHandleToggleChatWithoutBody(t *testing.T) {
	chat := &stubCommander[commands.ToggleChatInput]{}
	api := &Handlers{ToggleChat: chat}
	rec := httptest.NewRecorder()
	api.HandleToggleChat(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if chat.last.Open != nil {
		t.Fatalf("expected a flip without explicit open flag")
	}
}

func TestHandleSendMessageStatuses(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusCreated},
		{assistant.ErrChatClosed, http.StatusConflict},
		{assistant.ErrBusy, http.StatusConflict},
		{assistant.ErrEmptyMessage, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		send := &stubCommander[commands.SendMessageInput]{err: tc.err}
		api := &Handlers{SendMessage: send}
		rec := httptest.NewRecorder()
		api.HandleSendMessage(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"stock?"}`)))
		if rec.Code != tc.want {
			t.Fatalf("err %v: expected %d, got %d", tc.err, tc.want, rec.Code)
		}
		if send.last.Text != "stock?" {
			t.Fatalf("expected text propagation, got %q", send.last.Text)
		}
	}
}

func TestHandleQueries(t *testing.T) {
	view := &stubQuerier[dashboard.ViewerContext, dashboard.View]{result: dashboard.View{State: dashboard.DefaultShellState()}}
	state := &stubQuerier[dashboard.ViewerContext, dashboard.ShellState]{result: dashboard.DefaultShellState()}
	transcript := &stubQuerier[dashboard.ViewerContext, assistant.Snapshot]{result: assistant.Snapshot{State: assistant.ChatClosed}}
	api := &Handlers{View: view, State: state, Transcript: transcript}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/_view", nil)
	req.Header.Set("Accept-Language", "hi")
	api.HandleView(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if view.last.Locale != "hi" {
		t.Fatalf("expected locale propagation, got %q", view.last.Locale)
	}

	rec = httptest.NewRecorder()
	api.HandleState(rec, httptest.NewRequest(http.MethodGet, "/dashboard/_state", nil))
	var decoded dashboard.ShellState
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if decoded.Tab != dashboard.TabDashboard {
		t.Fatalf("expected dashboard tab, got %s", decoded.Tab)
	}

	rec = httptest.NewRecorder()
	api.HandleTranscript(rec, httptest.NewRequest(http.MethodGet, "/dashboard/chat", nil))
	if !strings.Contains(rec.Body.String(), `"closed"`) {
		t.Fatalf("expected chat state in body, got %s", rec.Body.String())
	}
}

func TestNewServeMuxRoutes(t *testing.T) {
	role := &stubCommander[commands.SwitchRoleInput]{}
	state := &stubQuerier[dashboard.ViewerContext, dashboard.ShellState]{result: dashboard.DefaultShellState()}
	mux := NewServeMux(&Handlers{SwitchRole: role, State: state}, MuxOptions{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/dashboard/role?viewer=ops", strings.NewReader(`{"role":"Manufacturer"}`)))
	if rec.Code != http.StatusOK || role.last.Viewer.UserID != "ops" {
		t.Fatalf("expected role route, got %d %+v", rec.Code, role.last)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard/role", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for wrong method, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard/_state", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected state route, got %d", rec.Code)
	}
}
