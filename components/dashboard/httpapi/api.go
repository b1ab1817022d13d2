package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/qloax/niks-aqua/components/assistant"
	"github.com/qloax/niks-aqua/components/dashboard"
	"github.com/qloax/niks-aqua/components/dashboard/commands"
)

const defaultViewer = "owner"

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	SwitchRole  gocommand.Commander[commands.SwitchRoleInput]
	SwitchTab   gocommand.Commander[commands.SwitchTabInput]
	ToggleTheme gocommand.Commander[commands.ToggleInput]
	Sidebar     gocommand.Commander[commands.ToggleInput]
	Alerts      gocommand.Commander[commands.SetAlertsOpenInput]
	Acknowledge gocommand.Commander[commands.AcknowledgeAlertsInput]
	ToggleChat  gocommand.Commander[commands.ToggleChatInput]
	SendMessage gocommand.Commander[commands.SendMessageInput]

	View       gocommand.Querier[dashboard.ViewerContext, dashboard.View]
	State      gocommand.Querier[dashboard.ViewerContext, dashboard.ShellState]
	Transcript gocommand.Querier[dashboard.ViewerContext, assistant.Snapshot]
}

type rolePayload struct {
	Role string `json:"role"`
}

type tabPayload struct {
	Tab string `json:"tab"`
}

type openPayload struct {
	Open *bool `json:"open"`
}

type messagePayload struct {
	Text string `json:"text"`
}

// Viewer resolves the viewer from the query string and Accept-Language header.
func Viewer(r *http.Request) dashboard.ViewerContext {
	id := strings.TrimSpace(r.URL.Query().Get("viewer"))
	if id == "" {
		id = defaultViewer
	}
	return dashboard.ViewerContext{UserID: id, Locale: r.Header.Get("Accept-Language")}
}

func (h *Handlers) HandleView(w http.ResponseWriter, r *http.Request) {
	view, err := h.View.Query(r.Context(), Viewer(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handlers) HandleState(w http.ResponseWriter, r *http.Request) {
	state, err := h.State.Query(r.Context(), Viewer(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handlers) HandleSwitchRole(w http.ResponseWriter, r *http.Request) {
	var payload rolePayload
	if !decode(w, r, &payload) {
		return
	}
	var state dashboard.ShellState
	if err := h.SwitchRole.Execute(r.Context(), commands.SwitchRoleInput{Viewer: Viewer(r), Role: payload.Role, Result: &state}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handlers) HandleSwitchTab(w http.ResponseWriter, r *http.Request) {
	var payload tabPayload
	if !decode(w, r, &payload) {
		return
	}
	var state dashboard.ShellState
	if err := h.SwitchTab.Execute(r.Context(), commands.SwitchTabInput{Viewer: Viewer(r), Tab: payload.Tab, Result: &state}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handlers) HandleToggleTheme(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.ToggleTheme)
}

func (h *Handlers) HandleToggleSidebar(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.Sidebar)
}

func (h *Handlers) toggle(w http.ResponseWriter, r *http.Request, cmd gocommand.Commander[commands.ToggleInput]) {
	var state dashboard.ShellState
	if err := cmd.Execute(r.Context(), commands.ToggleInput{Viewer: Viewer(r), Result: &state}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handlers) HandleAlerts(w http.ResponseWriter, r *http.Request) {
	var payload openPayload
	if !decode(w, r, &payload) {
		return
	}
	open := payload.Open != nil && *payload.Open
	var state dashboard.ShellState
	if err := h.Alerts.Execute(r.Context(), commands.SetAlertsOpenInput{Viewer: Viewer(r), Open: open, Result: &state}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handlers) HandleAcknowledgeAlerts(w http.ResponseWriter, r *http.Request) {
	if err := h.Acknowledge.Execute(r.Context(), commands.AcknowledgeAlertsInput{Viewer: Viewer(r)}); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleToggleChat(w http.ResponseWriter, r *http.Request) {
	var payload openPayload
	if r.ContentLength > 0 && !decode(w, r, &payload) {
		return
	}
	var state assistant.ChatState
	if err := h.ToggleChat.Execute(r.Context(), commands.ToggleChatInput{Viewer: Viewer(r), Open: payload.Open, Result: &state}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": state})
}

func (h *Handlers) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var payload messagePayload
	if !decode(w, r, &payload) {
		return
	}
	var reply assistant.Message
	if err := h.SendMessage.Execute(r.Context(), commands.SendMessageInput{Viewer: Viewer(r), Text: payload.Text, Result: &reply}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reply)
}

func (h *Handlers) HandleTranscript(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.Transcript.Query(r.Context(), Viewer(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// StatusFor maps domain errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrUnknownRole), errors.Is(err, assistant.ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.Is(err, assistant.ErrChatClosed), errors.Is(err, assistant.ErrBusy):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), StatusFor(err))
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}
