package httpapi

import (
	"net/http"

	"github.com/qloax/niks-aqua/components/dashboard"
)

// MuxOptions selects the optional pieces mounted by NewServeMux.
type MuxOptions struct {
	BasePath  string
	Broadcast *dashboard.BroadcastHook
}

// NewServeMux mounts the handlers on a standard library mux using method patterns.
func NewServeMux(h *Handlers, opts MuxOptions) *http.ServeMux {
	base := opts.BasePath
	if base == "" {
		base = "/admin"
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+base+"/dashboard/_view", h.HandleView)
	mux.HandleFunc("GET "+base+"/dashboard/_state", h.HandleState)
	mux.HandleFunc("POST "+base+"/dashboard/role", h.HandleSwitchRole)
	mux.HandleFunc("POST "+base+"/dashboard/tab", h.HandleSwitchTab)
	mux.HandleFunc("POST "+base+"/dashboard/theme", h.HandleToggleTheme)
	mux.HandleFunc("POST "+base+"/dashboard/sidebar", h.HandleToggleSidebar)
	mux.HandleFunc("POST "+base+"/dashboard/alerts", h.HandleAlerts)
	mux.HandleFunc("POST "+base+"/dashboard/alerts/ack", h.HandleAcknowledgeAlerts)
	mux.HandleFunc("POST "+base+"/dashboard/chat/toggle", h.HandleToggleChat)
	mux.HandleFunc("POST "+base+"/dashboard/chat/messages", h.HandleSendMessage)
	mux.HandleFunc("GET "+base+"/dashboard/chat", h.HandleTranscript)
	if opts.Broadcast != nil {
		mux.HandleFunc("GET "+base+"/dashboard/ws", opts.Broadcast.ServeWebSocket)
		mux.HandleFunc("GET "+base+"/dashboard/events", opts.Broadcast.ServeSSE)
	}
	return mux
}
