package dashboard

import (
	"github.com/qloax/niks-aqua/components/assistant"
	core "github.com/qloax/niks-aqua/components/dashboard"
)

// Service exposes the underlying components/dashboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// ViewerContext identifies who is looking at the dashboard.
type ViewerContext = core.ViewerContext

// Role is the KPI perspective.
type Role = core.Role

// Tab is a shell screen.
type Tab = core.Tab

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// AssistantOptions re-export for hosts wiring the chat widget.
type AssistantOptions = assistant.Options

// Suite bundles the dashboard service with its assistant sessions.
type Suite struct {
	Service  *Service
	Bridge   *assistant.Bridge
	Sessions *assistant.SessionStore
}

// NewSuite builds the service and an assistant bridge sharing one lifecycle.
func NewSuite(bridge *assistant.Bridge, opts Options) *Suite {
	return &Suite{
		Service:  core.NewService(opts),
		Bridge:   bridge,
		Sessions: assistant.NewSessionStore(bridge),
	}
}

// Close releases the assistant client.
func (s *Suite) Close() error {
	if s == nil || s.Bridge == nil {
		return nil
	}
	return s.Bridge.Close()
}
