package dashboard

import (
	"context"
	"sync"
)

// ShellState is the UI state owned by the top-level shell. Renderers receive it by value.
type ShellState struct {
	Tab              Tab  `json:"tab"`
	Role             Role `json:"role"`
	DarkMode         bool `json:"dark_mode"`
	SidebarCollapsed bool `json:"sidebar_collapsed"`
	AlertsOpen       bool `json:"alerts_open"`
	ChatOpen         bool `json:"chat_open"`
}

// DefaultShellState is the state a new viewer starts with.
func DefaultShellState() ShellState {
	return ShellState{
		Tab:      TabDashboard,
		Role:     RoleManufacturer,
		DarkMode: true,
	}
}

// ShellStore keeps shell state per viewer.
type ShellStore interface {
	Load(ctx context.Context, viewer ViewerContext) (ShellState, error)
	Update(ctx context.Context, viewer ViewerContext, mutate func(*ShellState)) (ShellState, error)
}

// InMemoryShellStore provides a concurrency-safe default store.
type InMemoryShellStore struct {
	mu   sync.RWMutex
	data map[string]ShellState
}

// NewInMemoryShellStore creates an empty store.
func NewInMemoryShellStore() *InMemoryShellStore {
	return &InMemoryShellStore{
		data: make(map[string]ShellState),
	}
}

// Load returns the stored state or the defaults.
func (s *InMemoryShellStore) Load(_ context.Context, viewer ViewerContext) (ShellState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if state, ok := s.data[s.key(viewer)]; ok {
		return state, nil
	}
	return DefaultShellState(), nil
}

// Update applies mutate atomically and stores the normalized result.
func (s *InMemoryShellStore) Update(_ context.Context, viewer ViewerContext, mutate func(*ShellState)) (ShellState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.key(viewer)
	state, ok := s.data[key]
	if !ok {
		state = DefaultShellState()
	}
	if mutate != nil {
		mutate(&state)
	}
	normalizeShellState(&state)
	s.data[key] = state
	return state, nil
}

func (s *InMemoryShellStore) key(viewer ViewerContext) string {
	return ViewerID(viewer)
}

// ViewerID is the key a viewer's state and refresh events are filed under.
func ViewerID(viewer ViewerContext) string {
	if viewer.UserID == "" {
		return defaultViewerID
	}
	return viewer.UserID
}

const defaultViewerID = "owner"

func normalizeShellState(state *ShellState) {
	state.Tab = NormalizeTab(string(state.Tab))
	if !state.Role.Valid() {
		state.Role = RoleManufacturer
	}
}
