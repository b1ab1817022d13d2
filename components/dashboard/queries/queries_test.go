package queries

import (
	"context"
	"testing"

	"github.com/qloax/niks-aqua/components/assistant"
	dashboard "github.com/qloax/niks-aqua/components/dashboard"
)

type stubViewService struct {
	calls int
}

func (s *stubViewService) View(context.Context, dashboard.ViewerContext) (dashboard.View, error) {
	s.calls++
	return dashboard.View{State: dashboard.DefaultShellState()}, nil
}

func (s *stubViewService) State(context.Context, dashboard.ViewerContext) (dashboard.ShellState, error) {
	s.calls++
	return dashboard.DefaultShellState(), nil
}

func TestViewQuery(t *testing.T) {
	service := &stubViewService{}
	view, err := NewViewQuery(service).Query(context.Background(), dashboard.ViewerContext{UserID: "owner"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.calls != 1 {
		t.Fatalf("expected 1 call, got %d", service.calls)
	}
	if view.State.Tab != dashboard.TabDashboard {
		t.Fatalf("expected dashboard tab, got %s", view.State.Tab)
	}
}

func TestStateQuery(t *testing.T) {
	service := &stubViewService{}
	state, err := NewStateQuery(service).Query(context.Background(), dashboard.ViewerContext{})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if state.Role != dashboard.RoleManufacturer {
		t.Fatalf("expected manufacturer role, got %s", state.Role)
	}
}

func TestTranscriptQuery(t *testing.T) {
	store := assistant.NewSessionStore(nil)
	snapshot, err := NewTranscriptQuery(store).Query(context.Background(), dashboard.ViewerContext{UserID: "owner"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if snapshot.State != assistant.ChatClosed {
		t.Fatalf("expected closed chat, got %s", snapshot.State)
	}
	if len(snapshot.Transcript) != 1 || snapshot.Transcript[0].Text != assistant.Greeting {
		t.Fatalf("expected greeting transcript, got %+v", snapshot.Transcript)
	}
}

func TestTranscriptQueryRequiresStore(t *testing.T) {
	if _, err := NewTranscriptQuery(nil).Query(context.Background(), dashboard.ViewerContext{}); err == nil {
		t.Fatalf("expected error without session store")
	}
}
