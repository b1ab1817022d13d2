package shell_test

import (
	"context"
	"errors"
	"testing"

	core "github.com/qloax/niks-aqua/components/dashboard"
	dashboardpkg "github.com/qloax/niks-aqua/pkg/dashboard"
	"github.com/qloax/niks-aqua/pkg/shell"
)

type stubMenuBuilder struct {
	items []shell.MenuItem
	err   error
}

func (s *stubMenuBuilder) EnsureMenuItem(_ context.Context, _ string, item shell.MenuItem) error {
	s.items = append(s.items, item)
	return s.err
}

func TestShellBootstrapSeedsEveryTab(t *testing.T) {
	builder := &stubMenuBuilder{}
	sh, err := shell.New(shell.Config{
		EnableDashboard: true,
		Service:         dashboardpkg.NewService(core.Options{}),
		MenuBuilder:     builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := sh.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.items) != len(core.Tabs()) {
		t.Fatalf("expected %d items, got %d", len(core.Tabs()), len(builder.items))
	}
	if builder.items[0].Route != "admin.dashboard" || builder.items[0].Label != "Command Center" {
		t.Fatalf("unexpected first item %+v", builder.items[0])
	}
	if builder.items[1].Route != "admin.dashboard.orders" {
		t.Fatalf("unexpected orders route %q", builder.items[1].Route)
	}
	if sh.Dashboard() == nil {
		t.Fatalf("expected dashboard service")
	}
}

func TestShellBootstrapJoinsErrors(t *testing.T) {
	builder := &stubMenuBuilder{err: errors.New("menu locked")}
	sh, err := shell.New(shell.Config{
		EnableDashboard: true,
		Service:         dashboardpkg.NewService(core.Options{}),
		MenuBuilder:     builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := sh.Bootstrap(context.Background()); err == nil {
		t.Fatalf("expected joined error")
	}
}

func TestShellDisabledSkipsBootstrap(t *testing.T) {
	builder := &stubMenuBuilder{}
	sh, err := shell.New(shell.Config{MenuBuilder: builder})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := sh.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.items) != 0 {
		t.Fatalf("expected no calls, got %d", len(builder.items))
	}
	if sh.Dashboard() != nil {
		t.Fatalf("expected nil dashboard when disabled")
	}
}

func TestShellRequiresServiceWhenEnabled(t *testing.T) {
	if _, err := shell.New(shell.Config{EnableDashboard: true}); err == nil {
		t.Fatalf("expected error without service")
	}
}
