package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/qloax/niks-aqua/components/dashboard"
)

type viewService interface {
	View(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.View, error)
}

// ViewQuery composes the viewer's current screen.
type ViewQuery struct {
	service viewService
}

// NewViewQuery builds the query.
func NewViewQuery(service viewService) *ViewQuery {
	return &ViewQuery{service: service}
}

var _ gocommand.Querier[dashboard.ViewerContext, dashboard.View] = (*ViewQuery)(nil)

// Query renders the view for the viewer.
func (q *ViewQuery) Query(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.View, error) {
	return q.service.View(ctx, viewer)
}

type stateService interface {
	State(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.ShellState, error)
}

// StateQuery reads the shell state without rendering widgets.
type StateQuery struct {
	service stateService
}

// NewStateQuery builds the query.
func NewStateQuery(service stateService) *StateQuery {
	return &StateQuery{service: service}
}

var _ gocommand.Querier[dashboard.ViewerContext, dashboard.ShellState] = (*StateQuery)(nil)

// Query loads the viewer's shell state.
func (q *StateQuery) Query(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.ShellState, error) {
	return q.service.State(ctx, viewer)
}
