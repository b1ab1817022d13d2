package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/qloax/niks-aqua/components/assistant"
	dashboard "github.com/qloax/niks-aqua/components/dashboard"
)

type sessionSource interface {
	Session(viewer string) *assistant.Session
}

// TranscriptQuery returns the chat state and messages for a viewer.
type TranscriptQuery struct {
	sessions sessionSource
}

// NewTranscriptQuery builds the query.
func NewTranscriptQuery(sessions sessionSource) *TranscriptQuery {
	return &TranscriptQuery{sessions: sessions}
}

var _ gocommand.Querier[dashboard.ViewerContext, assistant.Snapshot] = (*TranscriptQuery)(nil)

// Query snapshots the viewer's chat session.
func (q *TranscriptQuery) Query(_ context.Context, viewer dashboard.ViewerContext) (assistant.Snapshot, error) {
	if q.sessions == nil {
		return assistant.Snapshot{}, errors.New("transcript query requires session store")
	}
	return q.sessions.Session(viewer.UserID).Snapshot(), nil
}
