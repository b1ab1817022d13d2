package fixturesync

import (
	"context"

	dashboard "github.com/qloax/niks-aqua/components/dashboard"
)

// Source yields a fixture document from some upstream system.
type Source interface {
	FetchFixtures(ctx context.Context) (*dashboard.FixtureDocument, error)
}

// SourceFunc adapts a function into a Source.
type SourceFunc func(ctx context.Context) (*dashboard.FixtureDocument, error)

// FetchFixtures implements Source.
func (f SourceFunc) FetchFixtures(ctx context.Context) (*dashboard.FixtureDocument, error) {
	return f(ctx)
}
