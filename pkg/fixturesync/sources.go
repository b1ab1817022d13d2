package fixturesync

import (
	"context"
	"errors"

	dashboard "github.com/qloax/niks-aqua/components/dashboard"
)

// FileSource reads a fixture document from disk.
type FileSource struct {
	Path string
}

// FetchFixtures implements Source.
func (s FileSource) FetchFixtures(context.Context) (*dashboard.FixtureDocument, error) {
	return dashboard.ReadFixtures(s.Path)
}

// StaticSource serves the built-in fixtures.
type StaticSource struct{}

// FetchFixtures implements Source.
func (StaticSource) FetchFixtures(context.Context) (*dashboard.FixtureDocument, error) {
	return dashboard.DocumentFromFixtures(dashboard.DefaultFixtures()), nil
}

// Load returns the fixtures from the first source that succeeds. Failures of
// earlier sources are reported alongside the result.
func Load(ctx context.Context, sources ...Source) (*dashboard.Fixtures, error) {
	var errs []error
	for _, src := range sources {
		if src == nil {
			continue
		}
		doc, err := src.FetchFixtures(ctx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		return doc.Fixtures(), errors.Join(errs...)
	}
	if len(errs) == 0 {
		return nil, errors.New("fixturesync: no sources configured")
	}
	return nil, errors.Join(errs...)
}
