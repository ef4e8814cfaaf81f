package reconciler_test

import (
	"context"
	"io"
	"sync"
	"testing"

	walkfs "go.trai.ch/licache/internal/adapters/fs"
	"go.trai.ch/licache/internal/adapters/logger"
	"go.trai.ch/licache/internal/adapters/recordstore"
	"go.trai.ch/licache/internal/adapters/telemetry"
	"go.trai.ch/licache/internal/core/domain"
	"go.trai.ch/licache/internal/core/ports"
	"go.trai.ch/licache/internal/engine/reconciler"
)

// captureReporter records every reported line.
type captureReporter struct {
	mu    sync.Mutex
	lines []string
	errs  []error
}

func (c *captureReporter) Info(msg string)    { c.add(msg) }
func (c *captureReporter) Confirm(msg string) { c.add(msg) }
func (c *captureReporter) Warn(msg string)    { c.add(msg) }

func (c *captureReporter) Error(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = append(c.errs, err)
}

func (c *captureReporter) add(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, msg)
}

func (c *captureReporter) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

// fakeSource serves a fixed dependency list.
type fakeSource struct {
	typ     string
	deps    []domain.Dependency
	err     error
	matcher ports.Matcher
}

func (f *fakeSource) Type() string { return f.typ }

func (f *fakeSource) Dependencies(_ context.Context) ([]domain.Dependency, error) {
	return f.deps, f.err
}

func (f *fakeSource) Matcher() ports.Matcher { return f.matcher }

// constMatcher answers every comparison with the same result.
type constMatcher bool

func (c constMatcher) Matches(_, _ domain.Record) bool { return bool(c) }

type fixture struct {
	store    *recordstore.Store
	reporter *captureReporter
	rec      *reconciler.Reconciler
	app      domain.Application
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := recordstore.NewStore(walkfs.NewWalker())
	rep := &captureReporter{}
	return &fixture{
		store:    store,
		reporter: rep,
		rec:      reconciler.NewReconciler(store, rep, logger.NewWithWriter(io.Discard), telemetry.NewNoOp()),
		app:      domain.Application{Name: "demo", CachePath: t.TempDir()},
	}
}

func dep(name, version, license string) domain.Dependency {
	return domain.Dependency{
		Name:    name,
		Version: version,
		Data:    domain.Record{License: license, Text: license + " license text\n"},
	}
}
