// Package reconciler brings the on-disk license cache in line with the
// dependencies reported by each source.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"go.trai.ch/licache/internal/core/domain"
	"go.trai.ch/licache/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Options tune a reconciliation run.
type Options struct {
	// Force regenerates every record even when its version is unchanged.
	Force bool

	// Parallelism is the number of (application, type) scopes processed at
	// once. Values below 2 process scopes sequentially.
	Parallelism int
}

// Reconciler reconciles cache records for one application at a time.
type Reconciler struct {
	store     ports.RecordStore
	reporter  ports.Reporter
	logger    ports.Logger
	telemetry ports.Telemetry

	reportMu sync.Mutex
}

// NewReconciler creates a new Reconciler.
func NewReconciler(
	store ports.RecordStore,
	reporter ports.Reporter,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *Reconciler {
	return &Reconciler{
		store:     store,
		reporter:  reporter,
		logger:    logger,
		telemetry: telemetry,
	}
}

// Reconcile processes every source of app and returns one scope summary per
// source, in source order. Errors do not stop the run; they are joined into
// the returned error and recorded in the summary.
func (r *Reconciler) Reconcile(
	ctx context.Context,
	app domain.Application,
	sources []ports.Source,
	opts Options,
) (*domain.Summary, error) {
	r.reporter.Info(fmt.Sprintf("Caching licenses for %s:", app.Name))

	scopes := make([]domain.ScopeSummary, len(sources))
	scopeErrs := make([][]error, len(sources))

	if opts.Parallelism > 1 && len(sources) > 1 {
		var g errgroup.Group
		g.SetLimit(opts.Parallelism)

		for i, src := range sources {
			g.Go(func() error {
				buf := &bufferedReporter{}
				scopes[i], scopeErrs[i] = r.reconcileScope(ctx, app, src, opts.Force, buf)
				r.reportMu.Lock()
				buf.flush(r.reporter)
				r.reportMu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, src := range sources {
			scopes[i], scopeErrs[i] = r.reconcileScope(ctx, app, src, opts.Force, r.reporter)
		}
	}

	summary := &domain.Summary{Scopes: scopes}
	for _, errs := range scopeErrs {
		summary.Errors = append(summary.Errors, errs...)
	}
	return summary, errors.Join(summary.Errors...)
}

func (r *Reconciler) reconcileScope(
	ctx context.Context,
	app domain.Application,
	src ports.Source,
	force bool,
	rep ports.Reporter,
) (domain.ScopeSummary, []error) {
	typ := src.Type()
	dir := filepath.Join(app.CachePath, typ)
	summary := domain.ScopeSummary{App: app.Name, Type: typ}
	log := []any{"app", app.Name, "type", typ}

	ctx, vertex := r.telemetry.Record(ctx, app.Name+" "+typ)
	rep.Info(fmt.Sprintf("  %s dependencies:", typ))

	deps, err := src.Dependencies(ctx)
	if err != nil {
		err = zerr.With(zerr.With(fmt.Errorf("%w: %w", domain.ErrSourceEnumeration, err), "app", app.Name), "type", typ)
		rep.Error(err)
		vertex.Complete(err)
		summary.Failed = true
		return summary, []error{err}
	}

	var errs []error
	valid := make(map[string]struct{}, len(deps))
	matcher := src.Matcher()

	for _, dep := range deps {
		if err := ctx.Err(); err != nil {
			// Interrupted runs never sweep: the valid set is incomplete.
			errs = append(errs, err)
			vertex.Complete(errors.Join(errs...))
			summary.Failed = true
			return summary, errs
		}

		valid[dep.Name] = struct{}{}
		summary.Count++

		action, err := r.ReconcileOne(dep, force, dir, matcher)
		if err != nil {
			err = zerr.With(zerr.With(err, "app", app.Name), "type", typ)
			errs = append(errs, err)
			rep.Error(err)
			vertex.Log(domain.LogLevelError, err.Error())
			continue
		}

		r.logger.Debug("reconciled dependency",
			append(log, "dependency", dep.Name, "version", dep.Version, "action", action.String())...)

		switch action {
		case domain.ActionSkipped:
			summary.Skipped++
			rep.Info(fmt.Sprintf("    Using %s (%s)", dep.Name, dep.Version))
		case domain.ActionWritten:
			summary.Written++
			rep.Info(fmt.Sprintf("    Caching %s (%s)", dep.Name, dep.Version))
		}
	}

	removed, err := r.Sweep(dir, valid)
	summary.Removed = removed
	if err != nil {
		err = zerr.With(zerr.With(err, "app", app.Name), "type", typ)
		errs = append(errs, err)
		rep.Error(err)
	}

	summary.Failed = len(errs) > 0
	r.logger.Info("scope reconciled",
		append(log,
			"count", summary.Count,
			"skipped", summary.Skipped,
			"written", summary.Written,
			"removed", summary.Removed)...)

	if len(errs) == 0 && summary.Written == 0 && summary.Removed == 0 {
		vertex.Cached()
	}
	vertex.Complete(errors.Join(errs...))
	return summary, errs
}

// bufferedReporter holds the lines of one scope so that concurrent scopes
// do not interleave their output.
type bufferedReporter struct {
	entries []func(ports.Reporter)
}

func (b *bufferedReporter) Info(msg string) {
	b.entries = append(b.entries, func(r ports.Reporter) { r.Info(msg) })
}

func (b *bufferedReporter) Confirm(msg string) {
	b.entries = append(b.entries, func(r ports.Reporter) { r.Confirm(msg) })
}

func (b *bufferedReporter) Warn(msg string) {
	b.entries = append(b.entries, func(r ports.Reporter) { r.Warn(msg) })
}

func (b *bufferedReporter) Error(err error) {
	b.entries = append(b.entries, func(r ports.Reporter) { r.Error(err) })
}

func (b *bufferedReporter) flush(to ports.Reporter) {
	for _, entry := range b.entries {
		entry(to)
	}
	b.entries = nil
}
