// Package app implements the application layer for licache.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"
	"go.trai.ch/licache/internal/core/domain"
	"go.trai.ch/licache/internal/core/ports"
	"go.trai.ch/licache/internal/engine/reconciler"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	sources      ports.SourceFactory
	reconciler   *reconciler.Reconciler
	reporter     ports.Reporter
	logger       ports.Logger
	telemetry    ports.Telemetry
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	sources ports.SourceFactory,
	rec *reconciler.Reconciler,
	reporter ports.Reporter,
	log ports.Logger,
	telemetry ports.Telemetry,
) *App {
	return &App{
		configLoader: loader,
		sources:      sources,
		reconciler:   rec,
		reporter:     reporter,
		logger:       log,
		telemetry:    telemetry,
	}
}

// SetVerbose toggles debug logging when the logger supports it.
func (a *App) SetVerbose(verbose bool) {
	if v, ok := a.logger.(interface{ SetVerbose(bool) }); ok {
		v.SetVerbose(verbose)
	}
}

// runLogger tags every record of a cache run with its run_id.
func (a *App) runLogger(runID string) ports.Logger {
	if l, ok := a.logger.(interface{ With(args ...any) ports.Logger }); ok {
		return l.With("run_id", runID)
	}
	return a.logger
}

// CacheOptions configuration for the Cache method.
type CacheOptions struct {
	// ConfigPath is a config file or a directory to search upwards from.
	ConfigPath string
	// Force regenerates every record regardless of its cached version.
	Force bool
	// Parallelism is the number of source scopes reconciled at once.
	Parallelism int
}

// Cache reconciles the license cache of every configured application.
// A run that recorded any error returns domain.ErrCacheFailed joined with
// the individual errors, alongside the summary.
func (a *App) Cache(ctx context.Context, opts CacheOptions) (*domain.Summary, error) {
	log := a.runLogger(ulid.Make().String())

	apps, err := a.load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := a.telemetry.Close(); err != nil {
			log.Warn("failed to close telemetry", "error", err)
		}
	}()

	log.Info("cache run started", "apps", len(apps), "force", opts.Force)

	summary := &domain.Summary{}
	for _, application := range apps {
		if err := ctx.Err(); err != nil {
			summary.Errors = append(summary.Errors, err)
			break
		}

		sources, errs := a.buildSources(application)
		summary.Errors = append(summary.Errors, errs...)

		result, _ := a.reconciler.Reconcile(ctx, application, sources, reconciler.Options{
			Force:       opts.Force,
			Parallelism: opts.Parallelism,
		})
		summary.Merge(result)
	}

	a.reporter.Confirm("License caching complete!")
	for _, line := range summary.Lines() {
		a.reporter.Confirm("* " + line)
	}

	log.Info("cache run finished", "scopes", len(summary.Scopes), "errors", len(summary.Errors))

	if !summary.Success() {
		return summary, errors.Join(append([]error{domain.ErrCacheFailed}, summary.Errors...)...)
	}
	return summary, nil
}

// List reports every dependency of every configured application without
// touching the cache.
func (a *App) List(ctx context.Context, configPath string) error {
	apps, err := a.load(configPath)
	if err != nil {
		return err
	}

	var errs []error
	for _, application := range apps {
		sources, buildErrs := a.buildSources(application)
		errs = append(errs, buildErrs...)

		for _, src := range sources {
			deps, err := src.Dependencies(ctx)
			if err != nil {
				err = zerr.With(zerr.With(fmt.Errorf("%w: %w", domain.ErrSourceEnumeration, err), "app", application.Name), "type", src.Type())
				a.reporter.Error(err)
				errs = append(errs, err)
				continue
			}
			for _, dep := range deps {
				a.reporter.Info(fmt.Sprintf("%s %s %s (%s)", application.Name, src.Type(), dep.Name, dep.Version))
			}
		}
	}
	return errors.Join(errs...)
}

func (a *App) load(configPath string) ([]domain.Application, error) {
	apps, err := a.configLoader.Load(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	if len(apps) == 0 {
		return nil, domain.ErrNoApplications
	}
	return apps, nil
}

// buildSources instantiates the sources of application. Sources that cannot
// be built are reported and left out.
func (a *App) buildSources(application domain.Application) ([]ports.Source, []error) {
	var (
		sources []ports.Source
		errs    []error
	)
	for _, spec := range application.Sources {
		src, err := a.sources.New(application, spec)
		if err != nil {
			err = zerr.With(err, "app", application.Name)
			a.reporter.Error(err)
			errs = append(errs, err)
			continue
		}
		sources = append(sources, src)
	}
	return sources, errs
}
