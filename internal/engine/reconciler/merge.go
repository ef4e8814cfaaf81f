package reconciler

import (
	"fmt"
	"path/filepath"

	"go.trai.ch/licache/internal/core/domain"
	"go.trai.ch/licache/internal/core/ports"
	"go.trai.ch/zerr"
)

// Plan decides what to do with a dependency given its cached record.
// existing is nil when no record is cached. The returned record is only
// meaningful for ActionWritten.
func Plan(dep domain.Dependency, existing *domain.Record, force bool, m ports.Matcher) (domain.Action, domain.Record) {
	var cached domain.Record
	if existing != nil {
		cached = *existing
	}

	if !force && cached.HasVersion() && dep.Version == cached.Version {
		return domain.ActionSkipped, cached
	}

	fresh := dep.Data
	fresh.Name = dep.Name
	fresh.Version = dep.Version
	if m != nil && cached.License != "" && m.Matches(fresh, cached) {
		fresh.License = cached.License
	}

	merged := cached.Merge(fresh)
	if merged.License != cached.License {
		// The cached text belongs to the old license.
		merged.Text = fresh.Text
	}
	merged.Name = dep.Name
	merged.Version = dep.Version
	return domain.ActionWritten, merged
}

// RecordPath returns the record file for name inside dir.
// Names that would escape dir are rejected.
func RecordPath(dir, name string) (string, error) {
	rel := filepath.FromSlash(name) + domain.RecordExtension
	if name == "" || !filepath.IsLocal(rel) {
		return "", zerr.With(fmt.Errorf("%w: %q", domain.ErrInvalidDependencyName, name), "dependency", name)
	}
	return filepath.Join(dir, rel), nil
}

// ReconcileOne brings the record of dep in dir up to date.
// The returned action is only meaningful when err is nil.
func (r *Reconciler) ReconcileOne(dep domain.Dependency, force bool, dir string, m ports.Matcher) (domain.Action, error) {
	path, err := RecordPath(dir, dep.Name)
	if err != nil {
		return domain.ActionSkipped, err
	}

	existing, err := r.store.Read(path)
	if err != nil {
		return domain.ActionSkipped, zerr.With(err, "dependency", dep.Name)
	}

	action, record := Plan(dep, existing, force, m)
	if action == domain.ActionSkipped {
		return action, nil
	}

	if err := r.store.Write(path, record); err != nil {
		return action, zerr.With(err, "dependency", dep.Name)
	}
	return action, nil
}
