package reconciler

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/licache/internal/core/domain"
	"go.trai.ch/zerr"
)

// Sweep deletes every record under dir whose name is not in valid and
// returns how many were removed. Failed deletions do not stop the sweep.
func (r *Reconciler) Sweep(dir string, valid map[string]struct{}) (int, error) {
	paths, err := r.store.Enumerate(dir)
	if err != nil {
		return 0, zerr.With(fmt.Errorf("%w: %w", domain.ErrSweepFailed, err), "dir", dir)
	}

	var (
		removed int
		errs    []error
	)
	for _, path := range paths {
		name, err := recordName(dir, path)
		if err != nil {
			errs = append(errs, zerr.With(fmt.Errorf("%w: %w", domain.ErrSweepFailed, err), "path", path))
			continue
		}
		if _, ok := valid[name]; ok {
			continue
		}
		if err := r.store.Delete(path); err != nil {
			errs = append(errs, zerr.With(fmt.Errorf("%w: %w", domain.ErrSweepFailed, err), "dependency", name))
			continue
		}
		r.logger.Debug("removed stale record", "path", path, "dependency", name)
		removed++
	}
	return removed, errors.Join(errs...)
}

// recordName derives the dependency name from a record path below dir.
func recordName(dir, path string) (string, error) {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(filepath.ToSlash(rel), domain.RecordExtension), nil
}
