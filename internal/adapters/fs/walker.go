// Package fs provides file system adapters for walking the record cache.
package fs

import (
	"errors"
	iofs "io/fs"
	"iter"
	"path/filepath"
	"strings"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every regular file below root whose name ends with ext.
// Paths include root, as filepath.WalkDir produces them. A missing root yields nothing.
// Walk errors are yielded with an empty path; returning false from yield stops the walk.
func (w *Walker) WalkFiles(root, ext string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
			if err != nil {
				if path == root && errors.Is(err, iofs.ErrNotExist) {
					return filepath.SkipAll
				}
				if !yield("", err) {
					return filepath.SkipAll
				}
				return nil
			}

			if skipAction := w.shouldSkip(path, root, d); skipAction != nil {
				return skipAction
			}

			if d.IsDir() || !d.Type().IsRegular() || !strings.HasSuffix(d.Name(), ext) {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}

			return nil
		})
		if err != nil {
			yield("", err)
		}
	}
}

// shouldSkip skips VCS metadata directories below root.
func (w *Walker) shouldSkip(path, root string, d iofs.DirEntry) error {
	if !d.IsDir() || path == root {
		return nil
	}

	switch d.Name() {
	case ".git", ".jj":
		return filepath.SkipDir
	}

	return nil
}
