// Package recordstore persists license records as one front-matter document per dependency.
package recordstore

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	walkfs "go.trai.ch/licache/internal/adapters/fs"
	"go.trai.ch/licache/internal/core/domain"
	"go.trai.ch/licache/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.RecordStore = (*Store)(nil)

var delimiter = []byte("---\n")

// Store implements ports.RecordStore on the local file system.
//
// A record file is a YAML front matter block holding the record fields,
// followed by the license text:
//
//	---
//	name: golang.org/x/mod
//	version: v0.23.0
//	license: bsd-3-clause
//	---
//	Copyright 2009 The Go Authors.
type Store struct {
	walker *walkfs.Walker
}

// NewStore creates a new Store.
func NewStore(walker *walkfs.Walker) *Store {
	return &Store{walker: walker}
}

// Read loads the record at path. Returns nil, nil if the file does not exist.
func (s *Store) Read(path string) (*domain.Record, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is built from the cache root and a dependency name
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrRecordRead, err), "path", path)
	}

	record, err := Decode(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	return record, nil
}

// Write atomically replaces the record at path.
func (s *Store) Write(path string, record domain.Record) error {
	data, err := Encode(record)
	if err != nil {
		return zerr.With(err, "path", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(fmt.Errorf("%w: %w", domain.ErrRecordWrite, err), "path", path)
	}

	if err := renameio.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(fmt.Errorf("%w: %w", domain.ErrRecordWrite, err), "path", path)
	}

	return nil
}

// Enumerate returns every record file below dir.
func (s *Store) Enumerate(dir string) ([]string, error) {
	var paths []string
	for path, err := range s.walker.WalkFiles(dir, domain.RecordExtension) {
		if err != nil {
			return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrRecordEnumerate, err), "dir", dir)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Delete removes the record at path. Deleting a missing record is not an error.
func (s *Store) Delete(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(fmt.Errorf("%w: %w", domain.ErrRecordDelete, err), "path", path)
	}
	return nil
}

// Encode renders a record as a front matter document.
func Encode(record domain.Record) ([]byte, error) {
	// Inline fields must not shadow the named ones.
	if len(record.Fields) > 0 {
		fields := make(map[string]string, len(record.Fields))
		for k, v := range record.Fields {
			switch k {
			case "name", "version", "license":
				continue
			}
			fields[k] = v
		}
		record.Fields = fields
	}

	header, err := yaml.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRecordWrite, err)
	}

	var buf bytes.Buffer
	buf.Write(delimiter)
	if !bytes.Equal(header, []byte("{}\n")) {
		buf.Write(header)
	}
	buf.Write(delimiter)
	buf.WriteString(record.Text)

	return buf.Bytes(), nil
}

// Decode parses a front matter document. An empty document decodes to an empty record.
func Decode(data []byte) (*domain.Record, error) {
	record := &domain.Record{}
	if len(bytes.TrimSpace(data)) == 0 {
		return record, nil
	}

	if !bytes.HasPrefix(data, delimiter) {
		return nil, fmt.Errorf("%w: missing front matter", domain.ErrRecordRead)
	}
	rest := data[len(delimiter):]

	var header, body []byte
	switch {
	case bytes.HasPrefix(rest, delimiter):
		body = rest[len(delimiter):]
	default:
		end := bytes.Index(rest, []byte("\n"+string(delimiter)))
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated front matter", domain.ErrRecordRead)
		}
		header = rest[:end+1]
		body = rest[end+1+len(delimiter):]
	}

	if err := yaml.Unmarshal(header, record); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRecordRead, err)
	}
	if len(record.Fields) == 0 {
		record.Fields = nil
	}
	record.Text = string(body)

	return record, nil
}
