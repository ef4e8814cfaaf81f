package ports

import "go.trai.ch/licache/internal/core/domain"

// RecordStore persists license records as individual documents.
//
//go:generate go run go.uber.org/mock/mockgen -source=record_store.go -destination=mocks/mock_record_store.go -package=mocks
type RecordStore interface {
	// Read loads the record at path.
	// Returns nil, nil if the record does not exist.
	Read(path string) (*domain.Record, error)

	// Write creates or replaces the record at path, creating parent directories as needed.
	// A failed write leaves any previous record at path intact.
	Write(path string, record domain.Record) error

	// Enumerate returns the path of every record file under dir, recursively.
	// A missing dir yields no paths.
	Enumerate(dir string) ([]string, error)

	// Delete removes the record at path.
	Delete(path string) error
}
