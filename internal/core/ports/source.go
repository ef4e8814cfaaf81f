// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/licache/internal/core/domain"
)

// Source enumerates the dependencies of one ecosystem within an application.
//
//go:generate go run go.uber.org/mock/mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks
type Source interface {
	// Type returns the stable tag naming the scoped cache subdirectory (e.g. "go", "npm").
	Type() string

	// Dependencies returns the dependencies currently reported by the source.
	// The returned slice is finite; its order is the source's own enumeration order.
	Dependencies(ctx context.Context) ([]domain.Dependency, error)

	// Matcher returns the license equivalence strategy for this source's records.
	Matcher() Matcher
}

// SourceFactory builds Sources from their configuration.
type SourceFactory interface {
	// New creates the source described by spec for the given application.
	New(app domain.Application, spec domain.SourceSpec) (Source, error)
}
