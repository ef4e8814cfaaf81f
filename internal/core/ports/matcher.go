package ports

import "go.trai.ch/licache/internal/core/domain"

// Matcher decides whether freshly gathered license data is equivalent to a cached record.
//
//go:generate go run go.uber.org/mock/mockgen -source=matcher.go -destination=mocks/mock_matcher.go -package=mocks
type Matcher interface {
	// Matches reports whether current is semantically equivalent to existing,
	// in which case the existing license is preserved.
	Matches(current, existing domain.Record) bool
}
