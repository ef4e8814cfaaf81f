// Package matcher implements license equivalence strategies.
package matcher

import (
	"fmt"

	"go.trai.ch/licache/internal/core/domain"
	"go.trai.ch/licache/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// NameText selects the normalised license text comparison.
	NameText = "text"
	// NameSPDX selects the SPDX license expression comparison.
	NameSPDX = "spdx"
)

// ByName returns the matcher registered under name.
func ByName(name string) (ports.Matcher, error) {
	switch name {
	case NameText:
		return NewText(), nil
	case NameSPDX:
		return NewSPDX(), nil
	default:
		return nil, zerr.With(fmt.Errorf("%w: %s", domain.ErrUnknownMatcher, name), "matcher", name)
	}
}
