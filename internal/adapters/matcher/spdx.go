package matcher

import (
	"slices"
	"strings"

	"github.com/github/go-spdx/v2/spdxexp"
	"go.trai.ch/licache/internal/core/domain"
)

// SPDX matches records whose license expressions name the same set of SPDX licenses.
// Expressions that are not valid SPDX fall back to a case-insensitive comparison.
type SPDX struct{}

// NewSPDX creates a new SPDX matcher.
func NewSPDX() *SPDX {
	return &SPDX{}
}

// Matches compares the license sets of both records.
func (m *SPDX) Matches(current, existing domain.Record) bool {
	if existing.License == "" || current.License == "" {
		return false
	}

	want, okWant := licenseSet(current.License)
	got, okGot := licenseSet(existing.License)
	if !okWant || !okGot {
		return strings.EqualFold(strings.TrimSpace(current.License), strings.TrimSpace(existing.License))
	}

	return slices.Equal(want, got)
}

func licenseSet(expression string) ([]string, bool) {
	licenses, err := spdxexp.ExtractLicenses(expression)
	if err != nil || len(licenses) == 0 {
		return nil, false
	}

	for i, l := range licenses {
		licenses[i] = strings.ToUpper(l)
	}
	slices.Sort(licenses)

	return slices.Compact(licenses), true
}
