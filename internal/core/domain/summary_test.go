package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/licache/internal/core/domain"
)

func TestSummary(t *testing.T) {
	s := &domain.Summary{}
	assert.True(t, s.Success())
	assert.Empty(t, s.Lines())

	s.Merge(&domain.Summary{Scopes: []domain.ScopeSummary{{App: "demo", Type: "gems", Count: 1}}})
	s.Merge(nil)
	s.Merge(&domain.Summary{
		Scopes: []domain.ScopeSummary{{App: "demo", Type: "npm", Count: 12, Failed: true}},
		Errors: []error{errors.New("boom")},
	})

	assert.Equal(t, []string{"demo gems dependencies: 1", "demo npm dependencies: 12"}, s.Lines())
	assert.False(t, s.Success())
}

func TestSourceSpec_MatcherName(t *testing.T) {
	assert.Equal(t, domain.DefaultMatcher, domain.SourceSpec{}.MatcherName())
	assert.Equal(t, "spdx", domain.SourceSpec{Matcher: "spdx"}.MatcherName())
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "skipped", domain.ActionSkipped.String())
	assert.Equal(t, "written", domain.ActionWritten.String())
	assert.Equal(t, "unknown", domain.Action(42).String())
}
