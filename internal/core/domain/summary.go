package domain

import "fmt"

// ScopeSummary reports the outcome of reconciling one (application, type) scope.
type ScopeSummary struct {
	App     string
	Type    string
	Count   int
	Skipped int
	Written int
	Removed int
	Failed  bool
}

// Line returns the human readable summary line for the scope.
func (s ScopeSummary) Line() string {
	return fmt.Sprintf("%s %s dependencies: %d", s.App, s.Type, s.Count)
}

// Summary aggregates the scope summaries of a reconciliation run.
type Summary struct {
	Scopes []ScopeSummary
	Errors []error
}

// Lines returns the summary line of every scope, in reconciliation order.
func (s *Summary) Lines() []string {
	lines := make([]string, 0, len(s.Scopes))
	for _, scope := range s.Scopes {
		lines = append(lines, scope.Line())
	}
	return lines
}

// Success reports whether the run completed without any error.
func (s *Summary) Success() bool {
	return len(s.Errors) == 0
}

// Merge appends the scopes and errors of other to s.
func (s *Summary) Merge(other *Summary) {
	if other == nil {
		return
	}
	s.Scopes = append(s.Scopes, other.Scopes...)
	s.Errors = append(s.Errors, other.Errors...)
}
