package domain

// Dependency is one third-party package reported by a source for the current run.
type Dependency struct {
	// Name is unique within an (application, source type) scope. It may contain
	// slashes (e.g. "@babel/core", "golang.org/x/mod").
	Name string

	// Version is an opaque version identifier.
	Version string

	// Data is the freshly gathered record for the dependency.
	Data Record
}

// Action is the outcome of reconciling a single dependency.
type Action int

const (
	// ActionSkipped means the cached record was still valid and was left untouched.
	ActionSkipped Action = iota
	// ActionWritten means the record was (re)generated and persisted.
	ActionWritten
)

// String returns the string representation of the Action.
func (a Action) String() string {
	switch a {
	case ActionSkipped:
		return "skipped"
	case ActionWritten:
		return "written"
	default:
		return "unknown"
	}
}
