package domain

// Application is a unit of license caching: a source tree plus the cache it owns.
type Application struct {
	// Name identifies the application in reports.
	Name string

	// SourcePath is the directory sources are evaluated against.
	SourcePath string

	// CachePath is the root of the record cache. Records live in CachePath/<type>/.
	CachePath string

	// Sources lists the dependency sources to reconcile, in order.
	Sources []SourceSpec
}

// SourceSpec configures one dependency source for an application.
type SourceSpec struct {
	// Type is the stable source tag, also the scoped cache subdirectory name.
	Type string

	// Matcher names the license equivalence strategy. Empty selects DefaultMatcher.
	Matcher string

	// Options carries source-specific settings (e.g. the manifest file name).
	Options map[string]string
}

// MatcherName returns the configured matcher or DefaultMatcher.
func (s SourceSpec) MatcherName() string {
	if s.Matcher == "" {
		return DefaultMatcher
	}
	return s.Matcher
}
