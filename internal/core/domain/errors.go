package domain

import "go.trai.ch/zerr"

// Adapters wrap these errors with %w, so callers match them with errors.Is.
var (
	// ErrSourceEnumeration is returned when a source cannot produce its dependency list.
	ErrSourceEnumeration = zerr.New("failed to enumerate dependencies")

	// ErrRecordRead is returned when an existing cache record cannot be read or parsed.
	ErrRecordRead = zerr.New("failed to read cache record")

	// ErrRecordWrite is returned when a cache record cannot be written.
	ErrRecordWrite = zerr.New("failed to write cache record")

	// ErrRecordDelete is returned when a cache record cannot be deleted.
	ErrRecordDelete = zerr.New("failed to delete cache record")

	// ErrRecordEnumerate is returned when the cache directory cannot be walked.
	ErrRecordEnumerate = zerr.New("failed to enumerate cache records")

	// ErrInvalidDependencyName is returned when a dependency name cannot be mapped to a record path.
	ErrInvalidDependencyName = zerr.New("invalid dependency name")

	// ErrSweepFailed is returned when stale records could not be removed.
	ErrSweepFailed = zerr.New("failed to remove stale cache records")

	// ErrCacheFailed is returned when a caching run finished with errors.
	ErrCacheFailed = zerr.New("license caching failed")

	// ErrUnknownSourceType is returned when the configuration names a source type that does not exist.
	ErrUnknownSourceType = zerr.New("unknown source type")

	// ErrUnknownMatcher is returned when the configuration names a matcher that does not exist.
	ErrUnknownMatcher = zerr.New("unknown license matcher")

	// ErrManifestRead is returned when a source manifest cannot be read.
	ErrManifestRead = zerr.New("failed to read dependency manifest")

	// ErrManifestParse is returned when a source manifest cannot be parsed.
	ErrManifestParse = zerr.New("failed to parse dependency manifest")

	// ErrConfigRead is returned when the config file cannot be read.
	ErrConfigRead = zerr.New("failed to read config file")

	// ErrConfigParse is returned when the config file cannot be parsed.
	ErrConfigParse = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when the config file is structurally valid but semantically wrong.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrNoApplications is returned when the configuration yields no application to process.
	ErrNoApplications = zerr.New("no applications configured")
)
