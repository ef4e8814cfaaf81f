package domain

import "os"

const (
	// RecordExtension is appended to a dependency name to form its record file name.
	RecordExtension = ".dependency"

	// DefaultConfigFile is the configuration file looked up in the working directory.
	DefaultConfigFile = ".licensed.yml"

	// DefaultCacheDir is the cache root used when the configuration does not set one.
	DefaultCacheDir = ".licenses"

	// DefaultMatcher is the license equivalence strategy used when a source does not name one.
	DefaultMatcher = "text"

	// DirPerm is the permission used for cache directories.
	DirPerm os.FileMode = 0o750

	// FilePerm is the permission used for record files.
	FilePerm os.FileMode = 0o644
)
