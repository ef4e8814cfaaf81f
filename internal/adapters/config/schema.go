package config

// Licensedfile represents the structure of the .licensed.yml configuration file.
type Licensedfile struct {
	Name      string          `yaml:"name"`
	CachePath string          `yaml:"cache_path"`
	Sources   map[string]bool `yaml:"sources"`
	Apps      []AppDTO        `yaml:"apps"`
}

// AppDTO represents an application definition in the configuration.
type AppDTO struct {
	Name       string      `yaml:"name"`
	SourcePath string      `yaml:"source_path"`
	CachePath  string      `yaml:"cache_path"`
	Sources    []SourceDTO `yaml:"sources"`
}

// SourceDTO represents an explicitly configured dependency source.
type SourceDTO struct {
	Type    string            `yaml:"type"`
	Matcher string            `yaml:"matcher"`
	Options map[string]string `yaml:"options"`
}
