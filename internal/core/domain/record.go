package domain

import "maps"

// Record is the persisted license document for one dependency.
type Record struct {
	Name    string            `yaml:"name,omitempty"`
	Version string            `yaml:"version,omitempty"`
	License string            `yaml:"license,omitempty"`
	Fields  map[string]string `yaml:",inline"`

	// Text holds the captured license text. It is stored as the document body.
	Text string `yaml:"-"`
}

// HasVersion reports whether the record carries a non-empty version.
func (r *Record) HasVersion() bool {
	return r != nil && r.Version != ""
}

// Merge returns a copy of r with every field explicitly set in over applied on top.
// Fields left empty in over survive from r.
func (r Record) Merge(over Record) Record {
	merged := r
	merged.Fields = maps.Clone(r.Fields)

	if over.Name != "" {
		merged.Name = over.Name
	}
	if over.Version != "" {
		merged.Version = over.Version
	}
	if over.License != "" {
		merged.License = over.License
	}
	if over.Text != "" {
		merged.Text = over.Text
	}

	for k, v := range over.Fields {
		if v == "" {
			continue
		}
		if merged.Fields == nil {
			merged.Fields = make(map[string]string, len(over.Fields))
		}
		merged.Fields[k] = v
	}

	return merged
}
