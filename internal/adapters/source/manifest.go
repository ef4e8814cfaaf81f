package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/licache/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Manifest reports dependencies listed explicitly in a YAML file:
//
//	dependencies:
//	  - name: foo
//	    version: "2.0"
//	    license: MIT
//	    license_file: third_party/foo/LICENSE
//	    homepage: https://example.com/foo
type Manifest struct {
	base
	path string
}

type manifestFile struct {
	Dependencies []manifestEntry `yaml:"dependencies"`
}

type manifestEntry struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	License     string `yaml:"license"`
	LicenseFile string `yaml:"license_file"`
	Text        string `yaml:"text"`
	Homepage    string `yaml:"homepage"`
	Summary     string `yaml:"summary"`
}

// Dependencies parses the manifest and returns its entries in file order.
func (m *Manifest) Dependencies(ctx context.Context) ([]domain.Dependency, error) {
	data, err := os.ReadFile(m.path) //nolint:gosec // Path comes from the configuration
	if err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrManifestRead, err), "path", m.path)
	}

	var file manifestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrManifestParse, err), "path", m.path)
	}

	deps := make([]domain.Dependency, 0, len(file.Dependencies))
	for i, entry := range file.Dependencies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.Name == "" {
			err := zerr.With(fmt.Errorf("%w: entry without name", domain.ErrManifestParse), "path", m.path)
			return nil, zerr.With(err, "index", i)
		}

		text := entry.Text
		if text == "" && entry.LicenseFile != "" {
			licensePath := resolve(filepath.Dir(m.path), entry.LicenseFile)
			content, err := os.ReadFile(licensePath) //nolint:gosec // Path comes from the manifest
			if err != nil {
				return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrManifestRead, err), "path", licensePath)
			}
			text = string(content)
		}

		license := entry.License
		if license == "" {
			license = identifyLicense(text)
		}

		deps = append(deps, domain.Dependency{
			Name:    entry.Name,
			Version: entry.Version,
			Data: domain.Record{
				Name:    entry.Name,
				Version: entry.Version,
				License: license,
				Text:    text,
				Fields: map[string]string{
					"homepage": entry.Homepage,
					"summary":  entry.Summary,
				},
			},
		})
	}

	return deps, nil
}
