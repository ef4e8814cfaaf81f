// Package config provides the configuration loader for licache.
package config

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/licache/internal/adapters/source"
	"go.trai.ch/licache/internal/core/domain"
	"go.trai.ch/licache/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration and returns the applications it describes.
// If path is a directory, the nearest .licensed.yml in it or its parents is used.
func (l *Loader) Load(path string) ([]domain.Application, error) {
	configPath, err := l.findConfiguration(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath) //nolint:gosec // Path is provided by the user
	if err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrConfigRead, err), "path", configPath)
	}

	var file Licensedfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrConfigParse, err), "path", configPath)
	}

	l.Logger.Debug("loaded configuration", "path", configPath, "apps", len(file.Apps))

	return buildApplications(filepath.Dir(configPath), file)
}

func (l *Loader) findConfiguration(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", zerr.With(fmt.Errorf("%w: %w", domain.ErrConfigRead, err), "path", path)
	}
	if !info.IsDir() {
		return path, nil
	}

	currentDir, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.With(fmt.Errorf("%w: %w", domain.ErrConfigRead, err), "path", path)
	}

	for {
		candidate := filepath.Join(currentDir, domain.DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(fmt.Errorf("%w: %s not found", domain.ErrConfigRead, domain.DefaultConfigFile), "path", path)
}

func buildApplications(root string, file Licensedfile) ([]domain.Application, error) {
	apps := file.Apps
	if len(apps) == 0 {
		apps = []AppDTO{{Name: file.Name, SourcePath: "."}}
	}

	cacheRoot := file.CachePath
	if cacheRoot == "" {
		cacheRoot = domain.DefaultCacheDir
	}

	result := make([]domain.Application, 0, len(apps))
	seen := make(map[string]bool, len(apps))

	for i, dto := range apps {
		sourcePath := resolve(root, dto.SourcePath)
		if dto.SourcePath == "" {
			sourcePath = root
		}

		name := dto.Name
		if name == "" {
			name = filepath.Base(sourcePath)
		}
		if seen[name] {
			err := zerr.With(fmt.Errorf("%w: duplicate app name", domain.ErrConfigInvalid), "app", name)
			return nil, zerr.With(err, "index", i)
		}
		seen[name] = true

		cachePath := dto.CachePath
		switch {
		case cachePath != "":
		case len(apps) > 1:
			cachePath = filepath.Join(cacheRoot, name)
		default:
			cachePath = cacheRoot
		}

		specs, err := sourceSpecs(dto, file.Sources, sourcePath)
		if err != nil {
			return nil, zerr.With(err, "app", name)
		}

		result = append(result, domain.Application{
			Name:       name,
			SourcePath: sourcePath,
			CachePath:  resolve(root, cachePath),
			Sources:    specs,
		})
	}

	return result, nil
}

// sourceSpecs returns the explicit sources of an app, or the enabled ones.
// Without an enablement map, sources are detected from the files present in the source path.
func sourceSpecs(dto AppDTO, enabled map[string]bool, sourcePath string) ([]domain.SourceSpec, error) {
	if len(dto.Sources) > 0 {
		specs := make([]domain.SourceSpec, 0, len(dto.Sources))
		for i, s := range dto.Sources {
			if s.Type == "" {
				return nil, zerr.With(fmt.Errorf("%w: source without type", domain.ErrConfigInvalid), "index", i)
			}
			specs = append(specs, domain.SourceSpec{Type: s.Type, Matcher: s.Matcher, Options: s.Options})
		}
		return specs, nil
	}

	var types []string
	if len(enabled) == 0 {
		types = source.Detect(sourcePath)
	} else {
		for typ, on := range enabled {
			if on {
				types = append(types, typ)
			}
		}
		slices.SortFunc(types, func(a, b string) int {
			return cmp.Or(cmp.Compare(rank(a), rank(b)), cmp.Compare(a, b))
		})
	}

	specs := make([]domain.SourceSpec, 0, len(types))
	for _, typ := range types {
		specs = append(specs, domain.SourceSpec{Type: typ})
	}
	return specs, nil
}

// rank orders known source types first, in their default order; unknown types sort last.
func rank(typ string) int {
	if i := slices.Index(source.Types, typ); i >= 0 {
		return i
	}
	return len(source.Types)
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}
