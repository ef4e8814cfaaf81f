// Package source implements the dependency sources licache can enumerate.
package source

import (
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/licache/internal/adapters/matcher"
	"go.trai.ch/licache/internal/core/domain"
	"go.trai.ch/licache/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// TypeGo enumerates the requirements of a go.mod file.
	TypeGo = "go"
	// TypeNPM enumerates the packages of a package-lock.json file.
	TypeNPM = "npm"
	// TypeManifest enumerates dependencies listed explicitly in a YAML manifest.
	TypeManifest = "manifest"
)

// Types lists every supported source type, in the order they are enabled by default.
var Types = []string{TypeGo, TypeNPM, TypeManifest}

var _ ports.SourceFactory = (*Factory)(nil)

// Factory creates sources from their configuration.
type Factory struct{}

// NewFactory creates a new Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// New creates the source described by spec, evaluated against app.SourcePath.
func (f *Factory) New(app domain.Application, spec domain.SourceSpec) (ports.Source, error) {
	m, err := matcher.ByName(spec.MatcherName())
	if err != nil {
		return nil, zerr.With(err, "type", spec.Type)
	}

	base := base{typ: spec.Type, matcher: m}

	switch spec.Type {
	case TypeGo:
		return &GoModules{
			base:     base,
			path:     resolve(app.SourcePath, option(spec, "file", defaultFiles[TypeGo])),
			modCache: spec.Options["modcache"],
			indirect: spec.Options["indirect"] == "true",
		}, nil
	case TypeNPM:
		return &NPM{
			base: base,
			root: app.SourcePath,
			path: resolve(app.SourcePath, option(spec, "file", defaultFiles[TypeNPM])),
			dev:  spec.Options["dev"] == "true",
		}, nil
	case TypeManifest:
		return &Manifest{
			base: base,
			path: resolve(app.SourcePath, option(spec, "file", defaultFiles[TypeManifest])),
		}, nil
	default:
		return nil, zerr.With(fmt.Errorf("%w: %s", domain.ErrUnknownSourceType, spec.Type), "type", spec.Type)
	}
}

// base carries what every source shares.
type base struct {
	typ     string
	matcher ports.Matcher
}

// Type returns the source type tag.
func (b base) Type() string {
	return b.typ
}

// Matcher returns the license equivalence strategy of the source.
func (b base) Matcher() ports.Matcher {
	return b.matcher
}

func option(spec domain.SourceSpec, key, fallback string) string {
	if v, ok := spec.Options[key]; ok && v != "" {
		return v
	}
	return fallback
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

var defaultFiles = map[string]string{
	TypeGo:       "go.mod",
	TypeNPM:      "package-lock.json",
	TypeManifest: "dependencies.yml",
}

// Detect returns the source types whose default manifest exists in root, in Types order.
func Detect(root string) []string {
	var found []string
	for _, typ := range Types {
		if _, err := os.Stat(filepath.Join(root, defaultFiles[typ])); err == nil {
			found = append(found, typ)
		}
	}
	return found
}
