package source_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/licache/internal/adapters/matcher"
	"go.trai.ch/licache/internal/adapters/source"
	"go.trai.ch/licache/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func newSource(t *testing.T, root string, spec domain.SourceSpec) interface {
	Type() string
	Dependencies(ctx context.Context) ([]domain.Dependency, error)
} {
	t.Helper()
	src, err := source.NewFactory().New(domain.Application{Name: "demo", SourcePath: root}, spec)
	require.NoError(t, err)
	return src
}

func TestFactory_New(t *testing.T) {
	factory := source.NewFactory()
	app := domain.Application{Name: "demo", SourcePath: t.TempDir()}

	for _, typ := range source.Types {
		src, err := factory.New(app, domain.SourceSpec{Type: typ})
		require.NoError(t, err)
		assert.Equal(t, typ, src.Type())
		assert.IsType(t, &matcher.Text{}, src.Matcher(), "text is the default matcher")
	}

	src, err := factory.New(app, domain.SourceSpec{Type: source.TypeGo, Matcher: "spdx"})
	require.NoError(t, err)
	assert.IsType(t, &matcher.SPDX{}, src.Matcher())

	_, err = factory.New(app, domain.SourceSpec{Type: "bundler"})
	require.ErrorIs(t, err, domain.ErrUnknownSourceType)

	_, err = factory.New(app, domain.SourceSpec{Type: source.TypeGo, Matcher: "fuzzy"})
	require.ErrorIs(t, err, domain.ErrUnknownMatcher)
}

func TestGoModules_Dependencies(t *testing.T) {
	root := t.TempDir()
	modCache := t.TempDir()

	writeFile(t, filepath.Join(root, "go.mod"), `module example.com/app

go 1.25

require (
	github.com/BurntSushi/toml v1.4.0
	golang.org/x/mod v0.23.0
	golang.org/x/sys v0.30.0 // indirect
	example.com/local v0.0.0
)

replace example.com/local => ./local
`)
	// Module cache paths escape upper case letters.
	writeFile(t, filepath.Join(modCache, "github.com", "!burnt!sushi", "toml@v1.4.0", "COPYING"), "The MIT License (MIT)\n")
	writeFile(t, filepath.Join(root, "vendor", "golang.org", "x", "mod", "LICENSE"), "// SPDX-License-Identifier: BSD-3-Clause\n")
	writeFile(t, filepath.Join(root, "local", "LICENSE.md"), "local license\n")

	src := newSource(t, root, domain.SourceSpec{Type: source.TypeGo, Options: map[string]string{"modcache": modCache}})
	deps, err := src.Dependencies(context.Background())
	require.NoError(t, err)
	require.Len(t, deps, 3, "indirect requirements are excluded by default")

	assert.Equal(t, "github.com/BurntSushi/toml", deps[0].Name)
	assert.Equal(t, "v1.4.0", deps[0].Version)
	assert.Equal(t, "other", deps[0].Data.License)
	assert.Equal(t, "The MIT License (MIT)\n", deps[0].Data.Text)

	assert.Equal(t, "golang.org/x/mod", deps[1].Name)
	assert.Equal(t, "BSD-3-Clause", deps[1].Data.License)
	assert.Equal(t, "pkg:golang/golang.org/x/mod@v0.23.0", deps[1].Data.Fields["purl"])

	assert.Equal(t, "example.com/local", deps[2].Name)
	assert.Equal(t, "local license\n", deps[2].Data.Text)
}

func TestGoModules_Indirect(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/app\n\nrequire golang.org/x/sys v0.30.0 // indirect\n")

	src := newSource(t, root, domain.SourceSpec{
		Type:    source.TypeGo,
		Options: map[string]string{"indirect": "true", "modcache": t.TempDir()},
	})
	deps, err := src.Dependencies(context.Background())
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Empty(t, deps[0].Data.License, "no license text found")
}

func TestGoModules_MissingFile(t *testing.T) {
	src := newSource(t, t.TempDir(), domain.SourceSpec{Type: source.TypeGo})
	_, err := src.Dependencies(context.Background())
	require.ErrorIs(t, err, domain.ErrManifestRead)
}

func TestNPM_Dependencies(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package-lock.json"), `{
  "name": "app",
  "lockfileVersion": 3,
  "packages": {
    "": {"name": "app", "version": "1.0.0"},
    "node_modules/left-pad": {"version": "1.3.0", "license": "WTFPL", "resolved": "https://registry.npmjs.org/left-pad/-/left-pad-1.3.0.tgz"},
    "node_modules/@babel/core": {"version": "7.24.0", "license": "MIT"},
    "node_modules/@babel/core/node_modules/left-pad": {"version": "1.0.0", "license": "WTFPL"},
    "node_modules/jest": {"version": "29.0.0", "license": "MIT", "dev": true},
    "node_modules/linked": {"resolved": "../linked", "link": true}
  }
}`)
	writeFile(t, filepath.Join(root, "node_modules", "@babel", "core", "LICENSE"), "MIT License\n")

	src := newSource(t, root, domain.SourceSpec{Type: source.TypeNPM})
	deps, err := src.Dependencies(context.Background())
	require.NoError(t, err)
	require.Len(t, deps, 2)

	assert.Equal(t, "@babel/core", deps[0].Name)
	assert.Equal(t, "7.24.0", deps[0].Version)
	assert.Equal(t, "MIT", deps[0].Data.License)
	assert.Equal(t, "MIT License\n", deps[0].Data.Text)

	assert.Equal(t, "left-pad", deps[1].Name)
	assert.Equal(t, "1.3.0", deps[1].Version, "the hoisted version wins")
	assert.Equal(t, "pkg:npm/left-pad@1.3.0", deps[1].Data.Fields["purl"])
}

func TestNPM_DevDependencies(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package-lock.json"), `{"lockfileVersion": 2, "packages": {"node_modules/jest": {"version": "29.0.0", "dev": true}}}`)

	src := newSource(t, root, domain.SourceSpec{Type: source.TypeNPM, Options: map[string]string{"dev": "true"}})
	deps, err := src.Dependencies(context.Background())
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, "jest", deps[0].Name)
}

func TestNPM_LicenseTagAfterLongLine(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package-lock.json"), `{"lockfileVersion": 3, "packages": {"node_modules/foo": {"version": "1.0.0"}}}`)
	writeFile(t, filepath.Join(root, "node_modules", "foo", "LICENSE"),
		strings.Repeat("x", 100*1024)+"\nSPDX-License-Identifier: BSD-3-Clause\n")

	src := newSource(t, root, domain.SourceSpec{Type: source.TypeNPM})
	deps, err := src.Dependencies(context.Background())
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, "BSD-3-Clause", deps[0].Data.License)
}

func TestNPM_OldLockfile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package-lock.json"), `{"lockfileVersion": 1, "dependencies": {}}`)

	src := newSource(t, root, domain.SourceSpec{Type: source.TypeNPM})
	_, err := src.Dependencies(context.Background())
	require.ErrorIs(t, err, domain.ErrManifestParse)
}

func TestManifest_Dependencies(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "third_party", "bar", "LICENSE"), "SPDX-License-Identifier: Apache-2.0\n")
	writeFile(t, filepath.Join(root, "deps.yml"), `dependencies:
  - name: foo
    version: "2.0"
    license: MIT
    homepage: https://example.com/foo
  - name: bar
    version: "1.0"
    license_file: third_party/bar/LICENSE
`)

	src := newSource(t, root, domain.SourceSpec{Type: source.TypeManifest, Options: map[string]string{"file": "deps.yml"}})
	deps, err := src.Dependencies(context.Background())
	require.NoError(t, err)
	require.Len(t, deps, 2)

	assert.Equal(t, "foo", deps[0].Name)
	assert.Equal(t, "2.0", deps[0].Version)
	assert.Equal(t, "MIT", deps[0].Data.License)
	assert.Equal(t, "https://example.com/foo", deps[0].Data.Fields["homepage"])

	assert.Equal(t, "bar", deps[1].Name)
	assert.Equal(t, "Apache-2.0", deps[1].Data.License)
}

func TestManifest_EntryWithoutName(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "dependencies.yml"), "dependencies:\n  - version: \"1\"\n")

	src := newSource(t, root, domain.SourceSpec{Type: source.TypeManifest})
	_, err := src.Dependencies(context.Background())
	require.ErrorIs(t, err, domain.ErrManifestParse)
}

func TestManifest_Canceled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "dependencies.yml"), "dependencies:\n  - name: foo\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := newSource(t, root, domain.SourceSpec{Type: source.TypeManifest})
	_, err := src.Dependencies(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDetect(t *testing.T) {
	root := t.TempDir()
	assert.Empty(t, source.Detect(root))

	writeFile(t, filepath.Join(root, "package-lock.json"), "{}")
	writeFile(t, filepath.Join(root, "go.mod"), "module x\n")

	assert.Equal(t, []string{source.TypeGo, source.TypeNPM}, source.Detect(root))
}
