package source

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/package-url/packageurl-go"
	"github.com/viant/afs"
	"go.trai.ch/licache/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
)

// GoModules reports the requirements of a go.mod file.
// License texts are read from the vendor directory or the module cache.
type GoModules struct {
	base
	path     string
	modCache string
	indirect bool
}

// Dependencies parses the go.mod file and returns one dependency per requirement.
func (g *GoModules) Dependencies(ctx context.Context) ([]domain.Dependency, error) {
	content, err := afs.New().DownloadWithURL(ctx, g.path)
	if err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrManifestRead, err), "path", g.path)
	}

	file, err := modfile.Parse(g.path, content, nil)
	if err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrManifestParse, err), "path", g.path)
	}

	replacements := make(map[string]module.Version, len(file.Replace))
	for _, r := range file.Replace {
		replacements[r.Old.Path] = r.New
	}

	root := filepath.Dir(g.path)
	cache := g.moduleCache()

	deps := make([]domain.Dependency, 0, len(file.Require))
	for _, req := range file.Require {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if req.Indirect && !g.indirect {
			continue
		}

		name, version := req.Mod.Path, req.Mod.Version
		text := readLicense(g.moduleDir(root, cache, req.Mod, replacements))

		deps = append(deps, domain.Dependency{
			Name:    name,
			Version: version,
			Data: domain.Record{
				Name:    name,
				Version: version,
				License: identifyLicense(text),
				Text:    text,
				Fields: map[string]string{
					"purl": goPURL(name, version),
				},
			},
		})
	}

	return deps, nil
}

// moduleDir locates the source of mod: vendor first, then a local replacement, then the module cache.
func (g *GoModules) moduleDir(root, cache string, mod module.Version, replacements map[string]module.Version) string {
	vendored := filepath.Join(root, "vendor", filepath.FromSlash(mod.Path))
	if info, err := os.Stat(vendored); err == nil && info.IsDir() {
		return vendored
	}

	if r, ok := replacements[mod.Path]; ok {
		if r.Version == "" {
			return resolve(root, filepath.FromSlash(r.Path))
		}
		mod = r
	}

	if cache == "" {
		return ""
	}
	escPath, err := module.EscapePath(mod.Path)
	if err != nil {
		return ""
	}
	escVersion, err := module.EscapeVersion(mod.Version)
	if err != nil {
		return ""
	}
	return filepath.Join(cache, filepath.FromSlash(escPath)+"@"+escVersion)
}

func (g *GoModules) moduleCache() string {
	if g.modCache != "" {
		return g.modCache
	}
	if dir := os.Getenv("GOMODCACHE"); dir != "" {
		return dir
	}
	if gopath := os.Getenv("GOPATH"); gopath != "" {
		return filepath.Join(filepath.SplitList(gopath)[0], "pkg", "mod")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "go", "pkg", "mod")
	}
	return ""
}

func goPURL(modulePath, version string) string {
	namespace, name := path.Split(modulePath)
	return packageurl.NewPackageURL(packageurl.TypeGolang, strings.TrimSuffix(namespace, "/"), name, version, nil, "").ToString()
}
