package source

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/package-url/packageurl-go"
	"go.trai.ch/licache/internal/core/domain"
	"go.trai.ch/zerr"
)

const nodeModules = "node_modules/"

// NPM reports the installed packages recorded in a package-lock.json (lockfile v2 or v3).
type NPM struct {
	base
	root string
	path string
	dev  bool
}

type packageLock struct {
	LockfileVersion int                     `json:"lockfileVersion"`
	Packages        map[string]lockedPackage `json:"packages"`
}

type lockedPackage struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	License  string `json:"license"`
	Dev      bool   `json:"dev"`
	Link     bool   `json:"link"`
	Resolved string `json:"resolved"`
}

// Dependencies returns one dependency per installed package name.
// When several versions of a package are installed, the least nested one wins.
func (n *NPM) Dependencies(ctx context.Context) ([]domain.Dependency, error) {
	data, err := os.ReadFile(n.path) //nolint:gosec // Path comes from the configuration
	if err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrManifestRead, err), "path", n.path)
	}

	var lock packageLock
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrManifestParse, err), "path", n.path)
	}
	if lock.LockfileVersion < 2 {
		err := zerr.With(fmt.Errorf("%w: unsupported lockfile version", domain.ErrManifestParse), "path", n.path)
		return nil, zerr.With(err, "lockfile_version", lock.LockfileVersion)
	}

	keys := make([]string, 0, len(lock.Packages))
	for key := range lock.Packages {
		if strings.HasPrefix(key, nodeModules) || strings.Contains(key, "/"+nodeModules) {
			keys = append(keys, key)
		}
	}
	slices.SortFunc(keys, func(a, b string) int {
		return cmp.Or(
			cmp.Compare(strings.Count(a, nodeModules), strings.Count(b, nodeModules)),
			cmp.Compare(a, b),
		)
	})

	seen := make(map[string]struct{}, len(keys))
	deps := make([]domain.Dependency, 0, len(keys))
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pkg := lock.Packages[key]
		if pkg.Link || (pkg.Dev && !n.dev) {
			continue
		}

		name := pkg.Name
		if name == "" {
			name = key[strings.LastIndex(key, nodeModules)+len(nodeModules):]
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		text := readLicense(filepath.Join(n.root, filepath.FromSlash(key)))
		license := pkg.License
		if license == "" {
			license = identifyLicense(text)
		}

		fields := map[string]string{"purl": npmPURL(name, pkg.Version)}
		if pkg.Resolved != "" {
			fields["resolved"] = pkg.Resolved
		}

		deps = append(deps, domain.Dependency{
			Name:    name,
			Version: pkg.Version,
			Data: domain.Record{
				Name:    name,
				Version: pkg.Version,
				License: license,
				Text:    text,
				Fields:  fields,
			},
		})
	}

	return deps, nil
}

func npmPURL(name, version string) string {
	namespace := ""
	if scope, rest, ok := strings.Cut(name, "/"); ok && strings.HasPrefix(scope, "@") {
		namespace, name = scope, rest
	}
	return packageurl.NewPackageURL(packageurl.TypeNPM, namespace, name, version, nil, "").ToString()
}
