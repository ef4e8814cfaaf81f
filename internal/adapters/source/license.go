package source

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// licenseOther is recorded when no license identifier could be determined.
const licenseOther = "other"

var licenseFilePrefixes = []string{"license", "licence", "copying", "unlicense"}

// readLicense returns the text of the first license file found in dir.
// A missing dir or license file yields an empty text.
func readLicense(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		lower := strings.ToLower(e.Name())
		if slices.ContainsFunc(licenseFilePrefixes, func(p string) bool { return strings.HasPrefix(lower, p) }) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return ""
	}
	slices.Sort(names)

	data, err := os.ReadFile(filepath.Join(dir, names[0])) //nolint:gosec // Path comes from the directory listing
	if err != nil {
		return ""
	}
	return string(data)
}

// identifyLicense extracts an SPDX-License-Identifier tag from text.
// It does not classify license texts; untagged texts are reported as "other".
func identifyLicense(text string) string {
	if text == "" {
		return ""
	}

	for line := range strings.Lines(text) {
		_, id, found := strings.Cut(line, "SPDX-License-Identifier:")
		if id = strings.TrimSpace(id); found && id != "" {
			return id
		}
	}
	return licenseOther
}
