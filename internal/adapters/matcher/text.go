package matcher

import (
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/licache/internal/core/domain"
)

// Text matches records whose license texts are identical once case,
// whitespace and comment markers are ignored.
type Text struct{}

// NewText creates a new Text matcher.
func NewText() *Text {
	return &Text{}
}

// Matches compares the fingerprints of both license texts. Blank texts
// never match.
func (m *Text) Matches(current, existing domain.Record) bool {
	if existing.License == "" {
		return false
	}
	fresh, ok := fingerprint(current.Text)
	if !ok {
		return false
	}
	cached, ok := fingerprint(existing.Text)
	if !ok {
		return false
	}
	return fresh == cached
}

// Fingerprint hashes the normalised form of a license text.
func Fingerprint(text string) uint64 {
	sum, _ := fingerprint(text)
	return sum
}

// fingerprint reports false when the text holds no words.
func fingerprint(text string) (uint64, bool) {
	digest := xxhash.New()
	words := 0
	for line := range strings.Lines(text) {
		line = strings.TrimLeft(strings.TrimSpace(line), "/*#;-")
		for _, word := range strings.Fields(line) {
			_, _ = digest.WriteString(strings.ToLower(word))
			_, _ = digest.Write([]byte{0})
			words++
		}
	}
	return digest.Sum64(), words > 0
}
