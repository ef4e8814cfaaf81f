package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/licache/internal/adapters/fs"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestWalker_WalkFiles(t *testing.T) {
	// tmp/
	//   .git/config.dependency
	//   @scope/pkg.dependency
	//   plain.dependency
	//   notes.txt
	//   .plain.dependency123 (leftover temp file)
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "config.dependency"), "x")
	writeFile(t, filepath.Join(tmpDir, "@scope", "pkg.dependency"), "x")
	writeFile(t, filepath.Join(tmpDir, "plain.dependency"), "x")
	writeFile(t, filepath.Join(tmpDir, "notes.txt"), "x")
	writeFile(t, filepath.Join(tmpDir, ".plain.dependency123"), "x")

	var got []string
	for path, err := range fs.NewWalker().WalkFiles(tmpDir, ".dependency") {
		require.NoError(t, err)
		rel, relErr := filepath.Rel(tmpDir, path)
		require.NoError(t, relErr)
		got = append(got, filepath.ToSlash(rel))
	}
	slices.Sort(got)

	assert.Equal(t, []string{"@scope/pkg.dependency", "plain.dependency"}, got)
}

func TestWalker_WalkFiles_MissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "does-not-exist")

	count := 0
	for _, err := range fs.NewWalker().WalkFiles(root, ".dependency") {
		require.NoError(t, err)
		count++
	}

	assert.Zero(t, count)
}

func TestWalker_WalkFiles_StopEarly(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.dependency"), "x")
	writeFile(t, filepath.Join(tmpDir, "b.dependency"), "x")

	count := 0
	for range fs.NewWalker().WalkFiles(tmpDir, ".dependency") {
		count++
		break
	}

	assert.Equal(t, 1, count)
}
