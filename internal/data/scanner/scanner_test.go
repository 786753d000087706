package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0644))
}

func TestFileScannerScanNonExistentDirectory(t *testing.T) {
	files := NewFileScanner("/path/that/does/not/exist").Scan()
	assert.Empty(t, files)
}

func TestFileScannerScanBaseIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects")
	touch(t, path)
	assert.Empty(t, NewFileScanner(path).Scan())
}

func TestFileScannerScanSecondLevelOnly(t *testing.T) {
	base := t.TempDir()
	touch(t, filepath.Join(base, "top.jsonl"))
	touch(t, filepath.Join(base, "proj-b", "s2.jsonl"))
	touch(t, filepath.Join(base, "proj-a", "s1.jsonl"))
	touch(t, filepath.Join(base, "proj-a", "S3.JSONL"))
	touch(t, filepath.Join(base, "proj-a", "notes.txt"))
	touch(t, filepath.Join(base, "proj-a", "nested", "deep.jsonl"))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "proj-a", "dir.jsonl"), 0755))

	files := NewFileScanner(base).Scan()

	assert.Equal(t, []string{
		filepath.Join(base, "proj-a", "S3.JSONL"),
		filepath.Join(base, "proj-a", "s1.jsonl"),
		filepath.Join(base, "proj-b", "s2.jsonl"),
	}, files)
}

func TestFileScannerFollowsSymlinkedProject(t *testing.T) {
	base := t.TempDir()
	target := t.TempDir()
	touch(t, filepath.Join(target, "linked.jsonl"))
	require.NoError(t, os.Symlink(target, filepath.Join(base, "proj-link")))

	files := NewFileScanner(base).Scan()
	assert.Equal(t, []string{filepath.Join(base, "proj-link", "linked.jsonl")}, files)
}
