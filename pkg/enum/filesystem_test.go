package enum

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/praetorian-inc/bytewalk/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// collectPaths runs e and returns the yielded paths relative to root, sorted.
func collectPaths(t *testing.T, e Enumerator, root string) []string {
	t.Helper()
	var mu sync.Mutex
	var got []string
	err := e.Enumerate(context.Background(), func(content []byte, blobID types.BlobID, prov types.Provenance) error {
		assert.Equal(t, types.ComputeBlobID(content), blobID)
		rel, err := filepath.Rel(root, prov.Path())
		if err != nil {
			rel = prov.Path()
		}
		mu.Lock()
		got = append(got, filepath.ToSlash(rel))
		mu.Unlock()
		return nil
	})
	require.NoError(t, err)
	sort.Strings(got)
	return got
}

func TestFilesystemEnumerator(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "file1.txt"), "hello world")
	writeFile(t, filepath.Join(tmpDir, "file2.txt"), "test content")
	writeFile(t, filepath.Join(tmpDir, "subdir", "subfile.txt"), "nested content")

	got := collectPaths(t, NewFilesystemEnumerator(Config{Root: tmpDir, Workers: 2}), tmpDir)
	assert.Equal(t, []string{"file1.txt", "file2.txt", "subdir/subfile.txt"}, got)
}

func TestFilesystemEnumerator_SingleFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "only.txt")
	writeFile(t, path, "just me")

	var provs []types.Provenance
	err := NewFilesystemEnumerator(Config{Root: path}).Enumerate(context.Background(), func(content []byte, _ types.BlobID, prov types.Provenance) error {
		assert.Equal(t, "just me", string(content))
		provs = append(provs, prov)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, provs, 1)
	assert.Equal(t, "file", provs[0].Kind())
	assert.Equal(t, path, provs[0].Path())
}

func TestFilesystemEnumerator_MissingRoot(t *testing.T) {
	e := NewFilesystemEnumerator(Config{Root: filepath.Join(t.TempDir(), "nope")})
	err := e.Enumerate(context.Background(), func([]byte, types.BlobID, types.Provenance) error { return nil })
	assert.Error(t, err)
}

func TestFilesystemEnumerator_HiddenFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "visible.txt"), "visible")
	writeFile(t, filepath.Join(tmpDir, ".hidden.txt"), "hidden")
	writeFile(t, filepath.Join(tmpDir, ".git", "config"), "[core]")

	got := collectPaths(t, NewFilesystemEnumerator(Config{Root: tmpDir}), tmpDir)
	assert.Equal(t, []string{"visible.txt"}, got)

	got = collectPaths(t, NewFilesystemEnumerator(Config{Root: tmpDir, IncludeHidden: true}), tmpDir)
	assert.Equal(t, []string{".git/config", ".hidden.txt", "visible.txt"}, got)
}

func TestFilesystemEnumerator_MaxFileSize(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "small.txt"), "small")
	writeFile(t, filepath.Join(tmpDir, "large.txt"), strings.Repeat("x", 100))

	got := collectPaths(t, NewFilesystemEnumerator(Config{Root: tmpDir, MaxFileSize: 50}), tmpDir)
	assert.Equal(t, []string{"small.txt"}, got)
}

func TestFilesystemEnumerator_BinaryFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "text.txt"), "plain text")
	writeFile(t, filepath.Join(tmpDir, "binary.bin"), "abc\x00def")

	got := collectPaths(t, NewFilesystemEnumerator(Config{Root: tmpDir}), tmpDir)
	assert.Equal(t, []string{"text.txt"}, got)

	got = collectPaths(t, NewFilesystemEnumerator(Config{Root: tmpDir, IncludeBinary: true}), tmpDir)
	assert.Equal(t, []string{"binary.bin", "text.txt"}, got)
}

func TestFilesystemEnumerator_Gitignore(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gitignore"), "*.log\nbuild/\n")
	writeFile(t, filepath.Join(tmpDir, "main.go"), "package main")
	writeFile(t, filepath.Join(tmpDir, "debug.log"), "log line")
	writeFile(t, filepath.Join(tmpDir, "build", "out.txt"), "artifact")

	got := collectPaths(t, NewFilesystemEnumerator(Config{Root: tmpDir}), tmpDir)
	assert.Equal(t, []string{"main.go"}, got)
}

func TestFilesystemEnumerator_ExcludePatterns(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "keep.txt"), "keep")
	writeFile(t, filepath.Join(tmpDir, "vendor", "dep.go"), "package dep")
	writeFile(t, filepath.Join(tmpDir, "data.csv"), "a,b")

	e := NewFilesystemEnumerator(Config{Root: tmpDir, Exclude: []string{"vendor/", "*.csv"}})
	got := collectPaths(t, e, tmpDir)
	assert.Equal(t, []string{"keep.txt"}, got)
}

func TestFilesystemEnumerator_CallbackError(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.txt"), "a")

	err := NewFilesystemEnumerator(Config{Root: tmpDir}).Enumerate(context.Background(), func([]byte, types.BlobID, types.Provenance) error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestFilesystemEnumerator_ContextCancellation(t *testing.T) {
	tmpDir := t.TempDir()
	for i := 0; i < 10; i++ {
		writeFile(t, filepath.Join(tmpDir, "f"+strings.Repeat("x", i)+".txt"), "content")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewFilesystemEnumerator(Config{Root: tmpDir}).Enumerate(ctx, func([]byte, types.BlobID, types.Provenance) error {
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsHidden(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{".hidden", true},
		{".git", true},
		{"visible", false},
		{".", false},
		{"..", false},
		{"file.txt", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isHidden(tt.name), "isHidden(%q)", tt.name)
	}
}

func TestIsBinary(t *testing.T) {
	assert.False(t, isBinary(nil))
	assert.False(t, isBinary([]byte("text \xff\xfe")))
	assert.True(t, isBinary([]byte("a\x00b")))

	late := append([]byte(strings.Repeat("a", binarySniffLen)), 0)
	assert.False(t, isBinary(late), "NUL past the sniff window is ignored")
}
