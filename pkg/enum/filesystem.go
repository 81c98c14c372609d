package enum

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/praetorian-inc/bytewalk/pkg/types"
)

// binarySniffLen is how much of a file is inspected for NUL bytes.
const binarySniffLen = 8192

// FilesystemEnumerator enumerates files below a root path.
type FilesystemEnumerator struct {
	config Config
}

// NewFilesystemEnumerator creates a new filesystem enumerator.
func NewFilesystemEnumerator(config Config) *FilesystemEnumerator {
	return &FilesystemEnumerator{config: config}
}

// Enumerate walks the tree and yields file contents.
// Paths are collected sequentially first, then read by a pool of workers.
func (e *FilesystemEnumerator) Enumerate(ctx context.Context, callback Callback) error {
	info, err := os.Stat(e.config.Root)
	if err != nil {
		return fmt.Errorf("stat %s: %w", e.config.Root, err)
	}
	if !info.IsDir() {
		return e.processFile(ctx, e.config.Root, callback)
	}

	ignore, err := e.loadIgnore()
	if err != nil {
		return err
	}

	paths, err := e.collect(ctx, ignore)
	if err != nil {
		return err
	}

	workers := e.config.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	pathsCh := make(chan string, workers*2)

	g.Go(func() error {
		defer close(pathsCh)
		for _, p := range paths {
			select {
			case pathsCh <- p:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for p := range pathsCh {
				if err := e.processFile(gctx, p, callback); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// Workers may all finish before noticing a cancelled parent.
	return ctx.Err()
}

// loadIgnore combines Root/.gitignore with the configured exclude patterns.
func (e *FilesystemEnumerator) loadIgnore() (*gitignore.GitIgnore, error) {
	var lines []string
	data, err := os.ReadFile(filepath.Join(e.config.Root, ".gitignore"))
	switch {
	case err == nil:
		lines = strings.Split(string(data), "\n")
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("reading .gitignore: %w", err)
	}
	lines = append(lines, e.config.Exclude...)
	if len(lines) == 0 {
		return nil, nil
	}
	return gitignore.CompileIgnoreLines(lines...), nil
}

// collect returns the eligible file paths in walk order.
func (e *FilesystemEnumerator) collect(ctx context.Context, ignore *gitignore.GitIgnore) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(e.config.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if path != e.config.Root && !e.config.IncludeHidden && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if ignore != nil && path != e.config.Root {
			rel, err := filepath.Rel(e.config.Root, path)
			if err != nil {
				return err
			}
			if ignored(ignore, filepath.ToSlash(rel), d.IsDir()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 && !e.config.FollowSymlinks {
			return nil
		}
		if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
			return nil
		}

		if e.config.MaxFileSize > 0 {
			info, err := d.Info()
			if err != nil {
				return err
			}
			if info.Size() > e.config.MaxFileSize {
				return nil
			}
		}

		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// ignored matches rel against the patterns. Directories are also tried with a
// trailing slash so that patterns like "build/" apply to them.
func ignored(ignore *gitignore.GitIgnore, rel string, dir bool) bool {
	if ignore.MatchesPath(rel) {
		return true
	}
	return dir && ignore.MatchesPath(rel+"/")
}

// processFile reads a single file and invokes the callback.
func (e *FilesystemEnumerator) processFile(ctx context.Context, path string, callback Callback) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	if !e.config.IncludeBinary && isBinary(content) {
		return nil
	}

	return callback(content, types.ComputeBlobID(content), types.FileProvenance{FilePath: path})
}

// isHidden checks if a filename is hidden (starts with .).
// The special entries "." and ".." are NOT considered hidden.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}

// isBinary reports whether the first 8KB of content contain a NUL byte.
func isBinary(content []byte) bool {
	return bytes.IndexByte(content[:min(len(content), binarySniffLen)], 0) != -1
}
