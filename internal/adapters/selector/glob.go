package selector

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/baditaflorin/go_cell_spacer/internal/core/domain"
	"github.com/baditaflorin/go_cell_spacer/internal/ports"
)

// GlobSelector lists the regular files directly inside a directory whose
// base names match a glob pattern. Names starting with a dot only match a
// pattern that starts with a dot, and symlinks are followed to their target.
type GlobSelector struct {
	fs afero.Fs
}

// NewGlobSelector creates a selector over the given filesystem.
func NewGlobSelector(fs afero.Fs) ports.FileSelector {
	return &GlobSelector{fs: fs}
}

// Select returns matching paths in lexical order. Subdirectories are never
// entered. An empty result is not an error.
func (s *GlobSelector) Select(ctx context.Context, dir, pattern string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: invalid pattern %q", domain.ErrSelect, pattern)
	}

	info, err := s.fs.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSelect, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrSelect, dir)
	}

	// afero.ReadDir sorts entries by name.
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSelect, err)
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if isHidden(name) && !isHidden(pattern) {
			continue
		}
		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrSelect, err)
		}
		if !ok {
			continue
		}
		path := filepath.Join(dir, name)
		if !s.isRegular(entry, path) {
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// isRegular reports whether entry is a regular file, resolving symlinks.
// Dangling links are dropped.
func (s *GlobSelector) isRegular(entry os.FileInfo, path string) bool {
	if entry.Mode()&os.ModeSymlink == 0 {
		return entry.Mode().IsRegular()
	}
	target, err := s.fs.Stat(path)
	if err != nil {
		return false
	}
	return target.Mode().IsRegular()
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
