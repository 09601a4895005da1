package storage

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/baditaflorin/go_cell_spacer/internal/core/domain"
	"github.com/baditaflorin/go_cell_spacer/internal/ports"
)

// FileStore reads and writes UTF-8 documents on an afero filesystem.
// Writes replace the file in place; there is no temp-file swap.
type FileStore struct {
	fs afero.Fs
}

// NewFileStore creates a store over the given filesystem.
func NewFileStore(fs afero.Fs) ports.DocumentStore {
	return &FileStore{fs: fs}
}

// Read loads the whole file and checks that it is valid UTF-8.
func (s *FileStore) Read(ctx context.Context, path string) (domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return domain.Document{}, err
	}

	info, err := s.fs.Stat(path)
	if err != nil {
		return domain.Document{}, err
	}
	raw, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return domain.Document{}, err
	}
	if _, _, err := transform.Bytes(encoding.UTF8Validator, raw); err != nil {
		return domain.Document{}, fmt.Errorf("%w: %s: %v", domain.ErrDecode, path, err)
	}

	return domain.Document{
		Path: path,
		Text: string(raw),
		Mode: info.Mode().Perm(),
	}, nil
}

// Write replaces the file contents with doc.Text, keeping its permissions.
func (s *FileStore) Write(ctx context.Context, doc domain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mode := doc.Mode
	if mode == 0 {
		mode = 0o644
	}
	if err := afero.WriteFile(s.fs, doc.Path, []byte(doc.Text), mode); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrWrite, doc.Path, err)
	}
	return nil
}
