package ports

import (
	"context"

	"github.com/baditaflorin/go_cell_spacer/internal/core/domain"
)

// FileSelector enumerates candidate files directly inside a directory.
type FileSelector interface {
	Select(ctx context.Context, dir, pattern string) ([]string, error)
}

// DocumentStore loads and replaces documents.
type DocumentStore interface {
	Read(ctx context.Context, path string) (domain.Document, error)
	Write(ctx context.Context, doc domain.Document) error
}

// Reporter emits the human readable progress of a run.
type Reporter interface {
	Found(dir, pattern string, count int)
	Processing(path string)
	Outcome(outcome domain.FileOutcome, dryRun bool)
	Complete(summary domain.RunSummary)
}
