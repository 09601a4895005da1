package rewrite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/baditaflorin/go_cell_spacer/internal/core/domain"
	"github.com/baditaflorin/go_cell_spacer/internal/ports"
)

// Config holds configuration for a rewrite run.
type Config struct {
	Dir         string
	Pattern     string
	DryRun      bool
	SkipInvalid bool
}

// DefaultConfig returns a default configuration for dir.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:     dir,
		Pattern: domain.DefaultPattern,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Dir) == "" {
		return fmt.Errorf("%w: directory must not be empty", domain.ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Pattern) == "" {
		return fmt.Errorf("%w: pattern must not be empty", domain.ErrInvalidConfig)
	}
	if strings.Contains(c.Pattern, "/") {
		return fmt.Errorf("%w: pattern %q must match file names, not paths", domain.ErrInvalidConfig, c.Pattern)
	}
	if !doublestar.ValidatePattern(c.Pattern) {
		return fmt.Errorf("%w: malformed pattern %q", domain.ErrInvalidConfig, c.Pattern)
	}
	return nil
}

// Rewriter selects candidate files, normalizes them and writes back the
// ones that changed.
type Rewriter struct {
	config     Config
	logger     ports.Logger
	normalizer ports.Normalizer
	selector   ports.FileSelector
	store      ports.DocumentStore
	reporter   ports.Reporter
}

// NewRewriter creates a new rewriter.
func NewRewriter(
	config Config,
	logger ports.Logger,
	normalizer ports.Normalizer,
	selector ports.FileSelector,
	store ports.DocumentStore,
	reporter ports.Reporter,
) (*Rewriter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Rewriter{
		config:     config,
		logger:     logger,
		normalizer: normalizer,
		selector:   selector,
		store:      store,
		reporter:   reporter,
	}, nil
}

// Run processes every candidate file sequentially. Selection, read and write
// failures stop the run; decode failures are skipped when SkipInvalid is set.
func (r *Rewriter) Run(ctx context.Context) (domain.RunSummary, error) {
	summary := domain.RunSummary{
		Dir:     r.config.Dir,
		Pattern: r.config.Pattern,
	}

	paths, err := r.selector.Select(ctx, r.config.Dir, r.config.Pattern)
	if err != nil {
		r.logger.Error("File selection failed", "dir", r.config.Dir, "pattern", r.config.Pattern, "error", err)
		return summary, err
	}

	summary.Found = len(paths)
	r.reporter.Found(r.config.Dir, r.config.Pattern, len(paths))
	if len(paths) == 0 {
		r.logger.Info("No candidate files", "dir", r.config.Dir, "pattern", r.config.Pattern)
		return summary, nil
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("Run cancelled", "error", err)
			return summary, err
		}

		r.reporter.Processing(path)
		outcome, err := r.processFile(ctx, path)
		if err != nil {
			return summary, err
		}

		summary.Outcomes = append(summary.Outcomes, outcome)
		switch {
		case outcome.Skipped:
			summary.Skipped++
		case outcome.Changed:
			summary.Changed++
			summary.Inserted += outcome.Inserted
		}
		r.reporter.Outcome(outcome, r.config.DryRun)
	}

	r.reporter.Complete(summary)
	r.logger.Debug("Run complete",
		"found", summary.Found,
		"changed", summary.Changed,
		"inserted", summary.Inserted,
		"skipped", summary.Skipped,
	)
	return summary, nil
}

func (r *Rewriter) processFile(ctx context.Context, path string) (domain.FileOutcome, error) {
	outcome := domain.FileOutcome{Path: path}

	doc, err := r.store.Read(ctx, path)
	if err != nil {
		if r.config.SkipInvalid && errors.Is(err, domain.ErrDecode) {
			r.logger.Warn("Skipping undecodable file", "path", path, "error", err)
			outcome.Skipped = true
			outcome.Err = err
			return outcome, nil
		}
		r.logger.Error("Read failed", "path", path, "error", err)
		return outcome, err
	}

	normalized := r.normalizer.Normalize(doc.Text)
	if normalized == doc.Text {
		r.logger.Debug("Document already normalized", "path", path)
		return outcome, nil
	}

	// Normalization only ever inserts single newline bytes.
	outcome.Changed = true
	outcome.Inserted = len(normalized) - len(doc.Text)

	if r.config.DryRun {
		r.logger.Debug("Dry run, not writing", "path", path, "inserted", outcome.Inserted)
		return outcome, nil
	}

	doc.Text = normalized
	if err := r.store.Write(ctx, doc); err != nil {
		r.logger.Error("Write failed", "path", path, "error", err)
		return outcome, err
	}
	outcome.Written = true
	r.logger.Debug("Document rewritten", "path", path, "inserted", outcome.Inserted)
	return outcome, nil
}
