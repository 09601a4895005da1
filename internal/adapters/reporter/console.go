package reporter

import (
	"fmt"
	"io"

	"github.com/baditaflorin/go_cell_spacer/internal/core/domain"
	"github.com/baditaflorin/go_cell_spacer/internal/ports"
)

// Console prints one progress line per event.
type Console struct {
	out io.Writer
}

// NewConsole creates a reporter writing to out.
func NewConsole(out io.Writer) ports.Reporter {
	return &Console{out: out}
}

func (c *Console) Found(dir, pattern string, count int) {
	if count == 0 {
		fmt.Fprintf(c.out, "No %s files found in %s\n", pattern, dir)
		return
	}
	fmt.Fprintf(c.out, "Found %d %s files to process\n", count, pattern)
}

func (c *Console) Processing(path string) {
	fmt.Fprintf(c.out, "Processing: %s\n", path)
}

func (c *Console) Outcome(outcome domain.FileOutcome, dryRun bool) {
	switch {
	case outcome.Skipped:
		fmt.Fprintf(c.out, "  Skipped %s: %v\n", outcome.Path, outcome.Err)
	case !outcome.Changed:
		fmt.Fprintf(c.out, "  No changes needed for %s\n", outcome.Path)
	case dryRun:
		fmt.Fprintf(c.out, "  Would add %s to %s\n", newlines(outcome.Inserted), outcome.Path)
	default:
		fmt.Fprintf(c.out, "  Added %s to %s\n", newlines(outcome.Inserted), outcome.Path)
	}
}

func (c *Console) Complete(summary domain.RunSummary) {
	fmt.Fprintln(c.out, "Processing complete!")
}

func newlines(n int) string {
	if n == 1 {
		return "1 newline"
	}
	return fmt.Sprintf("%d newlines", n)
}

// Discard drops every event.
type Discard struct{}

func (Discard) Found(string, string, int)        {}
func (Discard) Processing(string)                {}
func (Discard) Outcome(domain.FileOutcome, bool) {}
func (Discard) Complete(domain.RunSummary)       {}
