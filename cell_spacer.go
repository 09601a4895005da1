// cell_spacer.go
// Package cellspacer keeps a blank line after every "#%%" cell marker in
// notebook-style text files.
//
// A marker line is any line containing the token "#%%". When such a line is
// not already followed by a blank line, exactly one newline is inserted after
// it. Nothing else in the text changes, and applying the rule twice gives the
// same result as applying it once. A marker on the final line of a file
// without a trailing newline is left as is.
//
// Use Normalize for in-memory text, NormalizeStream for readers, and New to
// rewrite every matching file in a directory.
package cellspacer

import (
	"context"
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/baditaflorin/go_cell_spacer/internal/adapters/logger"
	"github.com/baditaflorin/go_cell_spacer/internal/adapters/normalizer"
	"github.com/baditaflorin/go_cell_spacer/internal/adapters/reporter"
	"github.com/baditaflorin/go_cell_spacer/internal/adapters/selector"
	"github.com/baditaflorin/go_cell_spacer/internal/adapters/storage"
	"github.com/baditaflorin/go_cell_spacer/internal/adapters/stream"
	"github.com/baditaflorin/go_cell_spacer/internal/core/domain"
	"github.com/baditaflorin/go_cell_spacer/internal/core/rewrite"
	"github.com/baditaflorin/go_cell_spacer/internal/ports"
	"github.com/baditaflorin/l"
)

// MarkerToken is the cell marker the rule applies to.
const MarkerToken = domain.MarkerToken

// DefaultPattern is the file name glob used when none is given.
const DefaultPattern = domain.DefaultPattern

// Summary describes a finished run.
type Summary = domain.RunSummary

// FileOutcome describes what happened to one file.
type FileOutcome = domain.FileOutcome

// Engine selects the matching implementation.
type Engine = normalizer.NormalizerType

const (
	// ScanEngine walks the text once. It is the default.
	ScanEngine = normalizer.ScanNormalizerType
	// RegexEngine applies the rule as a lookahead regular expression.
	RegexEngine = normalizer.RegexNormalizerType
)

// Sentinel errors returned by Run and NormalizeStream.
var (
	ErrSelect        = domain.ErrSelect
	ErrDecode        = domain.ErrDecode
	ErrWrite         = domain.ErrWrite
	ErrInvalidConfig = domain.ErrInvalidConfig
)

var defaultNormalizer = normalizer.NewScanNormalizer()

// Normalize returns text with a blank line after every marker line that
// lacks one.
func Normalize(text string) string {
	return defaultNormalizer.Normalize(text)
}

// NormalizeStream applies Normalize to r line by line and writes the result
// to w. It returns the number of inserted newlines.
func NormalizeStream(ctx context.Context, r io.Reader, w io.Writer) (int, error) {
	inserted, _, err := stream.NewProcessor(logger.NewNopLogger(), stream.ProcessingConfig{}).Process(ctx, r, w)
	return inserted, err
}

// CellSpacer rewrites the matching files of one directory.
type CellSpacer struct {
	rewriter *rewrite.Rewriter
	logger   ports.Logger
}

// Option defines a functional option for configuring a CellSpacer.
type Option func(*options)

type options struct {
	Pattern     string
	DryRun      bool
	SkipInvalid bool
	Engine      Engine
	Logger      ports.Logger
	Normalizer  ports.Normalizer
	Fs          afero.Fs
	Output      io.Writer

	diagOut  io.Writer
	diagJSON bool
}

// WithPattern sets the file name glob, "*.chat.md" by default.
func WithPattern(pattern string) Option {
	return func(o *options) {
		o.Pattern = pattern
	}
}

// WithDryRun reports changes without writing them.
func WithDryRun(dryRun bool) Option {
	return func(o *options) {
		o.DryRun = dryRun
	}
}

// WithSkipInvalid skips files that are not valid UTF-8 instead of failing.
func WithSkipInvalid(skip bool) Option {
	return func(o *options) {
		o.SkipInvalid = skip
	}
}

// WithEngine selects the matching engine.
func WithEngine(engine Engine) Option {
	return func(o *options) {
		o.Engine = engine
	}
}

// WithRegexEngine is shorthand for WithEngine(RegexEngine).
func WithRegexEngine() Option {
	return WithEngine(RegexEngine)
}

// WithLogger sets a custom logger for diagnostics.
func WithLogger(lg l.Logger) Option {
	return func(o *options) {
		o.Logger = logger.FromExisting(lg)
	}
}

// WithDiagnostics writes diagnostic logs to out, as JSON when jsonFormat is set.
func WithDiagnostics(out io.Writer, jsonFormat bool) Option {
	return func(o *options) {
		o.diagOut = out
		o.diagJSON = jsonFormat
	}
}

// WithNormalizer replaces the matching engine entirely.
func WithNormalizer(n ports.Normalizer) Option {
	return func(o *options) {
		o.Normalizer = n
	}
}

// WithFs sets the filesystem, the OS filesystem by default.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		o.Fs = fs
	}
}

// WithOutput sets where progress lines go, stdout by default. Pass
// io.Discard to silence them.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.Output = w
	}
}

// New creates a CellSpacer for dir.
func New(dir string, opts ...Option) (*CellSpacer, error) {
	o := &options{
		Pattern: DefaultPattern,
		Engine:  ScanEngine,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.Logger == nil {
		if o.diagOut != nil {
			var err error
			o.Logger, err = createDefaultLogger(o.diagOut, o.diagJSON)
			if err != nil {
				return nil, err
			}
		} else {
			o.Logger = logger.NewNopLogger()
		}
	}
	if o.Normalizer == nil {
		o.Normalizer = normalizer.NewNormalizerFactory().CreateNormalizer(o.Engine)
	}
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
	if o.Output == nil {
		o.Output = os.Stdout
	}

	rw, err := rewrite.NewRewriter(
		rewrite.Config{
			Dir:         dir,
			Pattern:     o.Pattern,
			DryRun:      o.DryRun,
			SkipInvalid: o.SkipInvalid,
		},
		o.Logger,
		o.Normalizer,
		selector.NewGlobSelector(o.Fs),
		storage.NewFileStore(o.Fs),
		reporter.NewConsole(o.Output),
	)
	if err != nil {
		_ = o.Logger.Close()
		return nil, err
	}

	return &CellSpacer{rewriter: rw, logger: o.Logger}, nil
}

// Run normalizes every matching file, writing back only those that change.
func (c *CellSpacer) Run(ctx context.Context) (Summary, error) {
	return c.rewriter.Run(ctx)
}

// Close flushes the diagnostics logger.
func (c *CellSpacer) Close() error {
	return c.logger.Close()
}
