package logger

import (
	"io"
	"os"

	"github.com/baditaflorin/go_cell_spacer/internal/ports"
	"github.com/baditaflorin/l"
)

// Options selects where and how diagnostics are written.
type Options struct {
	Output     io.Writer
	JsonFormat bool
}

// StdLogger adapts the l.Logger to the ports.Logger interface.
type StdLogger struct {
	logger l.Logger
}

// NewLogger creates a logger from the given options. A nil Output writes to
// stderr.
func NewLogger(opts Options) (ports.Logger, error) {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	return NewCustomStdLogger(l.Config{
		Output:      opts.Output,
		JsonFormat:  opts.JsonFormat,
		AsyncWrite:  true,
		BufferSize:  64 * 1024,        // 64KB buffer
		MaxFileSize: 10 * 1024 * 1024, // 10MB max file size
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     false,
	})
}

// NewCustomStdLogger creates a new standard logger with custom configuration.
func NewCustomStdLogger(config l.Config) (ports.Logger, error) {
	logger, err := l.NewStandardFactory().CreateLogger(config)
	if err != nil {
		return nil, err
	}

	return &StdLogger{logger: logger}, nil
}

// FromExisting creates a new StdLogger from an existing l.Logger.
func FromExisting(logger l.Logger) ports.Logger {
	return &StdLogger{logger: logger}
}

func (s *StdLogger) Debug(msg string, keysAndValues ...interface{}) {
	s.logger.Debug(msg, keysAndValues...)
}

func (s *StdLogger) Info(msg string, keysAndValues ...interface{}) {
	s.logger.Info(msg, keysAndValues...)
}

func (s *StdLogger) Warn(msg string, keysAndValues ...interface{}) {
	s.logger.Warn(msg, keysAndValues...)
}

func (s *StdLogger) Error(msg string, keysAndValues ...interface{}) {
	s.logger.Error(msg, keysAndValues...)
}

// Close flushes pending records.
func (s *StdLogger) Close() error {
	return s.logger.Close()
}

// NopLogger discards everything. Used when diagnostics are off.
type NopLogger struct{}

// NewNopLogger returns a logger that drops all records.
func NewNopLogger() ports.Logger {
	return NopLogger{}
}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Close() error                 { return nil }
