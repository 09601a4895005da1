package stream

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/baditaflorin/go_cell_spacer/internal/core/domain"
	"github.com/baditaflorin/go_cell_spacer/internal/ports"
)

// Constants for line processing
const (
	// DefaultBufferSize defines the read buffer size
	DefaultBufferSize = 64 * 1024 // 64KB

	// ContextCheckFrequency defines how often to check for context cancellation
	ContextCheckFrequency = 500 // lines

	LF = '\n'
)

// ProcessingConfig defines configuration for stream processing
type ProcessingConfig struct {
	BufferSize int
}

// Processor applies the marker spacing rule to a stream line by line,
// holding at most one line in memory.
type Processor struct {
	logger     ports.Logger
	marker     string
	bufferSize int
}

// NewProcessor creates a new stream processor for the default marker.
func NewProcessor(logger ports.Logger, config ProcessingConfig) *Processor {
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultBufferSize
	}
	return &Processor{
		logger:     logger,
		marker:     domain.MarkerToken,
		bufferSize: config.BufferSize,
	}
}

// Process copies reader to writer, inserting a newline after every marker
// line that is not already followed by a blank line. The output equals the
// in-memory normalizer applied to the whole input. It returns the number of
// inserted newlines and the bytes read.
func (p *Processor) Process(ctx context.Context, reader io.Reader, writer io.Writer) (int, int64, error) {
	startTime := time.Now()

	in := bufio.NewReaderSize(transform.NewReader(reader, encoding.UTF8Validator), p.bufferSize)
	out := bufio.NewWriterSize(writer, p.bufferSize)

	inserted := 0
	var bytesProcessed int64
	// pending is set when the previous line held a marker and ended in a
	// newline; its fate depends on whether the next line is blank.
	pending := false
	contextCheckCounter := 0

	for {
		contextCheckCounter++
		if contextCheckCounter >= ContextCheckFrequency {
			if err := ctx.Err(); err != nil {
				p.logger.Warn("Processing cancelled by context", "error", err)
				return inserted, bytesProcessed, err
			}
			contextCheckCounter = 0
		}

		line, err := in.ReadString(LF)
		if err != nil && !errors.Is(err, io.EOF) {
			if errors.Is(err, encoding.ErrInvalidUTF8) {
				err = fmt.Errorf("%w: %v", domain.ErrDecode, err)
			}
			p.logger.Warn("Error reading from input", "error", err)
			return inserted, bytesProcessed, err
		}
		if line == "" {
			break
		}
		bytesProcessed += int64(len(line))

		if pending && !isBlank(line) {
			if err := out.WriteByte(LF); err != nil {
				return inserted, bytesProcessed, err
			}
			inserted++
		}
		if _, werr := out.WriteString(line); werr != nil {
			return inserted, bytesProcessed, werr
		}
		pending = line[len(line)-1] == LF && strings.Contains(line, p.marker)

		if err != nil {
			break
		}
	}

	if pending {
		if err := out.WriteByte(LF); err != nil {
			return inserted, bytesProcessed, err
		}
		inserted++
	}
	if err := out.Flush(); err != nil {
		return inserted, bytesProcessed, err
	}

	p.logger.Debug("Stream processing completed",
		"inserted", inserted,
		"bytes_processed", bytesProcessed,
		"duration", time.Since(startTime),
	)
	return inserted, bytesProcessed, nil
}

// isBlank reports whether line is an empty LF or CRLF terminated line.
func isBlank(line string) bool {
	return line == "\n" || line == "\r\n"
}
