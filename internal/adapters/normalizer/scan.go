package normalizer

import (
	"strings"

	"github.com/baditaflorin/go_cell_spacer/internal/core/domain"
	"github.com/baditaflorin/go_cell_spacer/internal/pool"
	"github.com/baditaflorin/go_cell_spacer/internal/ports"
)

// ScanNormalizer inserts blank lines after marker lines with a single
// forward scan over the text and a pooled output buffer.
type ScanNormalizer struct {
	marker   string
	bytePool *pool.BufferPool
}

// NewScanNormalizer creates a scan normalizer for the default marker token.
func NewScanNormalizer() ports.Normalizer {
	return newScanNormalizer(domain.MarkerToken)
}

func newScanNormalizer(marker string) *ScanNormalizer {
	return &ScanNormalizer{
		marker:   marker,
		bytePool: pool.NewBufferPool(8192),
	}
}

// Normalize appends one newline to every "marker, rest of line, newline"
// run whose newline is not already followed by a blank line ("\n" or
// "\r\n"). The end of the text counts as "not followed". A marker on the
// last line without a terminating newline is left alone.
func (n *ScanNormalizer) Normalize(text string) string {
	// Fast path: nothing to do
	if !strings.Contains(text, n.marker) {
		return text
	}

	var buffer *[]byte
	defer func() {
		if buffer != nil {
			n.bytePool.Put(buffer)
		}
	}()

	copied := 0
	pos := 0
	for pos < len(text) {
		idx := strings.Index(text[pos:], n.marker)
		if idx < 0 {
			break
		}
		start := pos + idx
		nl := strings.IndexByte(text[start+len(n.marker):], '\n')
		if nl < 0 {
			// No line terminator left, so no later marker can match either.
			break
		}
		end := start + len(n.marker) + nl
		pos = end + 1

		if strings.HasPrefix(text[pos:], "\n") || strings.HasPrefix(text[pos:], "\r\n") {
			continue
		}

		if buffer == nil {
			buffer = n.bytePool.Get(len(text) + len(text)/16 + 1)
		}
		*buffer = append(*buffer, text[copied:pos]...)
		*buffer = append(*buffer, '\n')
		copied = pos
	}

	if buffer == nil {
		return text
	}
	*buffer = append(*buffer, text[copied:]...)
	return string(*buffer)
}
