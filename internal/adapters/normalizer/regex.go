package normalizer

import (
	"github.com/dlclark/regexp2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/baditaflorin/go_cell_spacer/internal/core/domain"
	"github.com/baditaflorin/go_cell_spacer/internal/ports"
)

// RegexNormalizer applies the marker rule as one global lookahead
// substitution. The standard regexp package has no lookahead, hence regexp2.
type RegexNormalizer struct {
	re       *regexp2.Regexp
	fallback ports.Normalizer
}

// NewRegexNormalizer creates a regex based normalizer for the default marker.
func NewRegexNormalizer() ports.Normalizer {
	return newRegexNormalizer(domain.MarkerToken)
}

func newRegexNormalizer(marker string) *RegexNormalizer {
	pattern := "(" + regexp2.Escape(marker) + `[^\n]*\n)(?!\r?\n)`
	return &RegexNormalizer{
		re:       regexp2.MustCompile(pattern, regexp2.None),
		fallback: newScanNormalizer(marker),
	}
}

// Normalize replaces each match with itself plus a newline. Text that is
// not valid UTF-8 goes through the scan engine, since regexp2 matches runes
// and would turn stray bytes into U+FFFD.
func (n *RegexNormalizer) Normalize(text string) string {
	if !validUTF8(text) {
		return n.fallback.Normalize(text)
	}
	out, err := n.re.Replace(text, "$1\n", -1, -1)
	if err != nil {
		// Only a match timeout can fail here; none is configured.
		return n.fallback.Normalize(text)
	}
	return out
}

func validUTF8(text string) bool {
	_, _, err := transform.String(encoding.UTF8Validator, text)
	return err == nil
}
