package normalizer

import (
	"fmt"
	"strings"

	"github.com/baditaflorin/go_cell_spacer/internal/ports"
)

// NormalizerFactory creates the appropriate normalizer for an engine choice
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// NormalizerType selects the matching engine.
type NormalizerType int

const (
	// ScanNormalizerType walks the text once with pooled buffers
	ScanNormalizerType NormalizerType = iota
	// RegexNormalizerType uses a lookahead regular expression
	RegexNormalizerType
)

// String returns the engine name used on the command line.
func (t NormalizerType) String() string {
	switch t {
	case RegexNormalizerType:
		return "regex"
	default:
		return "scan"
	}
}

// ParseNormalizerType maps an engine name to its type.
func ParseNormalizerType(name string) (NormalizerType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "scan":
		return ScanNormalizerType, nil
	case "regex":
		return RegexNormalizerType, nil
	default:
		return ScanNormalizerType, fmt.Errorf("unknown engine %q: must be 'scan' or 'regex'", name)
	}
}

// CreateNormalizer creates a normalizer of the specified type
func (f *NormalizerFactory) CreateNormalizer(normalizerType NormalizerType) ports.Normalizer {
	switch normalizerType {
	case RegexNormalizerType:
		return NewRegexNormalizer()
	default:
		return NewScanNormalizer()
	}
}
