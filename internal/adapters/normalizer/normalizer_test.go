package normalizer

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_cell_spacer/internal/ports"
)

func engines() map[string]ports.Normalizer {
	factory := NewNormalizerFactory()
	return map[string]ports.Normalizer{
		"scan":  factory.CreateNormalizer(ScanNormalizerType),
		"regex": factory.CreateNormalizer(RegexNormalizerType),
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "inserts a blank line after a marker",
			input:    "#%%cell\nprint(1)\n",
			expected: "#%%cell\n\nprint(1)\n",
		},
		{
			name:     "keeps an existing blank line",
			input:    "#%%cell\n\nprint(1)\n",
			expected: "#%%cell\n\nprint(1)\n",
		},
		{
			name:     "handles consecutive markers independently",
			input:    "#%%a\n#%%b\n",
			expected: "#%%a\n\n#%%b\n\n",
		},
		{
			name:     "leaves text without markers alone",
			input:    "print(1)\nprint(2)\n",
			expected: "print(1)\nprint(2)\n",
		},
		{
			name:     "empty text",
			input:    "",
			expected: "",
		},
		{
			name:     "marker on last line without newline",
			input:    "x = 1\n#%% tail",
			expected: "x = 1\n#%% tail",
		},
		{
			name:     "marker at end of text with newline",
			input:    "#%%\n",
			expected: "#%%\n\n",
		},
		{
			name:     "marker in the middle of a line",
			input:    "code # #%% note\nnext\n",
			expected: "code # #%% note\n\nnext\n",
		},
		{
			name:     "two markers on one line count once",
			input:    "#%% a #%% b\nnext\n",
			expected: "#%% a #%% b\n\nnext\n",
		},
		{
			name:     "more than one blank line is preserved",
			input:    "#%%\n\n\n\nbody\n",
			expected: "#%%\n\n\n\nbody\n",
		},
		{
			name:     "carriage return stays part of the line",
			input:    "#%% win\r\nbody\r\n",
			expected: "#%% win\r\n\nbody\r\n",
		},
		{
			name:     "CRLF blank line counts as blank",
			input:    "#%%a\r\n\r\nbody\r\n",
			expected: "#%%a\r\n\r\nbody\r\n",
		},
		{
			name:     "CRLF markers mixed with spaced and unspaced cells",
			input:    "#%%a\r\n#%%b\r\n\r\nx\r\n",
			expected: "#%%a\r\n\n#%%b\r\n\r\nx\r\n",
		},
		{
			name:     "lone carriage return line is not blank",
			input:    "#%%a\n\rbody\n",
			expected: "#%%a\n\n\rbody\n",
		},
		{
			name:     "partial token does not match",
			input:    "#% not a cell\nbody\n",
			expected: "#% not a cell\nbody\n",
		},
		{
			name:     "unicode content",
			input:    "#%% 見出し\nテキスト\n",
			expected: "#%% 見出し\n\nテキスト\n",
		},
	}

	for engine, n := range engines() {
		for _, tc := range tests {
			t.Run(engine+"/"+tc.name, func(t *testing.T) {
				assert.Equal(t, tc.expected, n.Normalize(tc.input))
			})
		}
	}
}

// randomDocument builds text from fragments that are likely to produce
// marker lines, blank lines and lines without terminators.
func randomDocument(r *rand.Rand) string {
	fragments := []string{"#%%", "#%% cell", "\n", "\n\n", "x = 1", "#", "%%", " ", "\r\n", "\r", "é"}
	var sb strings.Builder
	for i := r.Intn(40); i > 0; i-- {
		sb.WriteString(fragments[r.Intn(len(fragments))])
	}
	return sb.String()
}

func TestNormalizeProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	samples := make([]string, 2000)
	for i := range samples {
		samples[i] = randomDocument(r)
	}

	for engine, n := range engines() {
		t.Run(engine+"/Should be idempotent", func(t *testing.T) {
			for _, in := range samples {
				once := n.Normalize(in)
				require.Equal(t, once, n.Normalize(once), "input %q", in)
			}
		})
		t.Run(engine+"/Should only insert newlines", func(t *testing.T) {
			for _, in := range samples {
				out := n.Normalize(in)
				require.GreaterOrEqual(t, len(out), len(in))
				// Removing every newline from both sides must give the same text.
				require.Equal(t,
					strings.ReplaceAll(in, "\n", ""),
					strings.ReplaceAll(out, "\n", ""),
					"input %q", in)
			}
		})
		t.Run(engine+"/Should leave non-marker lines untouched", func(t *testing.T) {
			for _, in := range samples {
				out := n.Normalize(in)
				require.Equal(t, nonBlankLines(in), nonBlankLines(out), "input %q", in)
			}
		})
	}

	t.Run("Should agree across engines", func(t *testing.T) {
		scan := NewScanNormalizer()
		regex := NewRegexNormalizer()
		for _, in := range samples {
			require.Equal(t, regex.Normalize(in), scan.Normalize(in), "input %q", in)
		}
	})
}

func TestNormalizeGrowth(t *testing.T) {
	in := "#%%a\n#%%b\n\n#%%c\nbody\n#%%d"
	for engine, n := range engines() {
		t.Run(engine, func(t *testing.T) {
			// a and c lack a blank line, b already has one, d has no newline.
			assert.Equal(t, 2, len(n.Normalize(in))-len(in))
		})
	}
}

func TestNormalizeInvalidUTF8(t *testing.T) {
	in := "#%%\xff cell\nx\xfe\n#%%\n\n"
	want := "#%%\xff cell\n\nx\xfe\n#%%\n\n"
	for engine, n := range engines() {
		t.Run(engine+"/Should keep invalid bytes", func(t *testing.T) {
			assert.Equal(t, want, n.Normalize(in))
		})
	}
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestParseNormalizerType(t *testing.T) {
	t.Run("Should parse known engines", func(t *testing.T) {
		typ, err := ParseNormalizerType("regex")
		require.NoError(t, err)
		assert.Equal(t, RegexNormalizerType, typ)

		typ, err = ParseNormalizerType(" SCAN ")
		require.NoError(t, err)
		assert.Equal(t, ScanNormalizerType, typ)

		typ, err = ParseNormalizerType("")
		require.NoError(t, err)
		assert.Equal(t, ScanNormalizerType, typ)
	})
	t.Run("Should reject unknown engines", func(t *testing.T) {
		_, err := ParseNormalizerType("awk")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown engine")
	})
	t.Run("Should round trip names", func(t *testing.T) {
		for _, typ := range []NormalizerType{ScanNormalizerType, RegexNormalizerType} {
			parsed, err := ParseNormalizerType(typ.String())
			require.NoError(t, err)
			assert.Equal(t, typ, parsed)
		}
	})
}
