package normalizer

import (
	"strings"
	"testing"
)

// generateNotebookText builds a document with the given number of cells,
// half of them already spaced.
func generateNotebookText(cells, bodyLines int) string {
	var sb strings.Builder
	for i := 0; i < cells; i++ {
		sb.WriteString("#%% cell\n")
		if i%2 == 0 {
			sb.WriteString("\n")
		}
		for j := 0; j < bodyLines; j++ {
			sb.WriteString("value = compute(value, 42)  # some trailing comment\n")
		}
	}
	return sb.String()
}

func BenchmarkNormalizers(b *testing.B) {
	samples := map[string]string{
		"small":  generateNotebookText(10, 5),
		"medium": generateNotebookText(200, 10),
		"large":  generateNotebookText(2000, 20),
		"plain":  strings.Repeat("no markers in this line\n", 5000),
	}

	factory := NewNormalizerFactory()
	for _, typ := range []NormalizerType{ScanNormalizerType, RegexNormalizerType} {
		n := factory.CreateNormalizer(typ)
		for name, text := range samples {
			b.Run(typ.String()+"/"+name, func(b *testing.B) {
				b.SetBytes(int64(len(text)))
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					_ = n.Normalize(text)
				}
			})
		}
	}
}
