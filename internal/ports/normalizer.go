package ports

// Normalizer defines the interface for marker line normalization.
// Implementations must be pure: the output depends only on text. Bytes that
// are not valid UTF-8 must pass through unchanged; the document store
// rejects such files before they reach a normalizer, but callers of
// Normalize directly may still supply them.
type Normalizer interface {
	Normalize(text string) string
}
