package ingest

import "fmt"

// Tokenizer names accepted by New.
const (
	KindWord    = "word"
	KindSegment = "segment"
)

// New returns the tokenizer registered under kind. An empty kind selects the
// word tokenizer.
func New(kind string) (Tokenizer, error) {
	switch kind {
	case "", KindWord:
		return NewWordTokenizer(), nil
	case KindSegment:
		return NewSegmentTokenizer(), nil
	default:
		return nil, fmt.Errorf("unknown tokenizer %q", kind)
	}
}
