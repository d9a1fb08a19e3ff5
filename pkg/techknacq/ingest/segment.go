package ingest

import (
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
)

// SegmentTokenizer splits text on Unicode (UAX #29) word boundaries using
// bleve's unicode tokenizer. Unlike WordTokenizer it breaks "k-means" into
// "k" and "means".
type SegmentTokenizer struct {
	inner *unicode.UnicodeTokenizer
}

// NewSegmentTokenizer creates a segment tokenizer.
func NewSegmentTokenizer() *SegmentTokenizer {
	return &SegmentTokenizer{inner: unicode.NewUnicodeTokenizer()}
}

// Tokenize implements Tokenizer.
func (t *SegmentTokenizer) Tokenize(text string) []string {
	stream := t.inner.Tokenize([]byte(text))
	tokens := make([]string, 0, len(stream))
	for _, tok := range stream {
		if len(tok.Term) == 0 {
			continue
		}
		tokens = append(tokens, string(tok.Term))
	}
	return tokens
}
