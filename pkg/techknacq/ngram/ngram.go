// Package ngram extracts candidate phrases from titles and carries the data
// associated with each phrase through the filtering stages.
package ngram

import "strings"

// NGram is an ordered token sequence stored as its space-joined form, so it
// can key a map and compares by token sequence. Tokens never contain spaces.
type NGram string

// New builds an n-gram from tokens.
func New(tokens ...string) NGram {
	return NGram(strings.Join(tokens, " "))
}

// Tokens returns the token sequence.
func (g NGram) Tokens() []string {
	if g == "" {
		return nil
	}
	return strings.Split(string(g), " ")
}

// Len returns the number of tokens.
func (g NGram) Len() int {
	if g == "" {
		return 0
	}
	return strings.Count(string(g), " ") + 1
}

// First returns the first token.
func (g NGram) First() string {
	s := string(g)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

// Last returns the last token.
func (g NGram) Last() string {
	s := string(g)
	if i := strings.LastIndexByte(s, ' '); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Prefix drops the last token. A single-token n-gram has no prefix.
func (g NGram) Prefix() (NGram, bool) {
	s := string(g)
	i := strings.LastIndexByte(s, ' ')
	if i < 0 {
		return "", false
	}
	return NGram(s[:i]), true
}

// Suffix drops the first token. A single-token n-gram has no suffix.
func (g NGram) Suffix() (NGram, bool) {
	s := string(g)
	i := strings.IndexByte(s, ' ')
	if i < 0 {
		return "", false
	}
	return NGram(s[i+1:]), true
}

// TrimLastSuffix removes suffix from the last token: "markov models" minus
// "s" is "markov model". ok is false when the last token does not end in
// suffix or is nothing but suffix.
func (g NGram) TrimLastSuffix(suffix string) (NGram, bool) {
	last := g.Last()
	if len(last) <= len(suffix) || !strings.HasSuffix(last, suffix) {
		return g, false
	}
	return g[:len(g)-len(suffix)], true
}

// String returns the phrase as emitted to callers.
func (g NGram) String() string {
	return string(g)
}
