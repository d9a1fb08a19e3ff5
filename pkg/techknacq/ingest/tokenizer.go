// Package ingest turns raw title text into the normalized tokens n-gram
// extraction works on.
package ingest

import (
	"strings"
	"unicode"
)

// Tokenizer splits text into an ordered sequence of word tokens.
type Tokenizer interface {
	Tokenize(text string) []string
}

// WordTokenizer is the default tokenizer. It splits on whitespace and
// punctuation but keeps hyphens, periods, apostrophes and asterisks inside a
// word, so "k-means", "U.S." and "NAME-92" survive as single tokens for the
// candidate filter to judge.
type WordTokenizer struct{}

// NewWordTokenizer creates a word tokenizer.
func NewWordTokenizer() *WordTokenizer {
	return &WordTokenizer{}
}

// Tokenize implements Tokenizer. Original casing is preserved; see
// NormalizeCase.
func (t *WordTokenizer) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		if word := cleanToken(current.String()); word != "" {
			tokens = append(tokens, word)
		}
		current.Reset()
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || isJoiner(r) {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	// A sentence-final period belongs to the sentence, not the word.
	if n := len(tokens); n > 0 && strings.HasSuffix(tokens[n-1], ".") {
		last := strings.TrimSuffix(tokens[n-1], ".")
		if cleanToken(last) == "" {
			tokens = tokens[:n-1]
		} else {
			tokens[n-1] = last
		}
	}

	return tokens
}

func isJoiner(r rune) bool {
	return r == '-' || r == '.' || r == '*' || r == '\''
}

// cleanToken drops quote-like apostrophes and leading periods, and rejects
// tokens made of joiners only ("--", "...").
func cleanToken(token string) string {
	token = strings.Trim(token, "'")
	token = strings.TrimLeft(token, ".")
	for _, r := range token {
		if !isJoiner(r) {
			return token
		}
	}
	return ""
}

// NormalizeCase applies the acronym rule: a token that is entirely upper-case
// and longer than one character keeps its case, everything else is
// lower-cased.
func NormalizeCase(token string) string {
	if len([]rune(token)) > 1 && isUpper(token) {
		return token
	}
	return strings.ToLower(token)
}

// Normalize tokenizes text and applies NormalizeCase to every token, once,
// so every n-gram built from the result sees the same casing. Tokens from
// the tokenizer are split on whitespace and empty ones dropped, since an
// n-gram joins its tokens with single spaces.
func Normalize(t Tokenizer, text string) []string {
	raw := t.Tokenize(text)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		for _, part := range strings.Fields(tok) {
			tokens = append(tokens, NormalizeCase(part))
		}
	}
	return tokens
}

// isUpper reports whether s has at least one cased letter and no lower-case
// letters.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}
