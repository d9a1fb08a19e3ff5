// Package candidate decides which extracted n-grams can be terms and folds
// regular plurals into their singular forms.
package candidate

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/lexicon"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/ngram"
)

// DefaultAllowAcronyms are technical acronyms that are also dictionary words
// once lower-cased. They are matched exactly, so "LISP" is allowed while
// "lisp" is not.
var DefaultAllowAcronyms = []string{
	"BLEU", "CART", "CRF", "HAL", "LISP", "MAP", "METEOR", "NER", "POS", "ROUGE", "SAT", "SIFT", "SVM",
}

// Filter is the admissibility predicate over candidate n-grams.
type Filter struct {
	lex   lexicon.Oracle
	allow map[string]struct{}
}

// NewFilter creates a filter. A nil allow list means DefaultAllowAcronyms;
// pass an empty non-nil slice to allow nothing.
func NewFilter(lex lexicon.Oracle, allow []string) *Filter {
	if allow == nil {
		allow = DefaultAllowAcronyms
	}
	set := make(map[string]struct{}, len(allow))
	for _, a := range allow {
		set[a] = struct{}{}
	}
	return &Filter{lex: lex, allow: set}
}

// Admissible reports whether g may be a term. Any one rule rejects:
//   - a single token that is a dictionary word, unless allow-listed
//   - a single token not starting with a letter
//   - a stopword at either end
//   - an end token holding a hyphen and ending in a digit ("NAME-92")
//   - an end token ending in a hyphen or period
//   - any token without letters, or with an asterisk
func (f *Filter) Admissible(g ngram.NGram) bool {
	tokens := g.Tokens()
	if len(tokens) == 0 {
		return false
	}

	if len(tokens) == 1 {
		tok := tokens[0]
		if _, ok := f.allow[tok]; !ok && f.lex.IsDictionaryWord(strings.ToLower(tok)) {
			return false
		}
		if r, _ := utf8.DecodeRuneInString(tok); !unicode.IsLetter(r) {
			return false
		}
	}

	first, last := tokens[0], tokens[len(tokens)-1]
	for _, end := range []string{first, last} {
		if f.lex.IsStopword(end) {
			return false
		}
		if citationLike(end) || incomplete(end) {
			return false
		}
	}

	for _, tok := range tokens {
		if !hasLetter(tok) || strings.ContainsRune(tok, '*') {
			return false
		}
	}

	return true
}

// Apply returns the admissible entries of t.
func (f *Filter) Apply(t ngram.Table) ngram.Table {
	out := make(ngram.Table, len(t))
	for g, a := range t {
		if f.Admissible(g) {
			out[g] = a
		}
	}
	return out
}

func citationLike(tok string) bool {
	r, _ := utf8.DecodeLastRuneInString(tok)
	return unicode.IsDigit(r) && strings.ContainsRune(tok, '-')
}

func incomplete(tok string) bool {
	return strings.HasSuffix(tok, "-") || strings.HasSuffix(tok, ".")
}

func hasLetter(tok string) bool {
	for _, r := range tok {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
