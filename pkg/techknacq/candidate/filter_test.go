package candidate

import (
	"testing"

	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/lexicon"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/ngram"
)

func testLexicon() *lexicon.Lexicon {
	lex := lexicon.New()
	lex.AddWords("model", "models", "synthesis", "hidden", "map", "lisp", "search")
	lex.AddStopwords("the", "of", "for", "a", "and", "on")
	return lex
}

func TestAdmissible(t *testing.T) {
	f := NewFilter(testLexicon(), nil)

	tests := []struct {
		name   string
		gram   ngram.NGram
		expect bool
	}{
		{"plain term", ngram.New("markov"), true},
		{"multi-word term", ngram.New("hidden", "markov", "models"), true},
		{"dictionary word", ngram.New("synthesis"), false},
		{"dictionary word upper-case", ngram.New("SYNTHESIS"), false},
		{"allow-listed acronym", ngram.New("LISP"), true},
		{"allow-list is exact", ngram.New("lisp"), false},
		{"dictionary word inside phrase", ngram.New("speech", "synthesis"), true},
		{"leading digit", ngram.New("3d"), false},
		{"leading digit in phrase ok", ngram.New("3d", "reconstruction"), true},
		{"leading stopword", ngram.New("the", "parser"), false},
		{"trailing stopword", ngram.New("models", "for"), false},
		{"stopword by lower-case", ngram.New("The", "parser"), false},
		{"inner stopword ok", ngram.New("models", "for", "speech"), true},
		{"single stopword", ngram.New("the"), false},
		{"citation id at end", ngram.New("results", "NAME-92"), false},
		{"citation id at start", ngram.New("NAME-92", "results"), false},
		{"hyphen without digit ok", ngram.New("k-means"), true},
		{"digit without hyphen ok", ngram.New("word2vec"), true},
		{"trailing hyphen", ngram.New("pre-"), false},
		{"trailing period", ngram.New("parsing", "etc."), false},
		{"inner period ok", ngram.New("U.S.A", "patents"), true},
		{"no letters", ngram.New("wmt", "2014", "task"), false},
		{"asterisk", ngram.New("A*", "heuristic"), false},
		{"empty", ngram.NGram(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Admissible(tt.gram); got != tt.expect {
				t.Errorf("Admissible(%q) = %v, want %v", tt.gram, got, tt.expect)
			}
		})
	}
}

func TestEmptyAllowList(t *testing.T) {
	f := NewFilter(testLexicon(), []string{})
	if f.Admissible(ngram.New("LISP")) {
		t.Error("LISP should be rejected without an allow list")
	}
	f = NewFilter(testLexicon(), []string{"MAP"})
	if !f.Admissible(ngram.New("MAP")) {
		t.Error("MAP should be allowed")
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	f := NewFilter(testLexicon(), nil)
	in := ngram.Table{
		"markov":           ngram.Count(3),
		"synthesis":        ngram.Count(1),
		"the":              ngram.Count(9),
		"speech":           ngram.Count(3),
		"markov models":    ngram.Count(2),
		"models for":       ngram.Count(1),
		"NAME-92":          ngram.Count(1),
		"speech 2":         ngram.Count(1),
		"hidden markov":    ngram.Count(1),
		"k-means":          ngram.Count(4),
		"for speech":       ngram.Count(1),
		"speech synthesis": ngram.Count(1),
	}

	once := f.Apply(in)
	twice := f.Apply(once)

	if len(once) != len(twice) {
		t.Fatalf("second pass changed size: %d -> %d", len(once), len(twice))
	}
	for g := range once {
		if _, ok := twice[g]; !ok {
			t.Errorf("%q dropped on second pass", g)
		}
	}
	for _, rejected := range []ngram.NGram{"synthesis", "the", "models for", "NAME-92", "speech 2", "for speech"} {
		if _, ok := once[rejected]; ok {
			t.Errorf("%q should have been filtered", rejected)
		}
	}
	if len(in) != 12 {
		t.Error("Apply mutated its input")
	}
}
