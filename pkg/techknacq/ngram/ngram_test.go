package ngram

import (
	"reflect"
	"testing"
)

func TestNGramAccessors(t *testing.T) {
	g := New("hidden", "markov", "models")

	if g.Len() != 3 {
		t.Errorf("Len() = %d, want 3", g.Len())
	}
	if g.First() != "hidden" || g.Last() != "models" {
		t.Errorf("First/Last = %q/%q", g.First(), g.Last())
	}
	if p, ok := g.Prefix(); !ok || p != "hidden markov" {
		t.Errorf("Prefix() = %q, %v", p, ok)
	}
	if s, ok := g.Suffix(); !ok || s != "markov models" {
		t.Errorf("Suffix() = %q, %v", s, ok)
	}
	if !reflect.DeepEqual(g.Tokens(), []string{"hidden", "markov", "models"}) {
		t.Errorf("Tokens() = %v", g.Tokens())
	}
}

func TestTrimLastSuffix(t *testing.T) {
	tests := []struct {
		in, suffix string
		want       NGram
		ok         bool
	}{
		{"markov models", "s", "markov model", true},
		{"classes", "es", "class", true},
		{"markov model", "s", "markov model", false},
		{"a s", "s", "a s", false},
		{"es", "es", "es", false},
	}
	for _, tt := range tests {
		got, ok := NGram(tt.in).TrimLastSuffix(tt.suffix)
		if got != tt.want || ok != tt.ok {
			t.Errorf("TrimLastSuffix(%q, %q) = %q, %v; want %q, %v", tt.in, tt.suffix, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNGramSingleToken(t *testing.T) {
	g := New("speech")
	if g.Len() != 1 || g.First() != "speech" || g.Last() != "speech" {
		t.Errorf("unexpected accessors for %q", g)
	}
	if _, ok := g.Prefix(); ok {
		t.Error("single token should have no prefix")
	}
	if _, ok := g.Suffix(); ok {
		t.Error("single token should have no suffix")
	}
	if NGram("").Len() != 0 || NGram("").Tokens() != nil {
		t.Error("empty n-gram should have no tokens")
	}
}

func TestAssocMergeCounts(t *testing.T) {
	merged, err := Count(3).Merge(Count(4))
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if merged.Kind() != KindCount || merged.Count() != 7 || merged.Size() != 7 {
		t.Errorf("merged count = %+v", merged)
	}
}

func TestAssocMergeDocsIsUnion(t *testing.T) {
	a := Docs("d1", "d2")
	b := Docs("d2", "d3")

	merged, err := a.Merge(b)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if got := merged.IDs(); !reflect.DeepEqual(got, []string{"d1", "d2", "d3"}) {
		t.Errorf("merged ids = %v", got)
	}
	if merged.Count() != 0 {
		t.Error("document set should report zero count")
	}
	// Inputs are untouched.
	if a.Size() != 2 || b.Size() != 2 {
		t.Errorf("merge mutated inputs: %d %d", a.Size(), b.Size())
	}
}

func TestAssocMergeMixedKindsFails(t *testing.T) {
	if _, err := Count(1).Merge(Docs("d1")); err == nil {
		t.Error("expected error merging count with doc set")
	}
	if _, err := (Assoc{}).Merge(Assoc{}); err == nil {
		t.Error("expected error merging untagged associations")
	}
}

func TestKindString(t *testing.T) {
	if KindCount.String() != "count" || KindDocs.String() != "docs" || Kind(9).String() != "kind(9)" {
		t.Error("unexpected Kind strings")
	}
}

func TestTableHelpers(t *testing.T) {
	tbl := Table{"b": Count(2), "a": Count(1), "c": Docs("x", "y", "z")}

	if got := tbl.Keys(); !reflect.DeepEqual(got, []NGram{"a", "b", "c"}) {
		t.Errorf("Keys() = %v", got)
	}
	sizes := tbl.Sizes()
	if sizes["c"] != 3 || sizes["b"] != 2 {
		t.Errorf("Sizes() = %v", sizes)
	}

	kept := Restrict(tbl, map[NGram]float64{"a": 0, "missing": 0})
	if len(kept) != 1 {
		t.Errorf("Restrict() = %v", kept)
	}
}
