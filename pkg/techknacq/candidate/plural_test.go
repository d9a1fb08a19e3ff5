package candidate

import (
	"reflect"
	"testing"

	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/ngram"
)

func TestMergePluralsCounts(t *testing.T) {
	in := ngram.Table{
		"markov model":  ngram.Count(2),
		"markov models": ngram.Count(3),
		"process":       ngram.Count(1),
		"processes":     ngram.Count(4),
		"speech":        ngram.Count(5),
	}

	out, err := MergePlurals(in)
	if err != nil {
		t.Fatalf("MergePlurals: %v", err)
	}

	if got := out["markov model"].Count(); got != 5 {
		t.Errorf("markov model = %d, want 5", got)
	}
	if got := out["process"].Count(); got != 5 {
		t.Errorf("process = %d, want 5", got)
	}
	if got := out["speech"].Count(); got != 5 {
		t.Errorf("speech = %d, want 5", got)
	}
	for _, p := range []ngram.NGram{"markov models", "processes"} {
		if _, ok := out[p]; ok {
			t.Errorf("plural %q survived", p)
		}
	}
	if in["markov model"].Count() != 2 {
		t.Error("input table was mutated")
	}
}

func TestMergePluralsDocSetsUnion(t *testing.T) {
	in := ngram.Table{
		"neural network":  ngram.Docs("d1", "d2"),
		"neural networks": ngram.Docs("d2", "d3"),
	}

	out, err := MergePlurals(in)
	if err != nil {
		t.Fatalf("MergePlurals: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 entry, got %v", out.Keys())
	}
	if got := out["neural network"].IDs(); !reflect.DeepEqual(got, []string{"d1", "d2", "d3"}) {
		t.Errorf("merged ids = %v", got)
	}
}

func TestMergePluralsBothSuffixes(t *testing.T) {
	in := ngram.Table{
		"bu":    ngram.Count(1),
		"bus":   ngram.Count(2),
		"buses": ngram.Count(4),
	}

	out, err := MergePlurals(in)
	if err != nil {
		t.Fatalf("MergePlurals: %v", err)
	}
	// "buses" folds into "bus", which folds into "bu".
	if len(out) != 1 {
		t.Fatalf("expected only bu, got %v", out.Keys())
	}
	if got := out["bu"].Count(); got != 7 {
		t.Errorf("bu = %d, want 7", got)
	}
}

func totalCount(t ngram.Table) int64 {
	var n int64
	for _, a := range t {
		n += a.Count()
	}
	return n
}

func TestMergePluralsConservesChains(t *testing.T) {
	tests := []struct {
		name string
		in   ngram.Table
		want map[ngram.NGram]int64
	}{
		{
			name: "s then es",
			in:   ngram.Table{"ga": ngram.Count(1), "gas": ngram.Count(2), "gases": ngram.Count(5)},
			want: map[ngram.NGram]int64{"ga": 8},
		},
		{
			name: "plural reachable from two singulars",
			in:   ngram.Table{"bus": ngram.Count(1), "buse": ngram.Count(2), "buses": ngram.Count(4)},
			want: map[ngram.NGram]int64{"bus": 1, "buse": 6},
		},
		{
			name: "multi-token chain",
			in: ngram.Table{
				"gas law":   ngram.Count(1),
				"gas laws":  ngram.Count(1),
				"gas lawss": ngram.Count(3),
				"speech":    ngram.Count(2),
			},
			want: map[ngram.NGram]int64{"gas law": 5, "speech": 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := MergePlurals(tt.in)
			if err != nil {
				t.Fatalf("MergePlurals: %v", err)
			}
			if totalCount(out) != totalCount(tt.in) {
				t.Errorf("total = %d, want %d", totalCount(out), totalCount(tt.in))
			}
			if len(out) != len(tt.want) {
				t.Fatalf("keys = %v, want %v", out.Keys(), tt.want)
			}
			for g, n := range tt.want {
				if got := out[g].Count(); got != n {
					t.Errorf("%q = %d, want %d", g, got, n)
				}
			}
		})
	}
}

func TestMergePluralsChainDocSets(t *testing.T) {
	in := ngram.Table{
		"ga":    ngram.Docs("d1"),
		"gas":   ngram.Docs("d2"),
		"gases": ngram.Docs("d2", "d3"),
	}
	out, err := MergePlurals(in)
	if err != nil {
		t.Fatalf("MergePlurals: %v", err)
	}
	if got := out["ga"].IDs(); !reflect.DeepEqual(got, []string{"d1", "d2", "d3"}) {
		t.Errorf("ga ids = %v, want [d1 d2 d3]", got)
	}
	if len(out) != 1 {
		t.Errorf("keys = %v", out.Keys())
	}
}

func TestMergePluralsNotIterated(t *testing.T) {
	in := ngram.Table{
		"class":     ngram.Count(1),
		"classeses": ngram.Count(1),
	}
	out, err := MergePlurals(in)
	if err != nil {
		t.Fatalf("MergePlurals: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("doubly inflected form should not merge, got %v", out.Keys())
	}
}

func TestMergePluralsOnlyLastToken(t *testing.T) {
	in := ngram.Table{
		"model training":  ngram.Count(1),
		"models training": ngram.Count(1),
	}
	out, err := MergePlurals(in)
	if err != nil {
		t.Fatalf("MergePlurals: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("only the last token is inflected, got %v", out.Keys())
	}
}

func TestMergePluralsMixedKinds(t *testing.T) {
	in := ngram.Table{
		"tree":  ngram.Count(1),
		"trees": ngram.Docs("d1"),
	}
	if _, err := MergePlurals(in); err == nil {
		t.Error("expected error for mixed association kinds")
	}
}
