package subsume

import (
	"errors"
	"testing"

	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/internalerr"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/ngram"
)

func TestApplyDropsComparableShorterPhrases(t *testing.T) {
	values := map[ngram.NGram]float64{
		"hidden markov models": 10,
		"hidden markov":        12, // 12 <= 13, dropped
		"markov models":        20, // 20 > 13, kept
		"markov":               30,
		"speech":               4,
	}

	out := Apply(values, DefaultRatio)

	if _, ok := out["hidden markov"]; ok {
		t.Error("hidden markov should be subsumed")
	}
	for _, g := range []ngram.NGram{"hidden markov models", "markov models", "markov", "speech"} {
		if _, ok := out[g]; !ok {
			t.Errorf("%q should survive", g)
		}
	}
	if len(values) != 5 {
		t.Error("Apply mutated its input")
	}
}

func TestApplyDefersRemoval(t *testing.T) {
	// "b c" is dropped by "a b c" but still subsumes "c" in the same pass.
	values := map[ngram.NGram]float64{
		"a b c": 5,
		"b c":   5,
		"c":     5,
	}
	out := Apply(values, DefaultRatio)
	if len(out) != 1 {
		t.Fatalf("expected only a b c, got %v", out)
	}
	if _, ok := out["a b c"]; !ok {
		t.Error("a b c should survive")
	}
}

func TestApplyBoundaryIsInclusive(t *testing.T) {
	values := map[ngram.NGram]float64{
		"neural network": 10,
		"neural":         13,
		"network":        13.0001,
	}
	out := Apply(values, DefaultRatio)
	if _, ok := out["neural"]; ok {
		t.Error("value equal to ratio*longer should be dropped")
	}
	if _, ok := out["network"]; !ok {
		t.Error("value above ratio*longer should survive")
	}
}

func TestApplyNegativeScores(t *testing.T) {
	values := map[ngram.NGram]float64{
		"speech recognition": -1,
		"speech":             -5, // -5 <= -1.3
		"recognition":        0,  // 0 > -1.3
	}
	out := Apply(values, DefaultRatio)
	if _, ok := out["speech"]; ok {
		t.Error("speech should be subsumed")
	}
	if _, ok := out["recognition"]; !ok {
		t.Error("recognition should survive")
	}
}

func TestApplyMonotonicity(t *testing.T) {
	values := map[ngram.NGram]float64{
		"a":       3,
		"b":       2,
		"c":       9,
		"a b":     2,
		"b c":     1,
		"a b c":   1,
		"d":       1,
		"c d":     7,
		"b c d":   6,
		"a b c d": 5,
	}
	out := Apply(values, DefaultRatio)

	for g, v := range out {
		if g.Len() < 2 {
			continue
		}
		p, _ := g.Prefix()
		s, _ := g.Suffix()
		pv, pok := out[p]
		sv, sok := out[s]
		if pok && sok && pv <= DefaultRatio*v && sv <= DefaultRatio*v {
			t.Errorf("%q still has both comparable prefix and suffix", g)
		}
	}
}

func TestApplyEmpty(t *testing.T) {
	if out := Apply(map[ngram.NGram]float64{}, DefaultRatio); len(out) != 0 {
		t.Errorf("expected empty result, got %v", out)
	}
}

func TestValidateRatio(t *testing.T) {
	if err := ValidateRatio(DefaultRatio); err != nil {
		t.Errorf("default ratio invalid: %v", err)
	}
	for _, r := range []float64{0, -1} {
		if err := ValidateRatio(r); !errors.Is(err, internalerr.ErrInvalidConfig) {
			t.Errorf("ValidateRatio(%v) = %v", r, err)
		}
	}
}
