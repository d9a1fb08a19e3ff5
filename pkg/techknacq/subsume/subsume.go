// Package subsume drops shorter phrases that a containing phrase already
// accounts for.
package subsume

import (
	"fmt"

	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/internalerr"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/ngram"
)

// DefaultRatio is the subsumption threshold: a shorter phrase worth at most
// 1.3 times its container is dropped.
const DefaultRatio = 1.3

// ValidateRatio checks a subsumption ratio.
func ValidateRatio(ratio float64) error {
	if !(ratio > 0) {
		return fmt.Errorf("subsume ratio %v must be positive: %w", ratio, internalerr.ErrInvalidConfig)
	}
	return nil
}

// Apply compares every phrase longer than one token with its prefix and
// suffix (the phrase minus its last or first token). A shorter phrase
// present in values whose value is at most ratio times the longer phrase's
// value is removed. Removals are collected first and applied at the end, so
// no removal affects another comparison. values is not modified.
//
// The same function serves frequency values and density scores.
func Apply(values map[ngram.NGram]float64, ratio float64) map[ngram.NGram]float64 {
	drop := Subsumed(values, ratio)
	out := make(map[ngram.NGram]float64, len(values)-len(drop))
	for g, v := range values {
		if _, ok := drop[g]; ok {
			continue
		}
		out[g] = v
	}
	return out
}

// Subsumed returns the phrases Apply would remove.
func Subsumed(values map[ngram.NGram]float64, ratio float64) map[ngram.NGram]struct{} {
	drop := make(map[ngram.NGram]struct{})
	for g, v := range values {
		if g.Len() < 2 {
			continue
		}
		limit := ratio * v
		if p, ok := g.Prefix(); ok {
			if pv, found := values[p]; found && pv <= limit {
				drop[p] = struct{}{}
			}
		}
		if s, ok := g.Suffix(); ok {
			if sv, found := values[s]; found && sv <= limit {
				drop[s] = struct{}{}
			}
		}
	}
	return drop
}
