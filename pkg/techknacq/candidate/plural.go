package candidate

import (
	"fmt"

	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/ngram"
)

// pluralSuffixes are the regular plural endings, in the order a plural's
// singular is looked up.
var pluralSuffixes = []string{"s", "es"}

// MergePlurals folds every n-gram whose last token is another key's last
// token plus "s" or "es" into that singular: counts add, document sets
// union. Plural entries are removed.
//
// Each key has at most one parent, the singular found first in
// pluralSuffixes order, so every input value lands in exactly one output
// entry. A chain such as "ga", "gas", "gases" folds into "ga" whole: "gases"
// is a first-level plural of "gas", which is one of "ga". Forms that are
// only reachable by stacking suffixes on a missing key ("classeses" with no
// "classes") are left alone.
func MergePlurals(t ngram.Table) (ngram.Table, error) {
	parent := make(map[ngram.NGram]ngram.NGram)
	for g := range t {
		if s, ok := singularOf(t, g); ok {
			parent[g] = s
		}
	}

	root := func(g ngram.NGram) ngram.NGram {
		for {
			p, ok := parent[g]
			if !ok {
				return g
			}
			g = p
		}
	}

	out := make(ngram.Table, len(t)-len(parent))
	for _, g := range t.Keys() {
		r := root(g)
		acc, ok := out[r]
		if !ok {
			out[r] = t[g]
			continue
		}
		merged, err := acc.Merge(t[g])
		if err != nil {
			return nil, fmt.Errorf("fold %q into %q: %w", g, r, err)
		}
		out[r] = merged
	}
	return out, nil
}

// singularOf returns the key g is a first-level plural of.
func singularOf(t ngram.Table, g ngram.NGram) (ngram.NGram, bool) {
	for _, suffix := range pluralSuffixes {
		s, ok := g.TrimLastSuffix(suffix)
		if !ok {
			continue
		}
		if _, ok := t[s]; ok {
			return s, true
		}
	}
	return "", false
}
