// Package rank orders candidate phrases for output.
package rank

import (
	"sort"

	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/ngram"
)

// Entry is one ranked phrase.
type Entry struct {
	Phrase ngram.NGram
	Value  float64
	// Scored is false for entries ranked by frequency.
	Scored bool
}

// Sort orders entries by descending value. Equal values fall back to
// ascending byte order of the phrase so output never depends on map order.
func Sort(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Phrase < entries[j].Phrase
	})
}

// Rank sorts values and truncates to limit entries (limit <= 0 keeps all).
// When keep is non-nil, only phrases present in keep are emitted.
func Rank[V any](values map[ngram.NGram]float64, keep map[ngram.NGram]V, scored bool, limit int) []Entry {
	entries := make([]Entry, 0, len(values))
	for g, v := range values {
		if keep != nil {
			if _, ok := keep[g]; !ok {
				continue
			}
		}
		entries = append(entries, Entry{Phrase: g, Value: v, Scored: scored})
	}
	Sort(entries)
	return Truncate(entries, limit)
}

// Backfill appends entries from fallback that are not already in ranked,
// in fallback order, until ranked holds limit entries.
func Backfill(ranked, fallback []Entry, limit int) []Entry {
	if limit > 0 && len(ranked) >= limit {
		return ranked
	}
	seen := make(map[ngram.NGram]struct{}, len(ranked))
	for _, e := range ranked {
		seen[e.Phrase] = struct{}{}
	}
	out := append([]Entry(nil), ranked...)
	for _, e := range fallback {
		if limit > 0 && len(out) >= limit {
			break
		}
		if _, ok := seen[e.Phrase]; ok {
			continue
		}
		seen[e.Phrase] = struct{}{}
		out = append(out, e)
	}
	return out
}

// Truncate keeps the first limit entries (limit <= 0 keeps all).
func Truncate(entries []Entry, limit int) []Entry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
