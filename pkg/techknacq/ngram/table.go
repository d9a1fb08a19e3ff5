package ngram

import "sort"

// Table maps n-grams to their association. Stages treat a Table as
// immutable: they read one and return a new one.
type Table map[NGram]Assoc

// Keys returns the n-grams in lexicographic order.
func (t Table) Keys() []NGram {
	keys := make([]NGram, 0, len(t))
	for g := range t {
		keys = append(keys, g)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Sizes projects the table onto Assoc.Size, the shape the subsumption filter
// and ranker consume.
func (t Table) Sizes() map[NGram]float64 {
	out := make(map[NGram]float64, len(t))
	for g, a := range t {
		out[g] = float64(a.Size())
	}
	return out
}

// Restrict returns the entries of t whose n-gram is a key of keep.
func Restrict[V any](t Table, keep map[NGram]V) Table {
	out := make(Table, len(keep))
	for g := range keep {
		if a, ok := t[g]; ok {
			out[g] = a
		}
	}
	return out
}
