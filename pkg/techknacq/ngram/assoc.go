package ngram

import (
	"fmt"
	"sort"
)

// Kind tags the shape of the data associated with an n-gram.
type Kind uint8

const (
	// KindCount is a scalar occurrence count. Counts merge by addition.
	KindCount Kind = iota + 1
	// KindDocs is the set of document ids containing the phrase. Sets merge
	// by union.
	KindDocs
)

func (k Kind) String() string {
	switch k {
	case KindCount:
		return "count"
	case KindDocs:
		return "docs"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Assoc is the tagged association of an n-gram: exactly one of a count or a
// document-id set, selected by Kind. Values are immutable once built; Merge
// returns a new value.
type Assoc struct {
	kind  Kind
	count int64
	docs  map[string]struct{}
}

// Count makes a count association.
func Count(n int64) Assoc {
	return Assoc{kind: KindCount, count: n}
}

// Docs makes a document-set association holding ids.
func Docs(ids ...string) Assoc {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return Assoc{kind: KindDocs, docs: set}
}

// Kind returns the association tag.
func (a Assoc) Kind() Kind {
	return a.kind
}

// Count returns the scalar count; zero for a document set.
func (a Assoc) Count() int64 {
	if a.kind != KindCount {
		return 0
	}
	return a.count
}

// Size is the number of documents for a set and the count itself for a
// count. It is the value frequency subsumption and ranking compare.
func (a Assoc) Size() int64 {
	if a.kind == KindDocs {
		return int64(len(a.docs))
	}
	return a.count
}

// Has reports whether the document set contains id.
func (a Assoc) Has(id string) bool {
	_, ok := a.docs[id]
	return ok
}

// IDs returns the document ids in sorted order; nil for a count.
func (a Assoc) IDs() []string {
	if a.kind != KindDocs {
		return nil
	}
	ids := make([]string, 0, len(a.docs))
	for id := range a.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Merge combines two associations of the same kind: counts add, sets union.
// Mixing kinds is a programming error and is reported, never coerced.
func (a Assoc) Merge(b Assoc) (Assoc, error) {
	if a.kind != b.kind {
		return Assoc{}, fmt.Errorf("merge %s with %s", a.kind, b.kind)
	}
	switch a.kind {
	case KindCount:
		return Count(a.count + b.count), nil
	case KindDocs:
		set := make(map[string]struct{}, len(a.docs)+len(b.docs))
		for id := range a.docs {
			set[id] = struct{}{}
		}
		for id := range b.docs {
			set[id] = struct{}{}
		}
		return Assoc{kind: KindDocs, docs: set}, nil
	default:
		return Assoc{}, fmt.Errorf("merge %s", a.kind)
	}
}
