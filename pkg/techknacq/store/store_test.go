package store

import (
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestNewRunIDMonotonic(t *testing.T) {
	prev := NewRunID()
	for i := 0; i < 100; i++ {
		next := NewRunID()
		if next <= prev {
			t.Fatalf("run ids not increasing: %s then %s", prev, next)
		}
		if _, err := ulid.ParseStrict(next); err != nil {
			t.Fatalf("invalid ulid %q: %v", next, err)
		}
		prev = next
	}
}

func TestNewRun(t *testing.T) {
	r := NewRun("density", 10, 3, []Term{{Rank: 1, Phrase: "markov models"}})
	if r.ID == "" || r.CreatedAt.IsZero() {
		t.Fatalf("run not stamped: %+v", r)
	}
	if r.Mode != "density" || r.MaxTerms != 10 || r.Docs != 3 || len(r.Terms) != 1 {
		t.Fatalf("unexpected run: %+v", r)
	}
}
