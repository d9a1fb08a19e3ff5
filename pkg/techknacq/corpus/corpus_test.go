package corpus

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/internalerr"
)

func TestCorpusPreservesInsertionOrder(t *testing.T) {
	c := New()
	for _, id := range []string{"p3", "p1", "p2"} {
		if err := c.Add(Document{ID: id, Title: "title " + id}); err != nil {
			t.Fatalf("Add(%s): %v", id, err)
		}
	}

	docs := c.Docs()
	want := []string{"p3", "p1", "p2"}
	for i, d := range docs {
		if d.ID != want[i] {
			t.Errorf("doc %d: got %s, want %s", i, d.ID, want[i])
		}
	}
	if got := c.Titles()[0]; got != "title p3" {
		t.Errorf("Titles()[0] = %q", got)
	}
}

func TestCorpusRejectsDuplicateAndEmptyIDs(t *testing.T) {
	c := New()
	if err := c.Add(Document{ID: "a"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Add(Document{ID: "a"}); !errors.Is(err, internalerr.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
	if err := c.Add(Document{ID: "  "}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 document, got %d", c.Len())
	}
}

func TestCorpusCopiesReferences(t *testing.T) {
	refs := []string{"x", "y"}
	c := New()
	if err := c.Add(Document{ID: "a", References: refs}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	refs[0] = "mutated"

	d, ok := c.Get("a")
	if !ok {
		t.Fatal("document a not found")
	}
	if d.References[0] != "x" {
		t.Errorf("corpus shares caller slice: %v", d.References)
	}
}

func TestUniqueReferences(t *testing.T) {
	d := Document{ID: "a", References: []string{"b", "", "c", "b", " c "}}
	got := d.UniqueReferences()
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("UniqueReferences() = %v, want [b c]", got)
	}
}

func TestHasReferences(t *testing.T) {
	c, err := FromDocuments([]Document{{ID: "a"}, {ID: "b", References: []string{""}}})
	if err != nil {
		t.Fatalf("FromDocuments: %v", err)
	}
	if c.HasReferences() {
		t.Error("corpus with only empty references should report none")
	}
	if err := c.Add(Document{ID: "c", References: []string{"a"}}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !c.HasReferences() {
		t.Error("expected references after adding c")
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hidden Markov Models", "Hidden Markov Models"},
		{"  Speech \n  Recognition ", "Speech Recognition"},
		{"<i>k</i>-means Clustering", "k-means Clustering"},
		{"Q&amp;A Systems", "Q&A Systems"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanTitle(tt.in); got != tt.want {
			t.Errorf("CleanTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReadJSONLSkipsBadLines(t *testing.T) {
	input := strings.Join([]string{
		`{"id":"P1","title":"Markov Chains","references":["P2"]}`,
		`not json`,
		``,
		`{"id":"","title":"no id"}`,
		`{"id":"P2","title":"Speech <b>Synthesis</b>"}`,
		`{"id":"P1","title":"duplicate"}`,
	}, "\n")

	c, err := ReadJSONL(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("ReadJSONL: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 documents, got %d", c.Len())
	}
	d, _ := c.Get("P2")
	if d.Title != "Speech Synthesis" {
		t.Errorf("title not cleaned: %q", d.Title)
	}
}

func TestReadJSONLEmpty(t *testing.T) {
	if _, err := ReadJSONL(strings.NewReader("\n\n"), nil); err == nil {
		t.Error("expected error for corpus without documents")
	}
}

func TestLoadJSONLRoundTrip(t *testing.T) {
	c, err := FromDocuments([]Document{
		{ID: "a", Title: "Statistical Machine Translation", References: []string{"b"}},
		{ID: "b", Title: "Phrase-Based Translation"},
	})
	if err != nil {
		t.Fatalf("FromDocuments: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteJSONL(&buf, c); err != nil {
		t.Fatalf("WriteJSONL: %v", err)
	}
	path := filepath.Join(t.TempDir(), "corpus.jsonl")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	loaded, err := LoadJSONL(path)
	if err != nil {
		t.Fatalf("LoadJSONL: %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("expected 2 documents, got %d", loaded.Len())
	}
	d, ok := loaded.Get("a")
	if !ok || len(d.References) != 1 || d.References[0] != "b" {
		t.Errorf("unexpected document a: %+v", d)
	}
}

func TestLoadJSONLMissingFile(t *testing.T) {
	if _, err := LoadJSONL(filepath.Join(t.TempDir(), "missing.jsonl")); err == nil {
		t.Error("expected error for missing file")
	}
}
