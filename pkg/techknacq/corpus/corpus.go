package corpus

import (
	"fmt"

	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/internalerr"
)

// Corpus is an ordered collection of documents keyed by id. Iteration follows
// insertion order so that every structure derived from it is built the same
// way on every run.
type Corpus struct {
	docs  []Document
	index map[string]int
}

// New creates an empty corpus.
func New() *Corpus {
	return &Corpus{index: make(map[string]int)}
}

// FromDocuments builds a corpus from docs, failing on the first invalid or
// duplicate document.
func FromDocuments(docs []Document) (*Corpus, error) {
	c := New()
	for _, d := range docs {
		if err := c.Add(d); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add appends a document. The corpus keeps its own copy of the reference
// slice.
func (c *Corpus) Add(d Document) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if _, ok := c.index[d.ID]; ok {
		return fmt.Errorf("document %q: %w", d.ID, internalerr.ErrDuplicate)
	}
	c.index[d.ID] = len(c.docs)
	c.docs = append(c.docs, copyDocument(d))
	return nil
}

// Get returns the document with the given id.
func (c *Corpus) Get(id string) (Document, bool) {
	i, ok := c.index[id]
	if !ok {
		return Document{}, false
	}
	return copyDocument(c.docs[i]), true
}

// Has reports whether id names a corpus document.
func (c *Corpus) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.docs)
}

// Docs returns the documents in insertion order.
func (c *Corpus) Docs() []Document {
	if c == nil {
		return nil
	}
	out := make([]Document, len(c.docs))
	for i, d := range c.docs {
		out[i] = copyDocument(d)
	}
	return out
}

// Each calls fn for every document in insertion order without copying.
// fn must not modify the document.
func (c *Corpus) Each(fn func(Document)) {
	if c == nil {
		return
	}
	for _, d := range c.docs {
		fn(d)
	}
}

// Titles returns the document titles in insertion order.
func (c *Corpus) Titles() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.docs))
	for i, d := range c.docs {
		out[i] = d.Title
	}
	return out
}

// HasReferences reports whether any document lists at least one reference.
func (c *Corpus) HasReferences() bool {
	if c == nil {
		return false
	}
	for _, d := range c.docs {
		if len(d.UniqueReferences()) > 0 {
			return true
		}
	}
	return false
}
