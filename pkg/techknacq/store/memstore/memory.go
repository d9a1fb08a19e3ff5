// Package memstore is an in-memory store.Store for tests and one-shot runs.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/corpus"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/internalerr"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/store"
)

// Store keeps documents and runs in maps guarded by one RWMutex.
type Store struct {
	mu     sync.RWMutex
	closed bool
	order  []string
	docs   map[string]corpus.Document
	runs   map[string]store.Run
}

// New creates an empty store.
func New() *Store {
	return &Store{
		docs: make(map[string]corpus.Document),
		runs: make(map[string]store.Run),
	}
}

// Close implements store.Store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// UpsertDocument inserts or replaces a document, keeping first-insert order.
func (s *Store) UpsertDocument(ctx context.Context, d corpus.Document) error {
	if err := d.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return internalerr.ErrStoreUnavailable
	}

	if _, ok := s.docs[d.ID]; !ok {
		s.order = append(s.order, d.ID)
	}
	s.docs[d.ID] = copyDoc(d)
	return nil
}

// GetDocument returns a document by id.
func (s *Store) GetDocument(ctx context.Context, id string) (corpus.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return corpus.Document{}, internalerr.ErrStoreUnavailable
	}

	d, ok := s.docs[id]
	if !ok {
		return corpus.Document{}, fmt.Errorf("document %q: %w", id, internalerr.ErrNotFound)
	}
	return copyDoc(d), nil
}

// LoadCorpus builds a corpus from every stored document.
func (s *Store) LoadCorpus(ctx context.Context) (*corpus.Corpus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, internalerr.ErrStoreUnavailable
	}

	c := corpus.New()
	for _, id := range s.order {
		if err := c.Add(s.docs[id]); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// SaveRun records a run. Run ids must be unique.
func (s *Store) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("run without id: %w", internalerr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return internalerr.ErrStoreUnavailable
	}
	if _, ok := s.runs[r.ID]; ok {
		return fmt.Errorf("run %s: %w", r.ID, internalerr.ErrDuplicate)
	}

	r.Terms = append([]store.Term(nil), r.Terms...)
	s.runs[r.ID] = r
	return nil
}

// GetRun returns a run by id.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return store.Run{}, internalerr.ErrStoreUnavailable
	}

	r, ok := s.runs[id]
	if !ok {
		return store.Run{}, fmt.Errorf("run %q: %w", id, internalerr.ErrNotFound)
	}
	r.Terms = append([]store.Term(nil), r.Terms...)
	return r, nil
}

// LatestRun returns the run with the greatest id.
func (s *Store) LatestRun(ctx context.Context) (store.Run, error) {
	runs, err := s.ListRuns(ctx, 1)
	if err != nil {
		return store.Run{}, err
	}
	if len(runs) == 0 {
		return store.Run{}, fmt.Errorf("no runs: %w", internalerr.ErrNotFound)
	}
	return s.GetRun(ctx, runs[0].ID)
}

// ListRuns returns run headers, newest first. limit <= 0 means all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, internalerr.ErrStoreUnavailable
	}

	runs := make([]store.Run, 0, len(s.runs))
	for _, r := range s.runs {
		r.Terms = nil
		runs = append(runs, r)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].ID > runs[j].ID })
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func copyDoc(d corpus.Document) corpus.Document {
	d.References = append([]string(nil), d.References...)
	return d
}

var _ store.Store = (*Store)(nil)
