// Package store persists corpora and extraction runs.
package store

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/corpus"
)

// Store is the persistence interface shared by the SQLite and in-memory
// backends. Lookups that miss return internalerr.ErrNotFound; calls after
// Close return internalerr.ErrStoreUnavailable.
type Store interface {
	Close() error

	// Documents
	UpsertDocument(ctx context.Context, d corpus.Document) error
	GetDocument(ctx context.Context, id string) (corpus.Document, error)
	LoadCorpus(ctx context.Context) (*corpus.Corpus, error)

	// Runs
	SaveRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, error)
	LatestRun(ctx context.Context) (Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}

// Run is one recorded extraction. ListRuns leaves Terms empty.
type Run struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Mode      string    `json:"mode"`
	MaxTerms  int       `json:"max_terms"`
	Docs      int       `json:"docs"`
	Terms     []Term    `json:"terms,omitempty"`
}

// Term is one ranked phrase of a run. Rank starts at 1.
type Term struct {
	Rank   int     `json:"rank"`
	Phrase string  `json:"phrase"`
	Value  float64 `json:"value"`
	Scored bool    `json:"scored"`
	Docs   int     `json:"docs"`
}

var (
	idMu      sync.Mutex
	idEntropy = ulid.Monotonic(rand.Reader, 0)
)

// NewRunID returns a ULID; IDs from one process sort by creation time.
func NewRunID() string {
	idMu.Lock()
	defer idMu.Unlock()
	return ulid.MustNew(ulid.Now(), idEntropy).String()
}

// NewRun stamps a run with a fresh ID and the current time.
func NewRun(mode string, maxTerms, docs int, terms []Term) Run {
	return Run{
		ID:        NewRunID(),
		CreatedAt: time.Now().UTC(),
		Mode:      mode,
		MaxTerms:  maxTerms,
		Docs:      docs,
		Terms:     terms,
	}
}
