// Package sqlite implements store.Store on SQLite via the pure-Go
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/corpus"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/internalerr"
	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/store"
)

type sqliteStore struct {
	db     *sql.DB
	closed atomic.Bool
}

// OpenSQLite opens (creating if needed) a database at path with WAL mode
// and foreign keys enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// PRAGMAs are per connection and SQLite serializes writers anyway.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection. Later calls fail with
// internalerr.ErrStoreUnavailable.
func (s *sqliteStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

func (s *sqliteStore) check() error {
	if s.closed.Load() {
		return internalerr.ErrStoreUnavailable
	}
	return nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS docs (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT UNIQUE NOT NULL,
	title TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS doc_refs (
	doc_id TEXT NOT NULL,
	pos INTEGER NOT NULL,
	ref_id TEXT NOT NULL,
	PRIMARY KEY(doc_id, pos),
	FOREIGN KEY(doc_id) REFERENCES docs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	mode TEXT NOT NULL,
	max_terms INTEGER NOT NULL,
	docs INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS run_terms (
	run_id TEXT NOT NULL,
	rank INTEGER NOT NULL,
	phrase TEXT NOT NULL,
	value REAL NOT NULL,
	scored INTEGER NOT NULL,
	docs INTEGER NOT NULL,
	PRIMARY KEY(run_id, rank),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertDocument inserts or replaces a document and its reference list.
func (s *sqliteStore) UpsertDocument(ctx context.Context, d corpus.Document) error {
	if err := s.check(); err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO docs (id, title) VALUES (?, ?)
ON CONFLICT(id) DO UPDATE SET title=excluded.title;
`
	if _, err := tx.ExecContext(ctx, stmt, d.ID, d.Title); err != nil {
		return err
	}
	if err := replaceRefs(ctx, tx, d.ID, d.References); err != nil {
		return err
	}
	return tx.Commit()
}

func replaceRefs(ctx context.Context, tx *sql.Tx, docID string, refs []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM doc_refs WHERE doc_id=?`, docID); err != nil {
		return err
	}
	if len(refs) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO doc_refs (doc_id, pos, ref_id) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, ref := range refs {
		if _, err := stmt.ExecContext(ctx, docID, i, ref); err != nil {
			return err
		}
	}
	return nil
}

// GetDocument returns a stored document by id.
func (s *sqliteStore) GetDocument(ctx context.Context, id string) (corpus.Document, error) {
	if err := s.check(); err != nil {
		return corpus.Document{}, err
	}

	d := corpus.Document{ID: id}
	err := s.db.QueryRowContext(ctx, `SELECT title FROM docs WHERE id = ?`, id).Scan(&d.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return corpus.Document{}, fmt.Errorf("document %q: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return corpus.Document{}, err
	}

	refs, err := s.loadRefs(ctx)
	if err != nil {
		return corpus.Document{}, err
	}
	d.References = refs[id]
	return d, nil
}

func (s *sqliteStore) loadRefs(ctx context.Context) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc_id, ref_id FROM doc_refs ORDER BY doc_id, pos`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := make(map[string][]string)
	for rows.Next() {
		var docID, ref string
		if err := rows.Scan(&docID, &ref); err != nil {
			return nil, err
		}
		refs[docID] = append(refs[docID], ref)
	}
	return refs, rows.Err()
}

// LoadCorpus returns every stored document in insertion order.
func (s *sqliteStore) LoadCorpus(ctx context.Context) (*corpus.Corpus, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	refs, err := s.loadRefs(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, title FROM docs ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	c := corpus.New()
	for rows.Next() {
		var d corpus.Document
		if err := rows.Scan(&d.ID, &d.Title); err != nil {
			return nil, err
		}
		d.References = refs[d.ID]
		if err := c.Add(d); err != nil {
			return nil, err
		}
	}
	return c, rows.Err()
}

// SaveRun writes a run and its terms in one transaction.
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	if err := s.check(); err != nil {
		return err
	}
	if r.ID == "" {
		return fmt.Errorf("run without id: %w", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, mode, max_terms, docs) VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UTC().Format(time.RFC3339Nano), r.Mode, r.MaxTerms, r.Docs,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", r.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_terms (run_id, rank, phrase, value, scored, docs) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, t := range r.Terms {
		if _, err := stmt.ExecContext(ctx, r.ID, t.Rank, t.Phrase, t.Value, t.Scored, t.Docs); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetRun returns a run with its terms ordered by rank.
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	if err := s.check(); err != nil {
		return store.Run{}, err
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, mode, max_terms, docs FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, fmt.Errorf("run %q: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return store.Run{}, err
	}
	r.Terms, err = s.loadTerms(ctx, id)
	return r, err
}

// LatestRun returns the most recently created run.
func (s *sqliteStore) LatestRun(ctx context.Context) (store.Run, error) {
	if err := s.check(); err != nil {
		return store.Run{}, err
	}
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM runs ORDER BY id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, fmt.Errorf("no runs: %w", internalerr.ErrNotFound)
	}
	if err != nil {
		return store.Run{}, err
	}
	return s.GetRun(ctx, id)
}

// ListRuns returns run headers, newest first. limit <= 0 means all.
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, mode, max_terms, docs FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (store.Run, error) {
	var (
		r       store.Run
		created string
	)
	if err := sc.Scan(&r.ID, &created, &r.Mode, &r.MaxTerms, &r.Docs); err != nil {
		return store.Run{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return store.Run{}, fmt.Errorf("run %s created_at: %w", r.ID, err)
	}
	r.CreatedAt = ts
	return r, nil
}

func (s *sqliteStore) loadTerms(ctx context.Context, runID string) ([]store.Term, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rank, phrase, value, scored, docs FROM run_terms WHERE run_id = ? ORDER BY rank`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terms []store.Term
	for rows.Next() {
		var t store.Term
		if err := rows.Scan(&t.Rank, &t.Phrase, &t.Value, &t.Scored, &t.Docs); err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}
