// Package internalerr holds the sentinel errors shared across techknacq packages.
package internalerr

import "errors"

var (
	// ErrNotFound is returned by lookups that miss (documents, runs).
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks malformed caller input such as an empty document id.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicate marks a second document with an id already in the corpus.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrStoreUnavailable is returned when a store is used after Close.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrInvalidConfig covers bad policy knobs and missing collaborators
	// (lexicon, tokenizer). Extraction cannot proceed past it.
	ErrInvalidConfig = errors.New("invalid configuration")
)
