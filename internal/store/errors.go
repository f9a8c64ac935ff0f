package store

import "errors"

var (
	// ErrValidation indicates caller-supplied input violated an invariant.
	// Never retried automatically; the caller must fix the input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates a referenced id is absent in the remote store.
	ErrNotFound = errors.New("record not found")
	// ErrVersionConflict indicates a note update lost a check-and-set race;
	// the caller should re-read the note and retry.
	ErrVersionConflict = errors.New("note version conflict")
	// ErrSynthesisFailed indicates the synthesis workflow failed after
	// validation; no partial result is cached or persisted.
	ErrSynthesisFailed = errors.New("synthesis failed")
	// ErrSynthesisInProgress rejects a repeat trigger while a folder's
	// busy flag is set.
	ErrSynthesisInProgress = errors.New("synthesis already in progress")
)
