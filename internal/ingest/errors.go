// Package ingest holds the error kinds shared by every stage of an ingestion run.
package ingest

import "errors"

// Per-file errors. The orchestrator reports these and skips the entity.
var (
	ErrMissingSourceFile = errors.New("source file not found")
	ErrMalformedSource   = errors.New("malformed source")
)

// Fatal errors. Any of these aborts the run.
var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrConstraintViolation  = errors.New("store constraint violation")
	ErrStoreIO              = errors.New("store i/o error")
)

// IsSkippable reports whether err only costs the run one entity.
func IsSkippable(err error) bool {
	return errors.Is(err, ErrMissingSourceFile) || errors.Is(err, ErrMalformedSource)
}
