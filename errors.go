package medkb

import "github.com/kaira-health/medkb/internal/domain"

// Sentinel errors exposed for errors.Is checks on Engine results.
var (
	// ErrInvalidDocument marks a document rejected before ingestion.
	ErrInvalidDocument = domain.ErrInvalidDocument
	// ErrDocumentNotFound marks a lookup for an unknown document ID.
	ErrDocumentNotFound = domain.ErrDocumentNotFound
	// ErrOracleUnavailable marks a failed oracle call.
	ErrOracleUnavailable = domain.ErrOracleUnavailable
)
