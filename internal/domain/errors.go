package domain

import "errors"

var (
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrSessionNotFound signals a missing session corpus.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidDocument signals a structurally malformed document.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrOracleUnavailable signals an oracle transport failure.
	ErrOracleUnavailable = errors.New("oracle unavailable")
	// ErrOracleMalformed signals unusable oracle output.
	ErrOracleMalformed = errors.New("oracle returned malformed output")
	// ErrOracleBudgetExhausted signals the oracle token budget is spent.
	ErrOracleBudgetExhausted = errors.New("oracle token budget exhausted")
	// ErrNoReferenceRange signals a parameter with no known lab range.
	ErrNoReferenceRange = errors.New("no reference range")
)
