package ingest

import "errors"

// The orchestrator classifies every failure into one of four kinds so
// callers can react with errors.Is/errors.As instead of string matching.
var (
	// ErrMalformedInput marks a failure caused by the PGN source itself:
	// unreadable bytes, a game the parser could not tokenize at all.
	ErrMalformedInput = errors.New("ingest: malformed input")

	// ErrDomainViolation marks a failure in chess-core semantics applied
	// to otherwise well-formed input: an unresolvable SAN move, an
	// invalid FEN produced from an inconsistent position.
	ErrDomainViolation = errors.New("ingest: domain violation")

	// ErrExternalFailure marks a failure of a dependency the orchestrator
	// does not control: a store call or an embedder call that errored.
	ErrExternalFailure = errors.New("ingest: external failure")

	// ErrUniquenessConflict marks a store rejection of a write that
	// collided with an existing row under a uniqueness constraint the
	// store enforces outside the upsert path (e.g. a racing insert).
	ErrUniquenessConflict = errors.New("ingest: uniqueness conflict")
)
