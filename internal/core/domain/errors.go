package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a lookup of an unknown date.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateDate indicates a rollup was attempted for a date that
	// is already archived. The engine refuses rather than silently
	// overwriting, preserving immutability.
	ErrDuplicateDate = errors.New("date already archived")

	// ErrOutOfOrder indicates an append for a date earlier than the
	// current chain head. The chain visits dates in ascending order only.
	ErrOutOfOrder = errors.New("date precedes chain head")

	// ErrInvalidDate indicates a date string that is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrMalformedRecord indicates a persisted document or staging line
	// failed to parse. Fatal for that record, never skipped or guessed
	// at: dropping data silently would break the lossless guarantee.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrIntegrity indicates a hash mismatch or inconsistent chain
	// pointers detected by verification. Never auto-repaired.
	ErrIntegrity = errors.New("chain integrity violation")

	// ErrImmutableField indicates an amendment attempted to change a
	// document's content, hash or prev_hash. Only link fields may be
	// amended after creation.
	ErrImmutableField = errors.New("immutable field changed")
)
