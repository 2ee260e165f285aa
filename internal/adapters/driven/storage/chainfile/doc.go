// Package chainfile is the file-backed implementation of the chain
// archive and the daily staging log.
//
// Layout under the store root:
//
//	archive/<YYYY-MM-DD>.json   one immutable document per day
//	staging/<YYYY-MM-DD>.jsonl  one staged entry per line
//
// Document amendments (backward link updates) are written to a
// temporary file and renamed into place, so a crash mid-write never
// leaves a half-written document. Staged entries are flushed on every
// append so each record is independently recoverable.
package chainfile
