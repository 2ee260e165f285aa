package driven

import "time"

// Clock supplies "now" and "today" so that date handling is injectable
// in tests.
type Clock interface {
	// Now returns the current instant in UTC.
	Now() time.Time

	// Today returns the current UTC date as YYYY-MM-DD.
	Today() string
}
