package wellrecord

import "errors"

// Sentinel errors for date-range algebra and record handling. All are
// synchronous validation failures — this package performs no I/O and
// never retries.
var (
	// ErrInvalidRange indicates a date range whose start falls after its end.
	// The range is never silently corrected (e.g. by swapping the dates).
	ErrInvalidRange = errors.New("start date must not be later than end date")

	// ErrFormat indicates a date-range string that does not match the
	// required "YYYY-MM-DD::YYYY-MM-DD" serialization format.
	ErrFormat = errors.New("date range must be in the format YYYY-MM-DD::YYYY-MM-DD")

	// ErrTypeMismatch indicates a value that should have been a serialized
	// date range but was something else. It surfaces where untyped data
	// enters the system, such as decoding persisted category documents.
	ErrTypeMismatch = errors.New("value is not a date range")

	// ErrNotFound indicates no record exists for the requested API number.
	ErrNotFound = errors.New("well record not found")
)
