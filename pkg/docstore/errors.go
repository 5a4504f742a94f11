package docstore

import "errors"

// Errors returned by Collection implementations. Drivers wrap their native
// errors with these so callers can classify failures with errors.Is.
var (
	// ErrNotFound indicates the document id does not exist.
	ErrNotFound = errors.New("docstore: document not found")

	// ErrUnavailable indicates a transport or connectivity failure.
	ErrUnavailable = errors.New("docstore: store unavailable")

	// ErrInvalidField indicates a field name or value the driver cannot store.
	ErrInvalidField = errors.New("docstore: invalid field")
)
