package models

import "errors"

var (
	// ErrNotFound is returned when an entry, reservation or waitlist row
	// does not exist for the given id.
	ErrNotFound = errors.New("not_found")

	// ErrNoTablesAvailable is returned when table auto-assignment finds
	// every table already reserved for the requested slot.
	ErrNoTablesAvailable = errors.New("no_tables_available")
)

// ValidationError names the required field a request is missing. Its wire
// form is "<field>_required".
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + "_required"
}
