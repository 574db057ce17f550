package doctors

import "errors"

var (
	// ErrDoctorNotFound is returned when a doctor id is not in the directory.
	ErrDoctorNotFound = errors.New("doctor not found")

	// ErrFetchInFlight is returned when a fetch is requested while one is
	// already loading. Callers should retry after the current fetch settles.
	ErrFetchInFlight = errors.New("doctor fetch already in flight")
)
