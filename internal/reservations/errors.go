package reservations

import "errors"

var (
	// ErrInvalidInterval indicates a zero-or-negative-length interval.
	ErrInvalidInterval = errors.New("reservation interval must satisfy start < end")

	// ErrConflict indicates the atomic insertion gate found the category at
	// capacity somewhere within the requested interval.
	ErrConflict = errors.New("reservation conflicts with existing occupancy")

	// ErrNotFound indicates the reservation does not exist.
	ErrNotFound = errors.New("reservation not found")
)
