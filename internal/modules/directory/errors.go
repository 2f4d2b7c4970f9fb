package directory

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("record not found")
	// ErrDuplicate covers a room number or guest document already on
	// file.
	ErrDuplicate = errors.New("duplicate record")
	// ErrInUse blocks deleting a room or guest still referenced by a
	// non-cancelled booking.
	ErrInUse = errors.New("record referenced by bookings")
)
