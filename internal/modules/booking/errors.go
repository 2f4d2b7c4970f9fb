package booking

import "errors"

var (
	// ErrValidation covers malformed date ranges, occupant counts over
	// capacity, and missing referenced records in the request.
	ErrValidation = errors.New("validation error")
	// ErrNotAvailable means the room is not free for the requested
	// range; the caller should pick another room or date.
	ErrNotAvailable = errors.New("room not available")
	// ErrInvalidStatusTransition means the operation is not legal for
	// the booking's current status.
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrNotFound                = errors.New("booking not found")
)
