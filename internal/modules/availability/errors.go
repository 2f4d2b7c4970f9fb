package availability

import "errors"

var (
	ErrValidation = errors.New("invalid date range")
	ErrNotFound   = errors.New("room not found")
)
