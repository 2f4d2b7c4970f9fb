package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrOverlap is returned when an atomic check-and-write finds a
	// conflicting reserved/checked-in booking for the same room range.
	ErrOverlap = errors.New("booking range overlap")
	// ErrVersionConflict is returned when a conditional write loses an
	// optimistic concurrency race; callers re-read and retry.
	ErrVersionConflict = errors.New("version conflict")
	// ErrDuplicate is returned on unique constraint violations.
	ErrDuplicate = errors.New("duplicate record")
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// translate maps driver-level errors onto the repository sentinels so
// services never branch on gorm or pgconn types.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgExclusionViolation:
			// The no-overbooking exclusion constraint is the database
			// backstop for concurrent creations that slip past the
			// transactional overlap count.
			return ErrOverlap
		case pgUniqueViolation:
			return ErrDuplicate
		}
	}
	return err
}
