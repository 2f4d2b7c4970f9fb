package availability

import (
	"context"
	"time"

	"hotelier/internal/domain"
)

// RoomRepository is the room directory surface the checker reads.
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	FindByFilter(ctx context.Context, roomType *domain.RoomType, minCapacity int, includeMaintenance bool) ([]domain.Room, error)
}

// BookingRepository is the booking ledger surface the checker reads.
// The ledger, not the coarse room status, is ground truth for
// conflicts.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	HasOverlap(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeID *int64) (bool, error)
	FindBookedRoomIDs(ctx context.Context, checkIn, checkOut time.Time, excludeID *int64) ([]int64, error)
}
