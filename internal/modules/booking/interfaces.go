package booking

import (
	"context"
	"time"

	"hotelier/internal/domain"
)

// BookingRepository is the ledger the lifecycle manager owns. All
// writes are conditional: creation and edits re-check the range inside
// a transaction, transitions are keyed on (id, version).
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	CreateIfFree(ctx context.Context, b *domain.Booking) error
	UpdateIfFree(ctx context.Context, b *domain.Booking, expectedVersion int64) error
	UpdateStatusIfVersion(ctx context.Context, id, expectedVersion int64, status domain.BookingStatus, cancelledAt *time.Time) error
	Delete(ctx context.Context, id int64) error
	ListByGuest(ctx context.Context, guestID int64, limit, offset int) ([]domain.Booking, error)
	ListActiveByRoom(ctx context.Context, roomID int64) ([]domain.Booking, error)
	ListNoShows(ctx context.Context, today time.Time) ([]domain.Booking, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error
}

type GuestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Guest, error)
}

type PromotionRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Promotion, error)
}

// AvailabilityChecker answers the free/busy question ahead of any
// state change that reserves a date range.
type AvailabilityChecker interface {
	IsRoomFree(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeBookingID *int64) (bool, error)
}

// InvoiceGenerator is invoked on checkout; generation is idempotent on
// the billing side.
type InvoiceGenerator interface {
	GenerateInvoice(ctx context.Context, bookingID int64) (*domain.Invoice, error)
}
