package directory

import (
	"context"
	"time"

	"hotelier/internal/domain"
)

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	GetByNumber(ctx context.Context, number string) (*domain.Room, error)
	FindByFilter(ctx context.Context, roomType *domain.RoomType, minCapacity int, includeMaintenance bool) ([]domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error
	Delete(ctx context.Context, id int64) error
}

type GuestRepository interface {
	Create(ctx context.Context, g *domain.Guest) error
	GetByID(ctx context.Context, id int64) (*domain.Guest, error)
	GetByDocument(ctx context.Context, document string) (*domain.Guest, error)
	List(ctx context.Context, limit, offset int) ([]domain.Guest, error)
	Update(ctx context.Context, g *domain.Guest) error
	Delete(ctx context.Context, id int64) error
}

type PromotionRepository interface {
	Create(ctx context.Context, p *domain.Promotion) error
	ListActive(ctx context.Context, t time.Time) ([]domain.Promotion, error)
}

// BookingGuard answers whether directory records are still referenced
// by the booking ledger.
type BookingGuard interface {
	ExistsNonCancelledForGuest(ctx context.Context, guestID int64) (bool, error)
	ExistsNonCancelledForRoom(ctx context.Context, roomID int64) (bool, error)
	ListActiveByRoom(ctx context.Context, roomID int64) ([]domain.Booking, error)
}
