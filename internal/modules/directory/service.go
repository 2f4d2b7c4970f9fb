package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelier/internal/domain"
	"hotelier/internal/repository"
)

type Service struct {
	rooms    RoomRepository
	guests   GuestRepository
	promos   PromotionRepository
	bookings BookingGuard
	now      func() time.Time
}

func NewService(rooms RoomRepository, guests GuestRepository, promos PromotionRepository, bookings BookingGuard) *Service {
	return &Service{
		rooms:    rooms,
		guests:   guests,
		promos:   promos,
		bookings: bookings,
		now:      time.Now,
	}
}

// SetNow overrides the clock used for the active-promotion listing.
func (s *Service) SetNow(now func() time.Time) { s.now = now }

func (s *Service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	if req.Number == "" || !req.Type.Valid() || req.Capacity < 1 || req.PricePerNight < 0 {
		return nil, ErrValidation
	}

	room := &domain.Room{
		Number:        req.Number,
		Type:          req.Type,
		Capacity:      req.Capacity,
		PricePerNight: domain.Round2(req.PricePerNight),
		Status:        domain.RoomAvailable,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("create room: %w", err)
	}
	return room, nil
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, mapDirErr(err, "load room")
	}
	return room, nil
}

func (s *Service) ListRooms(ctx context.Context, roomType *domain.RoomType, minCapacity int) ([]domain.Room, error) {
	out, err := s.rooms.FindByFilter(ctx, roomType, minCapacity, true)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return out, nil
}

func (s *Service) UpdateRoom(ctx context.Context, id int64, req UpdateRoomRequest) (*domain.Room, error) {
	if req.Number == "" || !req.Type.Valid() || req.Capacity < 1 || req.PricePerNight < 0 {
		return nil, ErrValidation
	}

	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, mapDirErr(err, "load room")
	}
	room.Number = req.Number
	room.Type = req.Type
	room.Capacity = req.Capacity
	room.PricePerNight = domain.Round2(req.PricePerNight)

	if err := s.rooms.Update(ctx, room); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, mapDirErr(err, "update room")
	}
	return room, nil
}

// SetMaintenance is the only writer of the maintenance flag; the
// lifecycle projection treats it as sticky. Clearing it recomputes the
// coarse status from the ledger so the room does not come back stale.
func (s *Service) SetMaintenance(ctx context.Context, id int64, maintenance bool) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, mapDirErr(err, "load room")
	}

	status := domain.RoomMaintenance
	if !maintenance {
		status, err = s.projectedStatus(ctx, id)
		if err != nil {
			return nil, err
		}
	}
	if err := s.rooms.UpdateStatus(ctx, id, status); err != nil {
		return nil, mapDirErr(err, "update room status")
	}
	room.Status = status
	return room, nil
}

func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	inUse, err := s.bookings.ExistsNonCancelledForRoom(ctx, id)
	if err != nil {
		return fmt.Errorf("room usage check: %w", err)
	}
	if inUse {
		return ErrInUse
	}
	if err := s.rooms.Delete(ctx, id); err != nil {
		return mapDirErr(err, "delete room")
	}
	return nil
}

func (s *Service) CreateGuest(ctx context.Context, req CreateGuestRequest) (*domain.Guest, error) {
	g := &domain.Guest{
		FullName:   req.FullName,
		Phone:      req.Phone,
		Email:      req.Email,
		IDDocument: req.IDDocument,
	}
	if err := s.guests.Create(ctx, g); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("create guest: %w", err)
	}
	return g, nil
}

func (s *Service) GetGuest(ctx context.Context, id int64) (*domain.Guest, error) {
	g, err := s.guests.GetByID(ctx, id)
	if err != nil {
		return nil, mapDirErr(err, "load guest")
	}
	return g, nil
}

func (s *Service) FindGuestByDocument(ctx context.Context, document string) (*domain.Guest, error) {
	g, err := s.guests.GetByDocument(ctx, document)
	if err != nil {
		return nil, mapDirErr(err, "lookup guest")
	}
	return g, nil
}

func (s *Service) ListGuests(ctx context.Context, limit, offset int) ([]domain.Guest, error) {
	out, err := s.guests.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	return out, nil
}

func (s *Service) UpdateGuest(ctx context.Context, id int64, req UpdateGuestRequest) (*domain.Guest, error) {
	g, err := s.guests.GetByID(ctx, id)
	if err != nil {
		return nil, mapDirErr(err, "load guest")
	}
	g.FullName = req.FullName
	g.Phone = req.Phone
	g.Email = req.Email
	if err := s.guests.Update(ctx, g); err != nil {
		return nil, mapDirErr(err, "update guest")
	}
	return g, nil
}

// DeleteGuest refuses while any non-cancelled booking still references
// the guest.
func (s *Service) DeleteGuest(ctx context.Context, id int64) error {
	inUse, err := s.bookings.ExistsNonCancelledForGuest(ctx, id)
	if err != nil {
		return fmt.Errorf("guest usage check: %w", err)
	}
	if inUse {
		return ErrInUse
	}
	if err := s.guests.Delete(ctx, id); err != nil {
		return mapDirErr(err, "delete guest")
	}
	return nil
}

func (s *Service) CreatePromotion(ctx context.Context, req CreatePromotionRequest) (*domain.Promotion, error) {
	if req.DiscountPercent <= 0 || req.DiscountPercent > 100 || !req.ValidUntil.After(req.ValidFrom) {
		return nil, ErrValidation
	}
	p := &domain.Promotion{
		Code:            req.Code,
		DiscountPercent: req.DiscountPercent,
		ValidFrom:       req.ValidFrom,
		ValidUntil:      req.ValidUntil,
	}
	if err := s.promos.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("create promotion: %w", err)
	}
	return p, nil
}

func (s *Service) ListActivePromotions(ctx context.Context) ([]domain.Promotion, error) {
	out, err := s.promos.ListActive(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}
	return out, nil
}

// projectedStatus recomputes the coarse flag from the ledger, used
// when a room leaves maintenance.
func (s *Service) projectedStatus(ctx context.Context, roomID int64) (domain.RoomStatus, error) {
	active, err := s.bookings.ListActiveByRoom(ctx, roomID)
	if err != nil {
		return "", fmt.Errorf("room status projection: %w", err)
	}
	today := domain.DateOnly(s.now())
	status := domain.RoomAvailable
	for i := range active {
		b := &active[i]
		if b.Status == domain.BookingCheckedIn && b.Covers(today) {
			return domain.RoomOccupied, nil
		}
		if b.Status == domain.BookingReserved && domain.DateOnly(b.CheckOutDate).After(today) {
			status = domain.RoomReserved
		}
	}
	return status, nil
}

func mapDirErr(err error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
