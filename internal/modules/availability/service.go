package availability

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
	bookings BookingRepository
}

func NewService(rooms RoomRepository, bookings BookingRepository) *Service {
	return &Service{rooms: rooms, bookings: bookings}
}

// IsRoomFree reports whether a room can host a booking for the
// half-open range [checkIn, checkOut). excludeBookingID lets an edit
// re-check availability without the booking's own slot counting as a
// conflict.
func (s *Service) IsRoomFree(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeBookingID *int64) (bool, error) {
	checkIn, checkOut = domain.DateOnly(checkIn), domain.DateOnly(checkOut)
	if !checkOut.After(checkIn) {
		return false, ErrValidation
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("load room %d: %w", roomID, err)
	}

	if room.Status == domain.RoomMaintenance && !s.keepsExistingBooking(ctx, roomID, excludeBookingID) {
		// New bookings never land on a maintenance room. An existing
		// booking on a room later flagged maintenance survives edits.
		return false, nil
	}

	overlap, err := s.bookings.HasOverlap(ctx, roomID, checkIn, checkOut, excludeBookingID)
	if err != nil {
		return false, fmt.Errorf("overlap check for room %d: %w", roomID, err)
	}
	return !overlap, nil
}

// FindAvailableRooms lists rooms free for the range, narrowed by the
// optional type and capacity filter. An empty result is not an error.
func (s *Service) FindAvailableRooms(ctx context.Context, req FindRequest) ([]domain.Room, error) {
	checkIn, checkOut := domain.DateOnly(req.CheckIn), domain.DateOnly(req.CheckOut)
	if !checkOut.After(checkIn) {
		return nil, ErrValidation
	}

	rooms, err := s.rooms.FindByFilter(ctx, req.Type, req.MinCapacity, false)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	bookedIDs, err := s.bookings.FindBookedRoomIDs(ctx, checkIn, checkOut, req.ExcludeBookingID)
	if err != nil {
		return nil, fmt.Errorf("list booked rooms: %w", err)
	}
	booked := make(map[int64]struct{}, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = struct{}{}
	}

	out := make([]domain.Room, 0, len(rooms))
	for _, room := range rooms {
		if _, taken := booked[room.ID]; !taken {
			out = append(out, room)
		}
	}

	// An edit may keep its booking on a room that has since gone into
	// maintenance; surface that one room even though new placements
	// there are forbidden.
	if req.ExcludeBookingID != nil {
		if room := s.maintenanceRoomOfBooking(ctx, req, booked); room != nil {
			out = append(out, *room)
		}
	}
	return out, nil
}

func (s *Service) keepsExistingBooking(ctx context.Context, roomID int64, excludeBookingID *int64) bool {
	if excludeBookingID == nil {
		return false
	}
	b, err := s.bookings.GetByID(ctx, *excludeBookingID)
	if err != nil {
		return false
	}
	return b.RoomID == roomID
}

func (s *Service) maintenanceRoomOfBooking(ctx context.Context, req FindRequest, booked map[int64]struct{}) *domain.Room {
	b, err := s.bookings.GetByID(ctx, *req.ExcludeBookingID)
	if err != nil {
		return nil
	}
	room, err := s.rooms.GetByID(ctx, b.RoomID)
	if err != nil || room.Status != domain.RoomMaintenance {
		return nil
	}
	if req.Type != nil && room.Type != *req.Type {
		return nil
	}
	if req.MinCapacity > 0 && room.Capacity < req.MinCapacity {
		return nil
	}
	if _, taken := booked[room.ID]; taken {
		return nil
	}
	return room
}
