package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"hotelier/internal/domain"
	"hotelier/internal/repository"
)

// maxTransitionRetries bounds the optimistic-concurrency retry loop on
// version conflicts.
const maxTransitionRetries = 3

type Service struct {
	bookings BookingRepository
	rooms    RoomRepository
	guests   GuestRepository
	promos   PromotionRepository
	checker  AvailabilityChecker
	invoices InvoiceGenerator
	loggerf  func(format string, args ...any)
	now      func() time.Time

	sweepMu sync.Mutex
}

func NewService(
	bookings BookingRepository,
	rooms RoomRepository,
	guests GuestRepository,
	promos PromotionRepository,
	checker AvailabilityChecker,
	invoices InvoiceGenerator,
	loggerf func(format string, args ...any),
) *Service {
	if loggerf == nil {
		loggerf = func(string, ...any) {}
	}
	return &Service{
		bookings: bookings,
		rooms:    rooms,
		guests:   guests,
		promos:   promos,
		checker:  checker,
		invoices: invoices,
		loggerf:  loggerf,
		now:      time.Now,
	}
}

// SetNow overrides the clock; tests pin "today" with it.
func (s *Service) SetNow(now func() time.Time) { s.now = now }

func (s *Service) today() time.Time { return domain.DateOnly(s.now()) }

// Create inserts a booking in reserved status after the availability
// check. The check and the insert run as one atomic unit in the
// repository so concurrent overlapping creations cannot both succeed.
func (s *Service) Create(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	checkIn, checkOut := domain.DateOnly(req.CheckInDate), domain.DateOnly(req.CheckOutDate)

	room, promoID, err := s.validateStay(ctx, req.GuestID, req.RoomID, checkIn, checkOut, req.Occupants, req.PromotionCode)
	if err != nil {
		return nil, err
	}

	free, err := s.checker.IsRoomFree(ctx, room.ID, checkIn, checkOut, nil)
	if err != nil {
		return nil, fmt.Errorf("availability check: %w", err)
	}
	if !free {
		return nil, ErrNotAvailable
	}

	b := &domain.Booking{
		GuestID:      req.GuestID,
		RoomID:       req.RoomID,
		PromotionID:  promoID,
		ReservedAt:   s.now().UTC(),
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Occupants:    req.Occupants,
		Status:       domain.BookingReserved,
		Version:      1,
	}
	if err := s.bookings.CreateIfFree(ctx, b); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, ErrNotAvailable
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.syncRoomStatus(ctx, b.RoomID)
	return b, nil
}

// Edit replaces a reserved booking's guest, room, dates, and occupant
// count. Validation runs with the booking's own id excluded so its
// current slot does not self-conflict; on any failure nothing is
// written.
func (s *Service) Edit(ctx context.Context, id int64, req EditBookingRequest) (*domain.Booking, error) {
	checkIn, checkOut := domain.DateOnly(req.CheckInDate), domain.DateOnly(req.CheckOutDate)

	for attempt := 0; attempt < maxTransitionRetries; attempt++ {
		b, err := s.getBooking(ctx, id)
		if err != nil {
			return nil, err
		}
		if b.Status != domain.BookingReserved {
			return nil, ErrInvalidStatusTransition
		}

		room, promoID, err := s.validateStay(ctx, req.GuestID, req.RoomID, checkIn, checkOut, req.Occupants, req.PromotionCode)
		if err != nil {
			return nil, err
		}

		free, err := s.checker.IsRoomFree(ctx, room.ID, checkIn, checkOut, &id)
		if err != nil {
			return nil, fmt.Errorf("availability check: %w", err)
		}
		if !free {
			return nil, ErrNotAvailable
		}

		updated := *b
		updated.GuestID = req.GuestID
		updated.RoomID = req.RoomID
		updated.PromotionID = promoID
		updated.CheckInDate = checkIn
		updated.CheckOutDate = checkOut
		updated.Occupants = req.Occupants

		err = s.bookings.UpdateIfFree(ctx, &updated, b.Version)
		if errors.Is(err, repository.ErrVersionConflict) {
			continue
		}
		if errors.Is(err, repository.ErrOverlap) {
			return nil, ErrNotAvailable
		}
		if err != nil {
			return nil, fmt.Errorf("edit booking %d: %w", id, err)
		}

		if updated.RoomID != b.RoomID {
			s.syncRoomStatus(ctx, b.RoomID)
		}
		s.syncRoomStatus(ctx, updated.RoomID)
		return &updated, nil
	}
	return nil, fmt.Errorf("edit booking %d: %w", id, repository.ErrVersionConflict)
}

// CheckIn moves reserved → checked_in, allowed only on the check-in
// date itself.
func (s *Service) CheckIn(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.transition(ctx, id, domain.BookingCheckedIn, func(b *domain.Booking) error {
		if !domain.DateOnly(b.CheckInDate).Equal(s.today()) {
			return ErrInvalidStatusTransition
		}
		return nil
	})
}

// CheckOut moves checked_in → completed within the stay window
// (check-in date through check-out date inclusive) and triggers
// idempotent invoice generation.
func (s *Service) CheckOut(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.transition(ctx, id, domain.BookingCompleted, func(b *domain.Booking) error {
		today := s.today()
		if today.Before(domain.DateOnly(b.CheckInDate)) || today.After(domain.DateOnly(b.CheckOutDate)) {
			return ErrInvalidStatusTransition
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.invoices.GenerateInvoice(ctx, b.ID); err != nil {
		// The checkout itself is committed; the invoice can be
		// regenerated through billing, so surface the failure.
		s.loggerf("level=error msg=invoice generation failed after checkout booking_id=%d err=%v", b.ID, err)
		return b, fmt.Errorf("booking completed but invoice generation failed: %w", err)
	}
	return b, nil
}

// Cancel retracts a reserved booking and releases its room. Checked-in
// and terminal bookings cannot be cancelled.
func (s *Service) Cancel(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.transition(ctx, id, domain.BookingCancelled, nil)
}

// Delete removes a booking outright. Only reserved bookings may be
// deleted; once a guest has arrived, cancellation is the only
// retraction path.
func (s *Service) Delete(ctx context.Context, id int64) error {
	b, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}
	if b.Status != domain.BookingReserved {
		return ErrInvalidStatusTransition
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete booking %d: %w", id, err)
	}
	s.syncRoomStatus(ctx, b.RoomID)
	return nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.getBooking(ctx, id)
}

func (s *Service) ListByGuest(ctx context.Context, guestID int64, limit, offset int) ([]domain.Booking, error) {
	out, err := s.bookings.ListByGuest(ctx, guestID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bookings for guest %d: %w", guestID, err)
	}
	return out, nil
}

// validateStay runs the shared creation/edit validation and resolves
// the optional promotion code against the reservation time.
func (s *Service) validateStay(ctx context.Context, guestID, roomID int64, checkIn, checkOut time.Time, occupants int, promoCode string) (*domain.Room, *int64, error) {
	if !checkOut.After(checkIn) {
		return nil, nil, ErrValidation
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrValidation
		}
		return nil, nil, fmt.Errorf("load room %d: %w", roomID, err)
	}
	if _, err := s.guests.GetByID(ctx, guestID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrValidation
		}
		return nil, nil, fmt.Errorf("load guest %d: %w", guestID, err)
	}
	if occupants < 1 || occupants > room.Capacity {
		return nil, nil, ErrValidation
	}

	var promoID *int64
	if promoCode != "" {
		p, err := s.promos.GetByCode(ctx, promoCode)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, nil, ErrValidation
			}
			return nil, nil, fmt.Errorf("load promotion %q: %w", promoCode, err)
		}
		if !p.ActiveAt(s.now()) {
			return nil, nil, ErrValidation
		}
		promoID = &p.ID
	}
	return room, promoID, nil
}

// transition drives the state machine under the optimistic guard:
// read, check legality, conditionally write, retry on a lost race.
func (s *Service) transition(ctx context.Context, id int64, to domain.BookingStatus, guard func(*domain.Booking) error) (*domain.Booking, error) {
	for attempt := 0; attempt < maxTransitionRetries; attempt++ {
		b, err := s.getBooking(ctx, id)
		if err != nil {
			return nil, err
		}
		if !domain.CanTransition(b.Status, to) {
			return nil, ErrInvalidStatusTransition
		}
		if guard != nil {
			if err := guard(b); err != nil {
				return nil, err
			}
		}

		var cancelledAt *time.Time
		if to == domain.BookingCancelled {
			t := s.now().UTC()
			cancelledAt = &t
		}

		err = s.bookings.UpdateStatusIfVersion(ctx, b.ID, b.Version, to, cancelledAt)
		if errors.Is(err, repository.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("transition booking %d to %s: %w", id, to, err)
		}

		b.Status = to
		b.Version++
		if cancelledAt != nil {
			b.CancelledAt = cancelledAt
		}
		s.syncRoomStatus(ctx, b.RoomID)
		return b, nil
	}
	return nil, fmt.Errorf("transition booking %d to %s: %w", id, to, repository.ErrVersionConflict)
}

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load booking %d: %w", id, err)
	}
	return b, nil
}

// syncRoomStatus recomputes the coarse room flag from the ledger after
// a lifecycle operation. It is advisory: failures are logged, not
// fatal, and the next operation resynchronizes. Maintenance is sticky
// and only the directory toggles it.
func (s *Service) syncRoomStatus(ctx context.Context, roomID int64) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		s.loggerf("level=error msg=room status sync read failed room_id=%d err=%v", roomID, err)
		return
	}
	if room.Status == domain.RoomMaintenance {
		return
	}

	active, err := s.bookings.ListActiveByRoom(ctx, roomID)
	if err != nil {
		s.loggerf("level=error msg=room status sync ledger read failed room_id=%d err=%v", roomID, err)
		return
	}

	today := s.today()
	status := domain.RoomAvailable
	for i := range active {
		b := &active[i]
		if b.Status == domain.BookingCheckedIn && b.Covers(today) {
			status = domain.RoomOccupied
			break
		}
		// A current or upcoming reservation marks the room reserved.
		if b.Status == domain.BookingReserved && domain.DateOnly(b.CheckOutDate).After(today) {
			status = domain.RoomReserved
		}
	}

	if status == room.Status {
		return
	}
	if err := s.rooms.UpdateStatus(ctx, roomID, status); err != nil {
		s.loggerf("level=error msg=room status sync write failed room_id=%d status=%s err=%v", roomID, status, err)
	}
}
