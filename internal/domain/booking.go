package domain

import "time"

type BookingStatus string

const (
	BookingReserved  BookingStatus = "reserved"
	BookingCheckedIn BookingStatus = "checked_in"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// CanTransition is the single authority for the booking state machine.
// Completed and cancelled are terminal; nothing re-enters reserved.
func CanTransition(from, to BookingStatus) bool {
	switch from {
	case BookingReserved:
		return to == BookingCheckedIn || to == BookingCancelled
	case BookingCheckedIn:
		return to == BookingCompleted
	}
	return false
}

// Active reports whether a booking still holds its room's date range.
func (s BookingStatus) Active() bool {
	return s == BookingReserved || s == BookingCheckedIn
}

type Booking struct {
	ID           int64         `json:"id"`
	GuestID      int64         `json:"guest_id" validate:"required"`
	RoomID       int64         `json:"room_id" validate:"required"`
	PromotionID  *int64        `json:"promotion_id,omitempty"`
	ReservedAt   time.Time     `json:"reserved_at"`
	CheckInDate  time.Time     `json:"check_in_date" validate:"required"`
	CheckOutDate time.Time     `json:"check_out_date" validate:"required"`
	Occupants    int           `json:"occupants" validate:"required,gt=0"`
	Status       BookingStatus `json:"status"`
	// Version guards every status transition with a conditional write.
	Version     int64      `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// Nights is the billable night count, floored at 1.
func (b *Booking) Nights() int {
	return NightsBetween(b.CheckInDate, b.CheckOutDate)
}

// Covers reports whether the half-open stay range [CheckInDate,
// CheckOutDate) contains the given day.
func (b *Booking) Covers(day time.Time) bool {
	day = DateOnly(day)
	return !day.Before(DateOnly(b.CheckInDate)) && day.Before(DateOnly(b.CheckOutDate))
}

// Overlaps is the half-open interval test: back-to-back stays where one
// checkout equals the next check-in do not conflict.
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return DateOnly(b.CheckInDate).Before(DateOnly(checkOut)) &&
		DateOnly(b.CheckOutDate).After(DateOnly(checkIn))
}
