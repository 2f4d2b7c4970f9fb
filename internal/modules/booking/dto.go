package booking

import "time"

type CreateBookingRequest struct {
	GuestID       int64     `json:"guest_id" binding:"required"`
	RoomID        int64     `json:"room_id" binding:"required"`
	CheckInDate   time.Time `json:"check_in_date" binding:"required"`
	CheckOutDate  time.Time `json:"check_out_date" binding:"required"`
	Occupants     int       `json:"occupants" binding:"required"`
	PromotionCode string    `json:"promotion_code"`
}

// EditBookingRequest carries the full replacement state; edits re-run
// creation validation and apply all-or-nothing.
type EditBookingRequest struct {
	GuestID       int64     `json:"guest_id" binding:"required"`
	RoomID        int64     `json:"room_id" binding:"required"`
	CheckInDate   time.Time `json:"check_in_date" binding:"required"`
	CheckOutDate  time.Time `json:"check_out_date" binding:"required"`
	Occupants     int       `json:"occupants" binding:"required"`
	PromotionCode string    `json:"promotion_code"`
}

type SweepFailure struct {
	BookingID int64  `json:"booking_id"`
	Reason    string `json:"reason"`
}

// SweepReport summarizes one no-show sweep run. Skipped is set when a
// run found the sweep already in flight and did nothing.
type SweepReport struct {
	Skipped   bool           `json:"skipped,omitempty"`
	Scanned   int            `json:"scanned"`
	Cancelled int            `json:"cancelled"`
	Failures  []SweepFailure `json:"failures,omitempty"`
}
