package availability

import (
	"time"

	"hotelier/internal/domain"
)

// FindRequest narrows the room search. Type and ExcludeBookingID are
// optional; a zero MinCapacity means no capacity floor.
type FindRequest struct {
	Type             *domain.RoomType
	MinCapacity      int
	CheckIn          time.Time
	CheckOut         time.Time
	ExcludeBookingID *int64
}
