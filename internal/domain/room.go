package domain

import "time"

type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
	RoomTwin   RoomType = "twin"
	RoomSuite  RoomType = "suite"
	RoomDeluxe RoomType = "deluxe"
)

// RoomStatus is the coarse, advisory flag shown on dashboards. The
// interval-overlap check against the booking ledger is authoritative;
// this flag is a projection recomputed after every lifecycle operation.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomReserved    RoomStatus = "reserved"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

type Room struct {
	ID            int64      `json:"id"`
	Number        string     `json:"number" validate:"required"`
	Type          RoomType   `json:"type" validate:"required"`
	Capacity      int        `json:"capacity" validate:"required,gt=0"`
	PricePerNight float64    `json:"price_per_night" validate:"gte=0"`
	Status        RoomStatus `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (t RoomType) Valid() bool {
	switch t {
	case RoomSingle, RoomDouble, RoomTwin, RoomSuite, RoomDeluxe:
		return true
	}
	return false
}
