package directory

import (
	"time"

	"hotelier/internal/domain"
)

type CreateRoomRequest struct {
	Number        string          `json:"number" binding:"required"`
	Type          domain.RoomType `json:"type" binding:"required"`
	Capacity      int             `json:"capacity" binding:"required"`
	PricePerNight float64         `json:"price_per_night"`
}

type UpdateRoomRequest struct {
	Number        string          `json:"number" binding:"required"`
	Type          domain.RoomType `json:"type" binding:"required"`
	Capacity      int             `json:"capacity" binding:"required"`
	PricePerNight float64         `json:"price_per_night"`
}

type SetMaintenanceRequest struct {
	Maintenance bool `json:"maintenance"`
}

type CreateGuestRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	IDDocument string `json:"id_document" binding:"required"`
}

type UpdateGuestRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

type CreatePromotionRequest struct {
	Code            string    `json:"code" binding:"required"`
	DiscountPercent float64   `json:"discount_percent" binding:"required"`
	ValidFrom       time.Time `json:"valid_from" binding:"required"`
	ValidUntil      time.Time `json:"valid_until" binding:"required"`
}
