package domain

import "time"

type Guest struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"full_name" validate:"required"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	IDDocument string   `json:"id_document" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
