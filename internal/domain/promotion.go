package domain

import "time"

type Promotion struct {
	ID              int64     `json:"id"`
	Code            string    `json:"code" validate:"required"`
	DiscountPercent float64   `json:"discount_percent" validate:"gt=0,lte=100"`
	ValidFrom       time.Time `json:"valid_from"`
	ValidUntil      time.Time `json:"valid_until"`
	CreatedAt       time.Time `json:"created_at"`
}

// ActiveAt reports whether the promotion window covers t (inclusive).
func (p *Promotion) ActiveAt(t time.Time) bool {
	return !t.Before(p.ValidFrom) && !t.After(p.ValidUntil)
}
