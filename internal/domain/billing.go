package domain

import "time"

// ExtraCharge is an amenity or service billed on top of the stay:
// minibar, laundry, breakfast and the like.
type ExtraCharge struct {
	ID          int64     `json:"id"`
	BookingID   int64     `json:"booking_id" validate:"required"`
	Category    string    `json:"category" validate:"required"`
	Description string    `json:"description,omitempty"`
	UnitPrice   float64   `json:"unit_price" validate:"gte=0"`
	Quantity    int       `json:"quantity" validate:"required,gt=0"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c *ExtraCharge) Total() float64 {
	return Round2(c.UnitPrice * float64(c.Quantity))
}

type InvoiceStatus string

const (
	InvoiceUnpaid        InvoiceStatus = "unpaid"
	InvoicePartiallyPaid InvoiceStatus = "partially_paid"
	InvoicePaid          InvoiceStatus = "paid"
)

type Invoice struct {
	ID             int64         `json:"id"`
	BookingID      int64         `json:"booking_id" validate:"required"`
	StayTotal      float64       `json:"stay_total"`
	ExtrasTotal    float64       `json:"extras_total"`
	DiscountAmount float64       `json:"discount_amount"`
	GrandTotal     float64       `json:"grand_total"`
	IssuedAt       time.Time     `json:"issued_at"`
	Status         InvoiceStatus `json:"status"`
	Version        int64         `json:"-"`
}

// InvoiceStatusFor derives the payment status from the amount settled
// so far against the grand total.
func InvoiceStatusFor(paid, grandTotal float64) InvoiceStatus {
	paid = Round2(paid)
	switch {
	case paid >= grandTotal:
		return InvoicePaid
	case paid > 0:
		return InvoicePartiallyPaid
	}
	return InvoiceUnpaid
}

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}

type Payment struct {
	ID        int64         `json:"id"`
	InvoiceID int64         `json:"invoice_id" validate:"required"`
	Amount    float64       `json:"amount" validate:"gt=0"`
	Method    PaymentMethod `json:"method" validate:"required"`
	PaidAt    time.Time     `json:"paid_at"`
}
