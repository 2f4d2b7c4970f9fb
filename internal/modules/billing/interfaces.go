package billing

import (
	"context"

	"hotelier/internal/domain"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Invoice, error)
	SumPayments(ctx context.Context, invoiceID int64) (float64, error)
	ListPayments(ctx context.Context, invoiceID int64) ([]domain.Payment, error)
	AppendPaymentIfVersion(ctx context.Context, invoiceID, expectedVersion int64, p *domain.Payment, status domain.InvoiceStatus) error
}

type ChargeRepository interface {
	Create(ctx context.Context, c *domain.ExtraCharge) error
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.ExtraCharge, error)
}

// BookingReader gives billing read access to the lifecycle state; the
// ledger never mutates bookings.
type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type RoomReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

type PromotionReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Promotion, error)
}
