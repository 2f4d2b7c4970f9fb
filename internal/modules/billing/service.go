package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelier/internal/domain"
	"hotelier/internal/repository"
)

// maxPaymentRetries bounds the optimistic retry loop when concurrent
// payments race on the same invoice.
const maxPaymentRetries = 3

type Service struct {
	invoices InvoiceRepository
	charges  ChargeRepository
	bookings BookingReader
	rooms    RoomReader
	promos   PromotionReader
	now      func() time.Time
}

func NewService(
	invoices InvoiceRepository,
	charges ChargeRepository,
	bookings BookingReader,
	rooms RoomReader,
	promos PromotionReader,
) *Service {
	return &Service{
		invoices: invoices,
		charges:  charges,
		bookings: bookings,
		rooms:    rooms,
		promos:   promos,
		now:      time.Now,
	}
}

// SetNow overrides the clock; tests pin the issue date with it.
func (s *Service) SetNow(now func() time.Time) { s.now = now }

// GenerateInvoice computes and stores the invoice for a checked-in or
// completed booking. Idempotent: a second call returns the invoice
// already on record, never a duplicate.
func (s *Service) GenerateInvoice(ctx context.Context, bookingID int64) (*domain.Invoice, error) {
	existing, err := s.invoices.GetByBookingID(ctx, bookingID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup invoice for booking %d: %w", bookingID, err)
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load booking %d: %w", bookingID, err)
	}
	if b.Status != domain.BookingCheckedIn && b.Status != domain.BookingCompleted {
		return nil, ErrInvalidStatusTransition
	}

	room, err := s.rooms.GetByID(ctx, b.RoomID)
	if err != nil {
		return nil, fmt.Errorf("load room %d: %w", b.RoomID, err)
	}

	stayTotal := domain.Round2(float64(b.Nights()) * room.PricePerNight)

	chargeRows, err := s.charges.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("load charges for booking %d: %w", bookingID, err)
	}
	var extrasTotal float64
	for i := range chargeRows {
		extrasTotal += chargeRows[i].Total()
	}
	extrasTotal = domain.Round2(extrasTotal)

	var discount float64
	if b.PromotionID != nil {
		p, err := s.promos.GetByID(ctx, *b.PromotionID)
		if err != nil {
			return nil, fmt.Errorf("load promotion %d: %w", *b.PromotionID, err)
		}
		discount = domain.Round2(stayTotal * p.DiscountPercent / 100)
	}

	grand := domain.Round2(stayTotal + extrasTotal - discount)
	if grand < 0 {
		grand = 0
	}

	inv := &domain.Invoice{
		BookingID:      bookingID,
		StayTotal:      stayTotal,
		ExtrasTotal:    extrasTotal,
		DiscountAmount: discount,
		GrandTotal:     grand,
		IssuedAt:       s.now().UTC(),
		Status:         domain.InvoiceStatusFor(0, grand),
		Version:        1,
	}
	if err := s.invoices.Create(ctx, inv); err != nil {
		// A concurrent checkout generated it first; the unique index on
		// booking_id makes that race safe to resolve by re-reading.
		if errors.Is(err, repository.ErrDuplicate) {
			return s.invoices.GetByBookingID(ctx, bookingID)
		}
		return nil, fmt.Errorf("store invoice for booking %d: %w", bookingID, err)
	}
	return inv, nil
}

// ApplyPayment records a payment against an invoice and recomputes its
// status. Amounts that are non-positive or would exceed the balance
// due are rejected without touching the invoice.
func (s *Service) ApplyPayment(ctx context.Context, invoiceID int64, amount float64, method domain.PaymentMethod) (*domain.Payment, error) {
	if amount <= 0 || !method.Valid() {
		return nil, ErrValidation
	}
	amount = domain.Round2(amount)

	for attempt := 0; attempt < maxPaymentRetries; attempt++ {
		inv, err := s.getInvoice(ctx, invoiceID)
		if err != nil {
			return nil, err
		}

		paid, err := s.invoices.SumPayments(ctx, invoiceID)
		if err != nil {
			return nil, fmt.Errorf("sum payments for invoice %d: %w", invoiceID, err)
		}
		newPaid := domain.Round2(paid + amount)
		if newPaid > inv.GrandTotal {
			return nil, ErrPaymentOverflow
		}

		p := &domain.Payment{
			InvoiceID: invoiceID,
			Amount:    amount,
			Method:    method,
			PaidAt:    s.now().UTC(),
		}
		status := domain.InvoiceStatusFor(newPaid, inv.GrandTotal)

		err = s.invoices.AppendPaymentIfVersion(ctx, invoiceID, inv.Version, p, status)
		if errors.Is(err, repository.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("record payment on invoice %d: %w", invoiceID, err)
		}
		return p, nil
	}
	return nil, fmt.Errorf("record payment on invoice %d: %w", invoiceID, repository.ErrVersionConflict)
}

// AddCharge attaches an extra service to a booking while it is still
// reserved or checked in.
func (s *Service) AddCharge(ctx context.Context, bookingID int64, req AddChargeRequest) (*domain.ExtraCharge, error) {
	if req.Category == "" || req.UnitPrice < 0 || req.Quantity < 1 {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load booking %d: %w", bookingID, err)
	}
	if !b.Status.Active() {
		return nil, ErrInvalidStatusTransition
	}

	c := &domain.ExtraCharge{
		BookingID:   bookingID,
		Category:    req.Category,
		Description: req.Description,
		UnitPrice:   domain.Round2(req.UnitPrice),
		Quantity:    req.Quantity,
	}
	if err := s.charges.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("store charge for booking %d: %w", bookingID, err)
	}
	return c, nil
}

func (s *Service) ListCharges(ctx context.Context, bookingID int64) ([]domain.ExtraCharge, error) {
	out, err := s.charges.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("list charges for booking %d: %w", bookingID, err)
	}
	return out, nil
}

// GetInvoiceDetails returns the invoice with its payments and the
// outstanding balance.
func (s *Service) GetInvoiceDetails(ctx context.Context, invoiceID int64) (*InvoiceDetails, error) {
	inv, err := s.getInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	payments, err := s.invoices.ListPayments(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list payments for invoice %d: %w", invoiceID, err)
	}
	paid, err := s.invoices.SumPayments(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("sum payments for invoice %d: %w", invoiceID, err)
	}
	return &InvoiceDetails{
		Invoice:  *inv,
		Payments: payments,
		Balance:  domain.Round2(inv.GrandTotal - paid),
	}, nil
}

func (s *Service) getInvoice(ctx context.Context, id int64) (*domain.Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load invoice %d: %w", id, err)
	}
	return inv, nil
}
