package billing

import (
	"context"
	"testing"
	"time"

	"hotelier/internal/domain"
	"hotelier/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock repositories
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	args := m.Called(ctx, inv)
	if inv != nil && args.Error(0) == nil {
		inv.ID = 55 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Invoice, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SumPayments(ctx context.Context, invoiceID int64) (float64, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockInvoiceRepository) ListPayments(ctx context.Context, invoiceID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockInvoiceRepository) AppendPaymentIfVersion(ctx context.Context, invoiceID, expectedVersion int64, p *domain.Payment, status domain.InvoiceStatus) error {
	args := m.Called(ctx, invoiceID, expectedVersion, p, status)
	return args.Error(0)
}

type MockChargeRepository struct {
	mock.Mock
}

func (m *MockChargeRepository) Create(ctx context.Context, c *domain.ExtraCharge) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChargeRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.ExtraCharge, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExtraCharge), args.Error(1)
}

type MockBookingReader struct {
	mock.Mock
}

func (m *MockBookingReader) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockRoomReader struct {
	mock.Mock
}

func (m *MockRoomReader) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

type MockPromotionReader struct {
	mock.Mock
}

func (m *MockPromotionReader) GetByID(ctx context.Context, id int64) (*domain.Promotion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Promotion), args.Error(1)
}

type billingEnv struct {
	invoices *MockInvoiceRepository
	charges  *MockChargeRepository
	bookings *MockBookingReader
	rooms    *MockRoomReader
	promos   *MockPromotionReader
	service  *Service
}

func newBillingEnv() *billingEnv {
	env := &billingEnv{
		invoices: new(MockInvoiceRepository),
		charges:  new(MockChargeRepository),
		bookings: new(MockBookingReader),
		rooms:    new(MockRoomReader),
		promos:   new(MockPromotionReader),
	}
	env.service = NewService(env.invoices, env.charges, env.bookings, env.rooms, env.promos)
	env.service.SetNow(func() time.Time { return time.Date(2026, 3, 12, 11, 0, 0, 0, time.UTC) })
	return env
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateInvoice_StayExtrasAndDiscount(t *testing.T) {
	env := newBillingEnv()

	promoID := int64(5)
	env.invoices.On("GetByBookingID", mock.Anything, int64(7)).Return(nil, repository.ErrNotFound)
	env.bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID: 7, RoomID: 101, PromotionID: &promoID, Status: domain.BookingCompleted,
		CheckInDate: day(2026, 3, 10), CheckOutDate: day(2026, 3, 11),
	}, nil)
	env.rooms.On("GetByID", mock.Anything, int64(101)).Return(&domain.Room{
		ID: 101, PricePerNight: 100,
	}, nil)
	env.charges.On("ListByBooking", mock.Anything, int64(7)).Return([]domain.ExtraCharge{
		{BookingID: 7, Category: "minibar", UnitPrice: 10, Quantity: 2},
	}, nil)
	env.promos.On("GetByID", mock.Anything, promoID).Return(&domain.Promotion{
		ID: promoID, DiscountPercent: 10,
	}, nil)
	env.invoices.On("Create", mock.Anything, mock.Anything).Return(nil)

	inv, err := env.service.GenerateInvoice(context.Background(), 7)

	// one night at 100, extras 20, discount 10% of stay
	assert.NoError(t, err)
	assert.Equal(t, 100.0, inv.StayTotal)
	assert.Equal(t, 20.0, inv.ExtrasTotal)
	assert.Equal(t, 10.0, inv.DiscountAmount)
	assert.Equal(t, 110.0, inv.GrandTotal)
	assert.Equal(t, domain.InvoiceUnpaid, inv.Status)
	assert.Equal(t, int64(1), inv.Version)
}

func TestGenerateInvoice_Idempotent(t *testing.T) {
	env := newBillingEnv()

	existing := &domain.Invoice{ID: 55, BookingID: 7, GrandTotal: 110}
	env.invoices.On("GetByBookingID", mock.Anything, int64(7)).Return(existing, nil)

	inv, err := env.service.GenerateInvoice(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, existing, inv)
	env.invoices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerateInvoice_SameDayStayBillsOneNight(t *testing.T) {
	env := newBillingEnv()

	env.invoices.On("GetByBookingID", mock.Anything, int64(7)).Return(nil, repository.ErrNotFound)
	env.bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID: 7, RoomID: 101, Status: domain.BookingCompleted,
		CheckInDate: day(2026, 3, 12), CheckOutDate: day(2026, 3, 12),
	}, nil)
	env.rooms.On("GetByID", mock.Anything, int64(101)).Return(&domain.Room{
		ID: 101, PricePerNight: 80,
	}, nil)
	env.charges.On("ListByBooking", mock.Anything, int64(7)).Return([]domain.ExtraCharge{}, nil)
	env.invoices.On("Create", mock.Anything, mock.Anything).Return(nil)

	inv, err := env.service.GenerateInvoice(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, 80.0, inv.StayTotal)
	assert.Equal(t, 80.0, inv.GrandTotal)
}

func TestGenerateInvoice_ReservedBookingRejected(t *testing.T) {
	env := newBillingEnv()

	env.invoices.On("GetByBookingID", mock.Anything, int64(7)).Return(nil, repository.ErrNotFound)
	env.bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID: 7, Status: domain.BookingReserved,
	}, nil)

	_, err := env.service.GenerateInvoice(context.Background(), 7)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestGenerateInvoice_DuplicateRaceResolvedByReread(t *testing.T) {
	env := newBillingEnv()

	winner := &domain.Invoice{ID: 54, BookingID: 7, GrandTotal: 300}
	env.invoices.On("GetByBookingID", mock.Anything, int64(7)).Return(nil, repository.ErrNotFound).Once()
	env.bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID: 7, RoomID: 101, Status: domain.BookingCompleted,
		CheckInDate: day(2026, 3, 9), CheckOutDate: day(2026, 3, 12),
	}, nil)
	env.rooms.On("GetByID", mock.Anything, int64(101)).Return(&domain.Room{ID: 101, PricePerNight: 100}, nil)
	env.charges.On("ListByBooking", mock.Anything, int64(7)).Return([]domain.ExtraCharge{}, nil)
	env.invoices.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)
	env.invoices.On("GetByBookingID", mock.Anything, int64(7)).Return(winner, nil).Once()

	inv, err := env.service.GenerateInvoice(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, winner, inv)
}

func TestApplyPayment_PartialThenPaid(t *testing.T) {
	env := newBillingEnv()

	inv := &domain.Invoice{ID: 55, BookingID: 7, GrandTotal: 110, Status: domain.InvoiceUnpaid, Version: 1}
	env.invoices.On("GetByID", mock.Anything, int64(55)).Return(inv, nil)
	env.invoices.On("SumPayments", mock.Anything, int64(55)).Return(0.0, nil).Once()
	env.invoices.On("AppendPaymentIfVersion", mock.Anything, int64(55), int64(1), mock.Anything, domain.InvoicePartiallyPaid).
		Return(nil).Once()

	p, err := env.service.ApplyPayment(context.Background(), 55, 50, domain.PaymentCash)
	assert.NoError(t, err)
	assert.Equal(t, 50.0, p.Amount)

	// settle the remainder
	inv.Version = 2
	env.invoices.On("SumPayments", mock.Anything, int64(55)).Return(50.0, nil).Once()
	env.invoices.On("AppendPaymentIfVersion", mock.Anything, int64(55), int64(2), mock.Anything, domain.InvoicePaid).
		Return(nil).Once()

	p, err = env.service.ApplyPayment(context.Background(), 55, 60, domain.PaymentCard)
	assert.NoError(t, err)
	assert.Equal(t, 60.0, p.Amount)
	env.invoices.AssertExpectations(t)
}

func TestApplyPayment_OverflowRejected(t *testing.T) {
	env := newBillingEnv()

	env.invoices.On("GetByID", mock.Anything, int64(55)).Return(&domain.Invoice{
		ID: 55, GrandTotal: 110, Status: domain.InvoicePaid, Version: 3,
	}, nil)
	env.invoices.On("SumPayments", mock.Anything, int64(55)).Return(110.0, nil)

	_, err := env.service.ApplyPayment(context.Background(), 55, 1, domain.PaymentCash)

	assert.ErrorIs(t, err, ErrPaymentOverflow)
	env.invoices.AssertNotCalled(t, "AppendPaymentIfVersion", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyPayment_ValidationRejected(t *testing.T) {
	env := newBillingEnv()

	_, err := env.service.ApplyPayment(context.Background(), 55, 0, domain.PaymentCash)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.service.ApplyPayment(context.Background(), 55, -5, domain.PaymentCard)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.service.ApplyPayment(context.Background(), 55, 10, domain.PaymentMethod("crypto"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestApplyPayment_RetriesOnVersionConflict(t *testing.T) {
	env := newBillingEnv()

	env.invoices.On("GetByID", mock.Anything, int64(55)).Return(&domain.Invoice{
		ID: 55, GrandTotal: 110, Version: 1,
	}, nil).Once()
	env.invoices.On("SumPayments", mock.Anything, int64(55)).Return(0.0, nil).Once()
	env.invoices.On("AppendPaymentIfVersion", mock.Anything, int64(55), int64(1), mock.Anything, mock.Anything).
		Return(repository.ErrVersionConflict).Once()

	// Concurrent payment bumped the version and paid part of the bill.
	env.invoices.On("GetByID", mock.Anything, int64(55)).Return(&domain.Invoice{
		ID: 55, GrandTotal: 110, Version: 2,
	}, nil).Once()
	env.invoices.On("SumPayments", mock.Anything, int64(55)).Return(50.0, nil).Once()
	env.invoices.On("AppendPaymentIfVersion", mock.Anything, int64(55), int64(2), mock.Anything, domain.InvoicePaid).
		Return(nil).Once()

	p, err := env.service.ApplyPayment(context.Background(), 55, 60, domain.PaymentTransfer)

	assert.NoError(t, err)
	assert.Equal(t, 60.0, p.Amount)
	env.invoices.AssertExpectations(t)
}

func TestAddCharge_ActiveBookingOnly(t *testing.T) {
	env := newBillingEnv()

	env.bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID: 7, Status: domain.BookingCheckedIn,
	}, nil)
	env.charges.On("Create", mock.Anything, mock.Anything).Return(nil)

	c, err := env.service.AddCharge(context.Background(), 7, AddChargeRequest{
		Category:  "laundry",
		UnitPrice: 15,
		Quantity:  2,
	})

	assert.NoError(t, err)
	assert.Equal(t, 30.0, c.Total())
}

func TestAddCharge_CompletedBookingRejected(t *testing.T) {
	env := newBillingEnv()

	env.bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID: 7, Status: domain.BookingCompleted,
	}, nil)

	_, err := env.service.AddCharge(context.Background(), 7, AddChargeRequest{
		Category:  "laundry",
		UnitPrice: 15,
		Quantity:  1,
	})

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestAddCharge_Validation(t *testing.T) {
	env := newBillingEnv()

	_, err := env.service.AddCharge(context.Background(), 7, AddChargeRequest{Category: "", UnitPrice: 5, Quantity: 1})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.service.AddCharge(context.Background(), 7, AddChargeRequest{Category: "spa", UnitPrice: -1, Quantity: 1})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.service.AddCharge(context.Background(), 7, AddChargeRequest{Category: "spa", UnitPrice: 5, Quantity: 0})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetInvoiceDetails_Balance(t *testing.T) {
	env := newBillingEnv()

	env.invoices.On("GetByID", mock.Anything, int64(55)).Return(&domain.Invoice{
		ID: 55, GrandTotal: 110, Status: domain.InvoicePartiallyPaid, Version: 2,
	}, nil)
	env.invoices.On("ListPayments", mock.Anything, int64(55)).Return([]domain.Payment{
		{ID: 1, InvoiceID: 55, Amount: 50, Method: domain.PaymentCash},
	}, nil)
	env.invoices.On("SumPayments", mock.Anything, int64(55)).Return(50.0, nil)

	details, err := env.service.GetInvoiceDetails(context.Background(), 55)

	assert.NoError(t, err)
	assert.Equal(t, 60.0, details.Balance)
	assert.Len(t, details.Payments, 1)
}

func TestGetInvoiceDetails_NotFound(t *testing.T) {
	env := newBillingEnv()

	env.invoices.On("GetByID", mock.Anything, int64(99)).Return(nil, repository.ErrNotFound)

	_, err := env.service.GetInvoiceDetails(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}
