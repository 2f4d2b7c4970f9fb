package repository

import (
	"context"
	"time"

	"hotelier/internal/domain"

	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

type invoiceModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	BookingID      int64     `gorm:"column:booking_id;uniqueIndex"`
	StayTotal      float64   `gorm:"column:stay_total"`
	ExtrasTotal    float64   `gorm:"column:extras_total"`
	DiscountAmount float64   `gorm:"column:discount_amount"`
	GrandTotal     float64   `gorm:"column:grand_total"`
	IssuedAt       time.Time `gorm:"column:issued_at"`
	Status         string    `gorm:"column:status"`
	Version        int64     `gorm:"column:version"`
}

func (invoiceModel) TableName() string { return "invoices" }

type paymentModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	InvoiceID int64     `gorm:"column:invoice_id;index"`
	Amount    float64   `gorm:"column:amount"`
	Method    string    `gorm:"column:method"`
	PaidAt    time.Time `gorm:"column:paid_at"`
}

func (paymentModel) TableName() string { return "payments" }

func toDomainInvoice(m invoiceModel) *domain.Invoice {
	return &domain.Invoice{
		ID:             m.ID,
		BookingID:      m.BookingID,
		StayTotal:      m.StayTotal,
		ExtrasTotal:    m.ExtrasTotal,
		DiscountAmount: m.DiscountAmount,
		GrandTotal:     m.GrandTotal,
		IssuedAt:       m.IssuedAt,
		Status:         domain.InvoiceStatus(m.Status),
		Version:        m.Version,
	}
}

func toDomainPayment(m paymentModel) *domain.Payment {
	return &domain.Payment{
		ID:        m.ID,
		InvoiceID: m.InvoiceID,
		Amount:    m.Amount,
		Method:    domain.PaymentMethod(m.Method),
		PaidAt:    m.PaidAt,
	}
}

// Create inserts a new invoice. The unique index on booking_id makes
// duplicate generation a ErrDuplicate, which the billing service
// resolves by returning the existing invoice.
func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	m := invoiceModel{
		BookingID:      inv.BookingID,
		StayTotal:      inv.StayTotal,
		ExtrasTotal:    inv.ExtrasTotal,
		DiscountAmount: inv.DiscountAmount,
		GrandTotal:     inv.GrandTotal,
		IssuedAt:       inv.IssuedAt,
		Status:         string(inv.Status),
		Version:        inv.Version,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*inv = *toDomainInvoice(m)
	return nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	var m invoiceModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainInvoice(m), nil
}

func (r *InvoiceRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Invoice, error) {
	var m invoiceModel
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainInvoice(m), nil
}

func (r *InvoiceRepository) SumPayments(ctx context.Context, invoiceID int64) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).Model(&paymentModel{}).
		Where("invoice_id = ?", invoiceID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, translate(err)
	}
	return sum, nil
}

func (r *InvoiceRepository) ListPayments(ctx context.Context, invoiceID int64) ([]domain.Payment, error) {
	var rows []paymentModel
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	out := make([]domain.Payment, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainPayment(m))
	}
	return out, nil
}

// AppendPaymentIfVersion records a payment and moves the invoice status
// in one transaction, conditional on the invoice version read by the
// caller. Losing the version race returns ErrVersionConflict so the
// service re-reads, re-checks the balance, and retries.
func (r *InvoiceRepository) AppendPaymentIfVersion(ctx context.Context, invoiceID, expectedVersion int64, p *domain.Payment, status domain.InvoiceStatus) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&invoiceModel{}).
			Where("id = ? AND version = ?", invoiceID, expectedVersion).
			Updates(map[string]any{
				"status":  string(status),
				"version": expectedVersion + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVersionConflict
		}

		m := paymentModel{
			InvoiceID: p.InvoiceID,
			Amount:    p.Amount,
			Method:    string(p.Method),
			PaidAt:    p.PaidAt,
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		*p = *toDomainPayment(m)
		return nil
	})
	return translate(err)
}
