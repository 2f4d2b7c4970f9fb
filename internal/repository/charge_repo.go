package repository

import (
	"context"
	"time"

	"hotelier/internal/domain"

	"gorm.io/gorm"
)

type ChargeRepository struct {
	db *gorm.DB
}

func NewChargeRepository(db *gorm.DB) *ChargeRepository {
	return &ChargeRepository{db: db}
}

type chargeModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	BookingID   int64     `gorm:"column:booking_id;index"`
	Category    string    `gorm:"column:category"`
	Description string    `gorm:"column:description"`
	UnitPrice   float64   `gorm:"column:unit_price"`
	Quantity    int       `gorm:"column:quantity"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (chargeModel) TableName() string { return "extra_charges" }

func toDomainCharge(m chargeModel) *domain.ExtraCharge {
	return &domain.ExtraCharge{
		ID:          m.ID,
		BookingID:   m.BookingID,
		Category:    m.Category,
		Description: m.Description,
		UnitPrice:   m.UnitPrice,
		Quantity:    m.Quantity,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *ChargeRepository) Create(ctx context.Context, c *domain.ExtraCharge) error {
	m := chargeModel{
		BookingID:   c.BookingID,
		Category:    c.Category,
		Description: c.Description,
		UnitPrice:   c.UnitPrice,
		Quantity:    c.Quantity,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*c = *toDomainCharge(m)
	return nil
}

func (r *ChargeRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.ExtraCharge, error) {
	var rows []chargeModel
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	out := make([]domain.ExtraCharge, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainCharge(m))
	}
	return out, nil
}
