package repository

import (
	"context"
	"time"

	"hotelier/internal/domain"

	"gorm.io/gorm"
)

type PromotionRepository struct {
	db *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) *PromotionRepository {
	return &PromotionRepository{db: db}
}

type promotionModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	Code            string    `gorm:"column:code;uniqueIndex"`
	DiscountPercent float64   `gorm:"column:discount_percent"`
	ValidFrom       time.Time `gorm:"column:valid_from"`
	ValidUntil      time.Time `gorm:"column:valid_until"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (promotionModel) TableName() string { return "promotions" }

func toDomainPromotion(m promotionModel) *domain.Promotion {
	return &domain.Promotion{
		ID:              m.ID,
		Code:            m.Code,
		DiscountPercent: m.DiscountPercent,
		ValidFrom:       m.ValidFrom,
		ValidUntil:      m.ValidUntil,
		CreatedAt:       m.CreatedAt,
	}
}

func (r *PromotionRepository) Create(ctx context.Context, p *domain.Promotion) error {
	m := promotionModel{
		Code:            p.Code,
		DiscountPercent: p.DiscountPercent,
		ValidFrom:       p.ValidFrom,
		ValidUntil:      p.ValidUntil,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*p = *toDomainPromotion(m)
	return nil
}

func (r *PromotionRepository) GetByID(ctx context.Context, id int64) (*domain.Promotion, error) {
	var m promotionModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainPromotion(m), nil
}

func (r *PromotionRepository) GetByCode(ctx context.Context, code string) (*domain.Promotion, error) {
	var m promotionModel
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainPromotion(m), nil
}

// ListActive returns promotions whose validity window covers t.
func (r *PromotionRepository) ListActive(ctx context.Context, t time.Time) ([]domain.Promotion, error) {
	var rows []promotionModel
	err := r.db.WithContext(ctx).
		Where("valid_from <= ? AND valid_until >= ?", t, t).
		Order("code").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	out := make([]domain.Promotion, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainPromotion(m))
	}
	return out, nil
}
