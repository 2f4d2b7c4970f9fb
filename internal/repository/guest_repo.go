package repository

import (
	"context"
	"time"

	"hotelier/internal/domain"

	"gorm.io/gorm"
)

type GuestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

type guestModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	FullName   string    `gorm:"column:full_name"`
	Phone      string    `gorm:"column:phone"`
	Email      string    `gorm:"column:email"`
	IDDocument string    `gorm:"column:id_document;uniqueIndex"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (guestModel) TableName() string { return "guests" }

func toDomainGuest(m guestModel) *domain.Guest {
	return &domain.Guest{
		ID:         m.ID,
		FullName:   m.FullName,
		Phone:      m.Phone,
		Email:      m.Email,
		IDDocument: m.IDDocument,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r *GuestRepository) Create(ctx context.Context, g *domain.Guest) error {
	m := guestModel{
		FullName:   g.FullName,
		Phone:      g.Phone,
		Email:      g.Email,
		IDDocument: g.IDDocument,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*g = *toDomainGuest(m)
	return nil
}

func (r *GuestRepository) GetByID(ctx context.Context, id int64) (*domain.Guest, error) {
	var m guestModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainGuest(m), nil
}

func (r *GuestRepository) GetByDocument(ctx context.Context, document string) (*domain.Guest, error) {
	var m guestModel
	if err := r.db.WithContext(ctx).Where("id_document = ?", document).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainGuest(m), nil
}

func (r *GuestRepository) List(ctx context.Context, limit, offset int) ([]domain.Guest, error) {
	var rows []guestModel
	q := r.db.WithContext(ctx).Order("id")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]domain.Guest, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainGuest(m))
	}
	return out, nil
}

func (r *GuestRepository) Update(ctx context.Context, g *domain.Guest) error {
	tx := r.db.WithContext(ctx).Model(&guestModel{}).Where("id = ?", g.ID).Updates(map[string]any{
		"full_name":   g.FullName,
		"phone":       g.Phone,
		"email":       g.Email,
		"id_document": g.IDDocument,
		"updated_at":  time.Now().UTC(),
	})
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GuestRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&guestModel{}, id)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
