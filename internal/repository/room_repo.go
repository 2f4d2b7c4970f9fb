package repository

import (
	"context"
	"time"

	"hotelier/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	Number        string    `gorm:"column:number;uniqueIndex"`
	Type          string    `gorm:"column:type"`
	Capacity      int       `gorm:"column:capacity"`
	PricePerNight float64   `gorm:"column:price_per_night"`
	Status        string    `gorm:"column:status"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	return &domain.Room{
		ID:            m.ID,
		Number:        m.Number,
		Type:          domain.RoomType(m.Type),
		Capacity:      m.Capacity,
		PricePerNight: m.PricePerNight,
		Status:        domain.RoomStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toRoomModel(r *domain.Room) roomModel {
	return roomModel{
		ID:            r.ID,
		Number:        r.Number,
		Type:          string(r.Type),
		Capacity:      r.Capacity,
		PricePerNight: r.PricePerNight,
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) GetByNumber(ctx context.Context, number string) (*domain.Room, error) {
	var m roomModel
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainRoom(m), nil
}

// FindByFilter lists rooms narrowed by type and minimum capacity.
// Maintenance rooms are excluded when includeMaintenance is false.
func (r *RoomRepository) FindByFilter(ctx context.Context, roomType *domain.RoomType, minCapacity int, includeMaintenance bool) ([]domain.Room, error) {
	q := r.db.WithContext(ctx).Model(&roomModel{})
	if roomType != nil {
		q = q.Where("type = ?", string(*roomType))
	}
	if minCapacity > 0 {
		q = q.Where("capacity >= ?", minCapacity)
	}
	if !includeMaintenance {
		q = q.Where("status <> ?", string(domain.RoomMaintenance))
	}

	var rows []roomModel
	if err := q.Order("number").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]domain.Room, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).Model(&roomModel{}).Where("id = ?", m.ID).Updates(map[string]any{
		"number":          m.Number,
		"type":            m.Type,
		"capacity":        m.Capacity,
		"price_per_night": m.PricePerNight,
		"updated_at":      time.Now().UTC(),
	})
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RoomRepository) UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	tx := r.db.WithContext(ctx).Model(&roomModel{}).Where("id = ?", id).Updates(map[string]any{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	})
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&roomModel{}, id)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
