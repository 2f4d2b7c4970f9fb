package repository

import (
	"context"
	"time"

	"hotelier/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID           int64      `gorm:"column:id;primaryKey"`
	GuestID      int64      `gorm:"column:guest_id;index"`
	RoomID       int64      `gorm:"column:room_id;index:idx_bookings_room_range"`
	PromotionID  *int64     `gorm:"column:promotion_id"`
	ReservedAt   time.Time  `gorm:"column:reserved_at"`
	CheckInDate  time.Time  `gorm:"column:check_in_date;index:idx_bookings_room_range"`
	CheckOutDate time.Time  `gorm:"column:check_out_date"`
	Occupants    int        `gorm:"column:occupants"`
	Status       string     `gorm:"column:status;index"`
	Version      int64      `gorm:"column:version"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
	CancelledAt  *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:           m.ID,
		GuestID:      m.GuestID,
		RoomID:       m.RoomID,
		PromotionID:  m.PromotionID,
		ReservedAt:   m.ReservedAt,
		CheckInDate:  m.CheckInDate,
		CheckOutDate: m.CheckOutDate,
		Occupants:    m.Occupants,
		Status:       domain.BookingStatus(m.Status),
		Version:      m.Version,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		CancelledAt:  m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:           b.ID,
		GuestID:      b.GuestID,
		RoomID:       b.RoomID,
		PromotionID:  b.PromotionID,
		ReservedAt:   b.ReservedAt,
		CheckInDate:  b.CheckInDate,
		CheckOutDate: b.CheckOutDate,
		Occupants:    b.Occupants,
		Status:       string(b.Status),
		Version:      b.Version,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
		CancelledAt:  b.CancelledAt,
	}
}

// activeStatuses are the statuses that hold a room's date range.
var activeStatuses = []string{
	string(domain.BookingReserved),
	string(domain.BookingCheckedIn),
}

// overlapQuery builds the half-open interval conflict predicate:
// existing.check_in < checkOut AND existing.check_out > checkIn.
func overlapQuery(tx *gorm.DB, roomID int64, checkIn, checkOut time.Time, excludeID *int64) *gorm.DB {
	q := tx.Model(&bookingModel{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", activeStatuses).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	return q
}

// CreateIfFree runs the availability re-check and the insert as one
// transaction so two concurrent creations for overlapping ranges on the
// same room cannot both commit. The Postgres exclusion constraint
// (translate maps it to ErrOverlap) is the backstop below the
// transaction.
func (r *BookingRepository) CreateIfFree(ctx context.Context, b *domain.Booking) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := overlapQuery(tx, b.RoomID, b.CheckInDate, b.CheckOutDate, nil).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return ErrOverlap
		}

		m := toBookingModel(b)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		*b = *toDomainBooking(m)
		return nil
	})
	return translate(err)
}

// UpdateIfFree persists an edited booking all-or-nothing: the overlap
// re-check excludes the booking's own id, and the write is conditional
// on the version read before validation.
func (r *BookingRepository) UpdateIfFree(ctx context.Context, b *domain.Booking, expectedVersion int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := overlapQuery(tx, b.RoomID, b.CheckInDate, b.CheckOutDate, &b.ID).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return ErrOverlap
		}

		res := tx.Model(&bookingModel{}).
			Where("id = ? AND version = ?", b.ID, expectedVersion).
			Updates(map[string]any{
				"guest_id":       b.GuestID,
				"room_id":        b.RoomID,
				"promotion_id":   b.PromotionID,
				"check_in_date":  b.CheckInDate,
				"check_out_date": b.CheckOutDate,
				"occupants":      b.Occupants,
				"version":        expectedVersion + 1,
				"updated_at":     time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVersionConflict
		}
		b.Version = expectedVersion + 1
		return nil
	})
	return translate(err)
}

// UpdateStatusIfVersion performs an optimistic status transition.
func (r *BookingRepository) UpdateStatusIfVersion(ctx context.Context, id, expectedVersion int64, status domain.BookingStatus, cancelledAt *time.Time) error {
	fields := map[string]any{
		"status":     string(status),
		"version":    expectedVersion + 1,
		"updated_at": time.Now().UTC(),
	}
	if cancelledAt != nil {
		fields["cancelled_at"] = cancelledAt
	}
	res := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(fields)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&bookingModel{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID int64, limit, offset int) ([]domain.Booking, error) {
	var rows []bookingModel
	q := r.db.WithContext(ctx).Where("guest_id = ?", guestID).Order("check_in_date DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainBookings(rows), nil
}

// HasOverlap reports whether any reserved/checked-in booking on the
// room conflicts with the half-open range, ignoring excludeID.
func (r *BookingRepository) HasOverlap(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeID *int64) (bool, error) {
	var cnt int64
	if err := overlapQuery(r.db.WithContext(ctx), roomID, checkIn, checkOut, excludeID).Count(&cnt).Error; err != nil {
		return false, translate(err)
	}
	return cnt > 0, nil
}

// FindBookedRoomIDs returns ids of rooms with a conflicting
// reserved/checked-in booking in the range.
func (r *BookingRepository) FindBookedRoomIDs(ctx context.Context, checkIn, checkOut time.Time, excludeID *int64) ([]int64, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("status IN ?", activeStatuses).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var ids []int64
	if err := q.Distinct("room_id").Pluck("room_id", &ids).Error; err != nil {
		return nil, translate(err)
	}
	return ids, nil
}

// ListActiveByRoom returns the reserved/checked-in bookings for a room,
// the input to the coarse room status projection.
func (r *BookingRepository) ListActiveByRoom(ctx context.Context, roomID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Where("status IN ?", activeStatuses).
		Order("check_in_date").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return toDomainBookings(rows), nil
}

// ListNoShows returns reserved bookings whose check-in date is strictly
// before today. Bookings checking in today are not no-shows yet.
func (r *BookingRepository) ListNoShows(ctx context.Context, today time.Time) ([]domain.Booking, error) {
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.BookingReserved)).
		Where("check_in_date < ?", today).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return toDomainBookings(rows), nil
}

// ExistsNonCancelledForGuest backs the guest deletion guard.
func (r *BookingRepository) ExistsNonCancelledForGuest(ctx context.Context, guestID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("guest_id = ?", guestID).
		Where("status <> ?", string(domain.BookingCancelled)).
		Count(&cnt).Error
	if err != nil {
		return false, translate(err)
	}
	return cnt > 0, nil
}

// ExistsNonCancelledForRoom backs the room deletion guard.
func (r *BookingRepository) ExistsNonCancelledForRoom(ctx context.Context, roomID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("room_id = ?", roomID).
		Where("status <> ?", string(domain.BookingCancelled)).
		Count(&cnt).Error
	if err != nil {
		return false, translate(err)
	}
	return cnt > 0, nil
}

func toDomainBookings(rows []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out
}
