package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the schema for every table the
// repositories use.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&roomModel{},
		&guestModel{},
		&promotionModel{},
		&bookingModel{},
		&chargeModel{},
		&invoiceModel{},
		&paymentModel{},
	)
}

// EnsureNoOverbookingConstraint installs the Postgres exclusion
// constraint that backs CreateIfFree against races the transactional
// check cannot see. SQLite has no equivalent; the transactional check
// is the only guard there.
func EnsureNoOverbookingConstraint(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}

	return db.Exec(`
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap'
    ) THEN
        ALTER TABLE bookings
            ADD CONSTRAINT bookings_no_overlap
            EXCLUDE USING gist (
                room_id WITH =,
                daterange(check_in_date::date, check_out_date::date, '[)') WITH &&
            )
            WHERE (status IN ('reserved', 'checked_in'));
    END IF;
END
$$`).Error
}
