package repository

import (
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"

	"gorm.io/gorm"
)

// bookingsNoOverlap rejects two bookings of the same unit whose [check_in,
// check_out) nights intersect. Requires btree_gist for the equality on unit.
const bookingsNoOverlap = `
CREATE EXTENSION IF NOT EXISTS btree_gist;
DO $$
BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap') THEN
    ALTER TABLE bookings
      ADD CONSTRAINT bookings_no_overlap
      EXCLUDE USING gist (unit WITH =, daterange(check_in, check_out, '[)') WITH &&);
  END IF;
END
$$;`

// BookingsNoOverlapConstraint is the constraint name reported in PostgreSQL errors.
const BookingsNoOverlapConstraint = "bookings_no_overlap"

// Migrate creates or updates every table. The overlap constraint is only
// installed on PostgreSQL.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.User{},
		&domain.Apartment{},
		&bookingModel{},
		&blockModel{},
		&domain.Expense{},
		&domain.Contract{},
		&domain.Schedule{},
		&domain.ScheduleLog{},
		&domain.PaymentReceipt{},
	)
	if err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		return db.Exec(bookingsNoOverlap).Error
	}
	return nil
}
