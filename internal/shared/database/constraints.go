package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds indexes the overlap queries depend on. Every
// availability probe and insertion gate filters reservations by category
// and window bounds, so these have to exist before the service takes
// traffic.
func MigrateConstraints(db *gorm.DB) error {
	// Composite index driving "start_time < X AND end_time > Y" scans
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reservations_window_scan
		ON reservations (room_category, start_time, end_time);
	`).Error
	if err != nil {
		return err
	}

	// Neighbor lookups order by end_time within a category
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reservations_category_end
		ON reservations (room_category, end_time);
	`).Error
	if err != nil {
		return err
	}

	// Intervals are half-open; a zero-width row would never overlap
	// anything and only confuses the sweep, so reject it at the table
	err = db.Exec(`
		DO $$ BEGIN
			ALTER TABLE reservations
			ADD CONSTRAINT chk_reservations_window CHECK (start_time < end_time);
		EXCEPTION
			WHEN duplicate_object THEN NULL;
		END $$;
	`).Error
	if err != nil {
		return err
	}

	return nil
}
