package database

import (
	"gorm.io/gorm"

	"github.com/nkozi444/CampusGo/internal/models"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.User{},
		&models.Booking{},
		&models.Vehicle{},
		&models.Driver{},
	)
	if err != nil {
		return err
	}

	// Update users table
	if db.Migrator().HasTable(&models.User{}) {
		columns := []string{
			"ADD COLUMN IF NOT EXISTS role text DEFAULT 'user'",
		}

		for _, column := range columns {
			if err := db.Exec("ALTER TABLE users " + column).Error; err != nil {
				return err
			}
		}

		// Update constraint
		db.Exec(`ALTER TABLE users DROP CONSTRAINT IF EXISTS users_role_check`)
		db.Exec(`ALTER TABLE users ADD CONSTRAINT users_role_check CHECK (role IN ('user', 'admin', 'superadmin'))`)
	}

	// Keep booking statuses inside the four-state machine at the schema
	// level too; reads still normalize unknown values to pending.
	if db.Migrator().HasTable(&models.Booking{}) {
		db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_status_check`)
		db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_status_check CHECK (status IN ('pending', 'approved', 'completed', 'cancelled'))`)
	}

	if db.Migrator().HasTable(&models.Vehicle{}) {
		db.Exec(`ALTER TABLE vehicles DROP CONSTRAINT IF EXISTS vehicles_status_check`)
		db.Exec(`ALTER TABLE vehicles ADD CONSTRAINT vehicles_status_check CHECK (status IN ('available', 'assigned', 'maintenance', 'unavailable'))`)
	}

	if db.Migrator().HasTable(&models.Driver{}) {
		db.Exec(`ALTER TABLE drivers DROP CONSTRAINT IF EXISTS drivers_status_check`)
		db.Exec(`ALTER TABLE drivers ADD CONSTRAINT drivers_status_check CHECK (status IN ('available', 'assigned', 'offduty'))`)
	}

	return nil
}
