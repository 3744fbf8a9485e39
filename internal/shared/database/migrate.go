package database

import (
	"roomly/internal/reservations"
	"roomly/internal/roomtypes"
	"roomly/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&roomtypes.RoomTypeConfig{},
		&reservations.Reservation{},
	)
}
