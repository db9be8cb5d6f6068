package database

import (
	"gorm.io/gorm"

	"github.com/maninivas13/farmasthi/internal/models"
)

// Migrate applies the schema for all persisted models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Query{},
		&models.Notification{},
		&models.ChatMessage{},
	)
}
