package db

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm" // GORM ORM library
)

// Migrate creates or updates the snapshot table
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing columns and indexes
	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		return err // Caller decides whether this is fatal
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
