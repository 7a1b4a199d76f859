package database

import (
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL driver
	_ "github.com/jinzhu/gorm/dialects/sqlite"   // SQLite driver

	"tally/internal/models"
)

var db *gorm.DB

// InitDB opens the database connection. Driver is "sqlite3" or
// "postgres"; the DSN is driver-specific.
func InitDB(driver, dsn string) error {
	var err error
	db, err = gorm.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	db.DB().SetMaxIdleConns(10)
	db.DB().SetMaxOpenConns(100)
	db.DB().SetConnMaxLifetime(time.Hour)

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}

// CloseDB closes the database connection
func CloseDB() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// Migrate creates and updates all tables for the inventory schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Material{},
		&models.Product{},
		&models.BOMLink{},
		&models.Order{},
		&models.OrderItem{},
		&models.QueueEntry{},
		&models.Shortage{},
		&models.Integration{},
	).Error
}
