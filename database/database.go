package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/tarelfish/tarel-api/models"
)

// Connect opens the MySQL connection pool. The returned *gorm.DB is owned by
// the caller and passed into repositories; no package-level state.
func Connect(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database DSN is not configured")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         glogger.Default.LogMode(glogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

// Migrate keeps the schema in sync with the entity structs.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CutCleanOption{},
		&models.Order{},
		&models.OrderItem{},
		&models.SupportMessage{},
		&models.SiteSetting{},
	)
}
