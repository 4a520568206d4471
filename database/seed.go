package database

import (
	"gorm.io/gorm"

	"github.com/tarelfish/tarel-api/models"
	"github.com/tarelfish/tarel-api/services"
)

// Seed loads a starter data set on an empty database: one admin, one demo
// customer, the two fish categories and a handful of products. It is a no-op
// once any user exists.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	adminHash, err := services.HashPassword("admin123")
	if err != nil {
		return err
	}
	customerHash, err := services.HashPassword("customer123")
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		admin := models.User{
			Name:         "Admin",
			Email:        "admin@tarel.local",
			PasswordHash: adminHash,
			Role:         models.RoleAdmin,
			UserCode:     "ED000001",
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		customer := models.User{
			Name:         "Nina Robertson",
			Email:        "customer@tarel.local",
			PasswordHash: customerHash,
			Role:         models.RoleUser,
			UserCode:     "ED000002",
		}
		if err := tx.Create(&customer).Error; err != nil {
			return err
		}

		fresh := models.Category{Name: "Fresh Fish", Slug: "fresh-fish", IsActive: true}
		dry := models.Category{Name: "Dry Fish", Slug: "dry-fish", IsActive: true}
		if err := tx.Create(&fresh).Error; err != nil {
			return err
		}
		if err := tx.Create(&dry).Error; err != nil {
			return err
		}

		products := []models.Product{
			{Name: "Yellowfin Tuna", Slug: "yellowfin-tuna", PricePerKg: 18.5, StockKg: 25, CategoryID: fresh.ID, IsActive: true},
			{Name: "King Fish (Seer)", Slug: "king-fish-seer", PricePerKg: 22.0, StockKg: 18, CategoryID: fresh.ID, IsActive: true},
			{Name: "Atlantic Salmon", Slug: "atlantic-salmon", PricePerKg: 16.0, StockKg: 30, CategoryID: fresh.ID, IsActive: true},
			{Name: "Dried Anchovy", Slug: "dried-anchovy", PricePerKg: 12.5, StockKg: 40, CategoryID: dry.ID, IsDry: true, IsActive: true},
			{Name: "Dried Shrimp", Slug: "dried-shrimp", PricePerKg: 21.0, StockKg: 15, CategoryID: dry.ID, IsDry: true, IsActive: true},
		}
		if err := tx.Create(&products).Error; err != nil {
			return err
		}

		options := []models.CutCleanOption{
			{Label: "Whole (no cut)", IsActive: true, SortOrder: 1},
			{Label: "Gutted & cleaned", IsActive: true, SortOrder: 2},
			{Label: "Steaks", IsActive: true, SortOrder: 3},
			{Label: "Filleted", IsActive: true, SortOrder: 4},
		}
		return tx.Create(&options).Error
	})
}
