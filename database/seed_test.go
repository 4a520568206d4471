package database

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tarelfish/tarel-api/models"
)

func seedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestSeedPopulatesEmptyDatabase(t *testing.T) {
	db := seedTestDB(t)
	require.NoError(t, Seed(db))

	var users, categories, products, options int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Category{}).Count(&categories).Error)
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&models.CutCleanOption{}).Count(&options).Error)

	assert.EqualValues(t, 2, users)
	assert.EqualValues(t, 2, categories)
	assert.EqualValues(t, 5, products)
	assert.EqualValues(t, 4, options)

	var admin models.User
	require.NoError(t, db.First(&admin, "email = ?", "admin@tarel.local").Error)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NotEqual(t, "admin123", admin.PasswordHash)
}

func TestSeedIsIdempotent(t *testing.T) {
	db := seedTestDB(t)
	require.NoError(t, Seed(db))
	require.NoError(t, Seed(db))

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 2, users)
}
