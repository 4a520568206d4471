package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tarelfish/tarel-api/models"
)

type SiteSettingRepository struct {
	db *gorm.DB
}

func NewSiteSettingRepository(db *gorm.DB) *SiteSettingRepository {
	return &SiteSettingRepository{db: db}
}

// Get returns nil, nil when the key is absent.
func (r *SiteSettingRepository) Get(ctx context.Context, key string) (*models.SiteSetting, error) {
	var setting models.SiteSetting
	err := r.db.WithContext(ctx).Where("`key` = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Set writes value under key, creating the row if needed.
func (r *SiteSettingRepository) Set(ctx context.Context, key, value string) (*models.SiteSetting, error) {
	var setting models.SiteSetting
	err := r.db.WithContext(ctx).Where("`key` = ?", key).First(&setting).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = models.SiteSetting{Key: key, Value: value}
		if err := r.db.WithContext(ctx).Create(&setting).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		setting.Value = value
		setting.UpdatedAt = time.Now().UTC()
		if err := r.db.WithContext(ctx).Save(&setting).Error; err != nil {
			return nil, err
		}
	}
	return &setting, nil
}

// Delete removes a key; absent keys are not an error.
func (r *SiteSettingRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("`key` = ?", key).Delete(&models.SiteSetting{}).Error
}
