package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tarelfish/tarel-api/models"
)

type CutCleanOptionRepository struct {
	db *gorm.DB
}

func NewCutCleanOptionRepository(db *gorm.DB) *CutCleanOptionRepository {
	return &CutCleanOptionRepository{db: db}
}

func (r *CutCleanOptionRepository) ListActive(ctx context.Context) ([]models.CutCleanOption, error) {
	var options []models.CutCleanOption
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC, label ASC").
		Find(&options).Error
	return options, err
}

func (r *CutCleanOptionRepository) ListAll(ctx context.Context) ([]models.CutCleanOption, error) {
	var options []models.CutCleanOption
	err := r.db.WithContext(ctx).Order("sort_order ASC, label ASC").Find(&options).Error
	return options, err
}

func (r *CutCleanOptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.CutCleanOption, error) {
	var option models.CutCleanOption
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&option).Error
	if err != nil {
		return nil, err
	}
	return &option, nil
}

func (r *CutCleanOptionRepository) Create(ctx context.Context, option *models.CutCleanOption) error {
	return r.db.WithContext(ctx).Create(option).Error
}

func (r *CutCleanOptionRepository) Save(ctx context.Context, option *models.CutCleanOption) error {
	return r.db.WithContext(ctx).Save(option).Error
}

func (r *CutCleanOptionRepository) Delete(ctx context.Context, option *models.CutCleanOption) error {
	return r.db.WithContext(ctx).Delete(option).Error
}
