package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tarelfish/tarel-api/models"
)

type SupportRepository struct {
	db *gorm.DB
}

func NewSupportRepository(db *gorm.DB) *SupportRepository {
	return &SupportRepository{db: db}
}

func (r *SupportRepository) Create(ctx context.Context, message *models.SupportMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *SupportRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SupportMessage, error) {
	var messages []models.SupportMessage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}

func (r *SupportRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.SupportMessage, error) {
	var message models.SupportMessage
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *SupportRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.SupportMessage, error) {
	var message models.SupportMessage
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *SupportRepository) ListAll(ctx context.Context) ([]models.SupportMessage, error) {
	var messages []models.SupportMessage
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}

func (r *SupportRepository) Save(ctx context.Context, message *models.SupportMessage) error {
	return r.db.WithContext(ctx).Save(message).Error
}
