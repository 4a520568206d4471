package repositories

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tarelfish/tarel-api/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Save(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *UserRepository) ListAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, err
}

// MaxUserCodeSequence returns the highest 4-digit sequence among existing
// user codes carrying the given two-digit year suffix. The "__" wildcard
// deliberately matches any area prefix: all areas registered in one year
// share a single counter. Suffix parsing happens here rather than in SQL so
// the query runs unchanged on MySQL and SQLite.
func (r *UserRepository) MaxUserCodeSequence(ctx context.Context, yearSuffix string) (int, error) {
	var codes []string
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("user_code IS NOT NULL AND user_code != ''").
		Where("user_code LIKE ?", "__"+yearSuffix+"%").
		Pluck("user_code", &codes).Error
	if err != nil {
		return 0, err
	}

	maxSeq := 0
	for _, code := range codes {
		if len(code) <= 4 {
			continue
		}
		seq, err := strconv.Atoi(code[4:])
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq, nil
}
