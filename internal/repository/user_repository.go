package repository

import (
	"context"
	"time"

	"github.com/mothernatural/wellness-backend/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByReferralCode(ctx context.Context, code string) (*model.User, error)
	SetReferralCodeIfEmpty(ctx context.Context, id, code string) (int64, error)
	SetLastSignInAt(ctx context.Context, id string, at time.Time) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindByReferralCode(ctx context.Context, code string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("referral_code = ?", code).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// SetReferralCodeIfEmpty assigns the code only when the user has none yet, so
// concurrent generate requests cannot overwrite an already issued code.
func (r *userRepository) SetReferralCodeIfEmpty(ctx context.Context, id, code string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND referral_code IS NULL", id).
		Update("referral_code", code)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *userRepository) SetLastSignInAt(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("last_sign_in_at", at).Error
}
