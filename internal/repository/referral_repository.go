package repository

import (
	"context"
	"errors"

	"github.com/mothernatural/wellness-backend/internal/model"
	"gorm.io/gorm"
)

var ErrDuplicatePair = errors.New("referral pair already recorded")

type ReferralRepository interface {
	Create(ctx context.Context, rec *model.ReferralRecord) error
	CountByReferrer(ctx context.Context, referrerID string) (int64, error)
}

type referralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) ReferralRepository {
	return &referralRepository{db: db}
}

func (r *referralRepository) Create(ctx context.Context, rec *model.ReferralRecord) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicatePair
		}
		return err
	}
	return nil
}

func (r *referralRepository) CountByReferrer(ctx context.Context, referrerID string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&model.ReferralRecord{}).
		Where("referrer_id = ?", referrerID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
