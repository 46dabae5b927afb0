package repository

import (
	"context"
	"errors"

	"github.com/mothernatural/wellness-backend/internal/model"
	"gorm.io/gorm"
)

// ErrDuplicateReference means a credit with the same idempotency reference was
// already recorded; the caller should treat the retry as a no-op.
var ErrDuplicateReference = errors.New("duplicate point reference")

type PointRepository interface {
	Credit(ctx context.Context, userID string, amount int64, reason model.PointReason, reference *string) error
	Balance(ctx context.Context, userID string) (int64, error)
	ListByUser(ctx context.Context, userID string) ([]model.PointEntry, error)
}

type pointRepository struct {
	db *gorm.DB
}

func NewPointRepository(db *gorm.DB) PointRepository {
	return &pointRepository{db: db}
}

// Credit appends a ledger row and bumps the user's balance in one
// transaction. The unique index on reference turns retried credits for the
// same event into ErrDuplicateReference before any balance change.
func (r *pointRepository) Credit(ctx context.Context, userID string, amount int64, reason model.PointReason, reference *string) error {
	if amount <= 0 {
		return errors.New("amount must be positive")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry := model.PointEntry{
			UserID:    userID,
			Amount:    amount,
			Reason:    reason,
			Reference: reference,
		}
		if err := tx.Create(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateReference
			}
			return err
		}
		res := tx.Model(&model.User{}).
			Where("id = ?", userID).
			Update("points", gorm.Expr("points + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *pointRepository) Balance(ctx context.Context, userID string) (int64, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Select("points").Where("id = ?", userID).First(&u).Error; err != nil {
		return 0, err
	}
	return u.Points, nil
}

func (r *pointRepository) ListByUser(ctx context.Context, userID string) ([]model.PointEntry, error) {
	var list []model.PointEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
