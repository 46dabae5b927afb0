package repository

import (
	"context"
	"errors"

	"github.com/mothernatural/wellness-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrActiveExists surfaces the unique active_user_id index: the user already
// has a non-terminal session, so the losing concurrent start must fail.
var ErrActiveExists = errors.New("active session exists")

type GrowthSessionRepository interface {
	Create(ctx context.Context, s *model.GrowthSession) error
	FindActiveByUser(ctx context.Context, userID string) (*model.GrowthSession, error)
	ListByUser(ctx context.Context, userID string) ([]model.GrowthSession, error)
	// MutateActiveForUser locks the user's active session row and runs fn
	// inside the transaction. Growth contributions are read-modify-write, so
	// every mutation goes through this to serialize concurrent events.
	MutateActiveForUser(ctx context.Context, userID string, fn func(tx *gorm.DB, s *model.GrowthSession) error) error
	CreateEvent(tx *gorm.DB, ev *model.GrowthEvent) error
	Save(tx *gorm.DB, s *model.GrowthSession) error
}

type growthSessionRepository struct {
	db *gorm.DB
}

func NewGrowthSessionRepository(db *gorm.DB) GrowthSessionRepository {
	return &growthSessionRepository{db: db}
}

func (r *growthSessionRepository) Create(ctx context.Context, s *model.GrowthSession) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrActiveExists
		}
		return err
	}
	return nil
}

func (r *growthSessionRepository) FindActiveByUser(ctx context.Context, userID string) (*model.GrowthSession, error) {
	var s model.GrowthSession
	if err := r.db.WithContext(ctx).
		Where("active_user_id = ?", userID).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *growthSessionRepository) ListByUser(ctx context.Context, userID string) ([]model.GrowthSession, error) {
	var list []model.GrowthSession
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *growthSessionRepository) MutateActiveForUser(ctx context.Context, userID string, fn func(tx *gorm.DB, s *model.GrowthSession) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		// sqlite has no FOR UPDATE; its single-writer model serializes
		// transactions on its own.
		if tx.Dialector.Name() != "sqlite" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var s model.GrowthSession
		if err := q.Where("active_user_id = ?", userID).First(&s).Error; err != nil {
			return err
		}
		return fn(tx, &s)
	})
}

func (r *growthSessionRepository) CreateEvent(tx *gorm.DB, ev *model.GrowthEvent) error {
	return tx.Create(ev).Error
}

func (r *growthSessionRepository) Save(tx *gorm.DB, s *model.GrowthSession) error {
	return tx.Save(s).Error
}
