package repository

import (
	"context"
	"time"

	"github.com/mothernatural/wellness-backend/internal/model"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	MarkCompletedIfPending(ctx context.Context, id string, at time.Time) (int64, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	CountCompletedByUser(ctx context.Context, userID string) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// MarkCompletedIfPending flips pending -> completed and reports how many rows
// changed. A retried completion matches zero rows, which is the exactly-once
// gate for loyalty side effects.
func (r *orderRepository) MarkCompletedIfPending(ctx context.Context, id string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND status = ?", id, model.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":       model.OrderStatusCompleted,
			"completed_at": at,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	var list []model.Order
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *orderRepository) CountCompletedByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("user_id = ? AND status = ?", userID, model.OrderStatusCompleted).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
