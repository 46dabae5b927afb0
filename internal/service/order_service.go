package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mothernatural/wellness-backend/internal/model"
	"github.com/mothernatural/wellness-backend/internal/repository"
	"gorm.io/gorm"
)

type OrderService interface {
	Create(ctx context.Context, userID string, subtotalCents, totalCents int64) (*model.Order, error)
	Complete(ctx context.Context, orderID, callerID string, callerAdmin bool) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
}

type orderService struct {
	orders  repository.OrderRepository
	loyalty LoyaltyService
	game    GameService
	now     func() time.Time
}

func NewOrderService(orders repository.OrderRepository, loyalty LoyaltyService, game GameService) OrderService {
	return &orderService{
		orders:  orders,
		loyalty: loyalty,
		game:    game,
		now:     time.Now,
	}
}

func (s *orderService) Create(ctx context.Context, userID string, subtotalCents, totalCents int64) (*model.Order, error) {
	if subtotalCents <= 0 {
		return nil, errors.New("subtotal must be positive")
	}
	if totalCents < 0 {
		return nil, errors.New("total cannot be negative")
	}
	o := &model.Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		SubtotalCents: subtotalCents,
		TotalCents:    totalCents,
		Status:        model.OrderStatusPending,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Complete finalizes an order and runs the loyalty side effects exactly once:
// the pending->completed conditional update is the gate, so a retried call
// (duplicate webhook, double click) changes nothing.
func (s *orderService) Complete(ctx context.Context, orderID, callerID string, callerAdmin bool) (*model.Order, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !callerAdmin && o.UserID != callerID {
		return nil, ErrForbidden
	}

	rows, err := s.orders.MarkCompletedIfPending(ctx, orderID, s.now())
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Already finalized; the side effects ran on the winning call.
		return s.orders.FindByID(ctx, orderID)
	}

	if _, err := s.loyalty.CreditOrderPoints(ctx, o.UserID, o.ID, o.SubtotalCents); err != nil {
		return nil, err
	}
	if err := s.game.PurchaseBoost(ctx, o.UserID, o.ID, o.SubtotalCents); err != nil {
		if !errors.Is(err, ErrNoActiveSession) && !errors.Is(err, ErrSessionNotActive) {
			return nil, err
		}
	}
	return s.orders.FindByID(ctx, orderID)
}

func (s *orderService) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}
