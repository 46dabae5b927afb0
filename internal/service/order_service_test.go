package service

import (
	"context"
	"testing"

	"github.com/mothernatural/wellness-backend/internal/model"
	"github.com/stretchr/testify/require"
)

func TestCompleteOrderRunsSideEffectsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := createUser(t, f.gdb, "Maya", nil)
	sess := f.startGame(t, u.ID)
	f.setGrowth(t, sess.ID, 40)

	o, err := f.order.Create(ctx, u.ID, 75_00, 75_00)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusPending, o.Status)

	done, err := f.order.Complete(ctx, o.ID, u.ID, false)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)

	// 75 points for a $75 subtotal, +10% growth for crossing the $50 line.
	require.Equal(t, int64(75), userPoints(t, f, u.ID))
	status, err := f.game.Current(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, 50, status.Session.GrowthPercentage)

	// A retried completion changes nothing.
	done, err = f.order.Complete(ctx, o.ID, u.ID, false)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusCompleted, done.Status)
	require.Equal(t, int64(75), userPoints(t, f, u.ID))
	status, err = f.game.Current(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, 50, status.Session.GrowthPercentage)

	stats, err := f.loyalty.Stats(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.OrderCount)
}

func TestCompleteOrderWithoutSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := createUser(t, f.gdb, "Maya", nil)

	o, err := f.order.Create(ctx, u.ID, 20_00, 20_00)
	require.NoError(t, err)

	// No plant growing; the order still completes and points still land.
	done, err := f.order.Complete(ctx, o.ID, u.ID, false)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusCompleted, done.Status)
	require.Equal(t, int64(20), userPoints(t, f, u.ID))
}

func TestCompleteOrderAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := createUser(t, f.gdb, "Maya", nil)
	other := createUser(t, f.gdb, "Noah", nil)

	o, err := f.order.Create(ctx, owner.ID, 10_00, 10_00)
	require.NoError(t, err)

	_, err = f.order.Complete(ctx, o.ID, other.ID, false)
	require.ErrorIs(t, err, ErrForbidden)

	// Admins may finalize anyone's order.
	done, err := f.order.Complete(ctx, o.ID, other.ID, true)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusCompleted, done.Status)
	require.Equal(t, int64(10), userPoints(t, f, owner.ID))
}

func TestCompleteUnknownOrder(t *testing.T) {
	f := newFixture(t)
	_, err := f.order.Complete(context.Background(), "nope", "anyone", true)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrderValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := createUser(t, f.gdb, "Maya", nil)

	_, err := f.order.Create(ctx, u.ID, 0, 0)
	require.Error(t, err)
	_, err = f.order.Create(ctx, u.ID, 10_00, -1)
	require.Error(t, err)
}

func TestPointsUseSubtotalNotDiscountedTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := createUser(t, f.gdb, "Maya", nil)

	// $60 subtotal with a $15 discount still earns 60 points.
	o, err := f.order.Create(ctx, u.ID, 60_00, 45_00)
	require.NoError(t, err)
	_, err = f.order.Complete(ctx, o.ID, u.ID, false)
	require.NoError(t, err)
	require.Equal(t, int64(60), userPoints(t, f, u.ID))
}

func TestListByUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := createUser(t, f.gdb, "Maya", nil)
	other := createUser(t, f.gdb, "Noah", nil)

	for _, cents := range []int64{10_00, 20_00} {
		_, err := f.order.Create(ctx, u.ID, cents, cents)
		require.NoError(t, err)
	}
	_, err := f.order.Create(ctx, other.ID, 30_00, 30_00)
	require.NoError(t, err)

	mine, err := f.order.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, o := range mine {
		require.Equal(t, u.ID, o.UserID)
	}
}
