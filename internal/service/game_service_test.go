package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mothernatural/wellness-backend/internal/model"
	"github.com/stretchr/testify/require"
)

func TestStartGame(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := createUser(t, f.gdb, "Amara", nil)
	cl := createClass(t, f.gdb, "Breathwork Circle")

	sess, err := f.game.Start(ctx, u.ID, StartGameInput{
		RewardType:      "class",
		RewardID:        cl.ID,
		RewardName:      cl.Name,
		ManifestationID: "abundance",
	})
	require.NoError(t, err)
	require.Equal(t, 0, sess.GrowthPercentage)
	require.Equal(t, model.GrowthStatusActive, sess.Status)
	require.Equal(t, 60, sess.TargetDays)
	require.Equal(t, f.now.AddDate(0, 0, 60), sess.EndDate)
	require.Equal(t, "Abundance", sess.ManifestationName)
	require.Equal(t, "Money Tree", sess.PlantType)
	require.NotEmpty(t, sess.PlantImage)

	// A second start while the first is active must lose.
	_, err = f.game.Start(ctx, u.ID, StartGameInput{
		RewardType:      "class",
		RewardID:        cl.ID,
		RewardName:      cl.Name,
		ManifestationID: "healing",
	})
	require.ErrorIs(t, err, ErrActiveSessionExists)
}

func TestStartGameValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := createUser(t, f.gdb, "Amara", nil)
	cl := createClass(t, f.gdb, "Sunrise Yoga")

	_, err := f.game.Start(ctx, u.ID, StartGameInput{
		RewardType: "cruise", RewardID: cl.ID, RewardName: cl.Name, ManifestationID: "abundance",
	})
	require.ErrorIs(t, err, ErrUnknownRewardType)

	_, err = f.game.Start(ctx, u.ID, StartGameInput{
		RewardType: "class", RewardID: cl.ID, RewardName: cl.Name, ManifestationID: "wealth",
	})
	require.ErrorIs(t, err, ErrUnknownManifestation)

	_, err = f.game.Start(ctx, u.ID, StartGameInput{
		RewardType: "class", RewardID: "no-such-class", RewardName: "x", ManifestationID: "abundance",
	})
	require.ErrorIs(t, err, ErrRewardNotFound)

	// The reward must belong to the chosen type.
	_, err = f.game.Start(ctx, u.ID, StartGameInput{
		RewardType: "product", RewardID: cl.ID, RewardName: cl.Name, ManifestationID: "abundance",
	})
	require.ErrorIs(t, err, ErrRewardNotFound)
}

func TestWaterPlant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := createUser(t, f.gdb, "Amara", nil)

	_, err := f.game.Water(ctx, u.ID)
	require.ErrorIs(t, err, ErrNoActiveSession)

	f.startGame(t, u.ID)

	res, err := f.game.Water(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, 1, res.GrowthAdded)
	require.Equal(t, 1, res.NewGrowth)
	require.Equal(t, 1, res.WaterCount)
	require.False(t, res.Completed)

	// Second watering inside the 4h window reports the remaining cooldown.
	f.advance(30 * time.Minute)
	_, err = f.game.Water(ctx, u.ID)
	var tooSoon *WateringTooSoonError
	require.ErrorAs(t, err, &tooSoon)
	require.Equal(t, 3*time.Hour+30*time.Minute, tooSoon.Remaining)

	f.advance(3*time.Hour + 30*time.Minute)
	res, err = f.game.Water(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, 2, res.NewGrowth)
	require.Equal(t, 2, res.WaterCount)
}

func TestGrowthClampAndCompletion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := createUser(t, f.gdb, "Amara", nil)
	sess := f.startGame(t, u.ID)

	// 98% + a 10% purchase boost clamps to 100, not 108.
	f.setGrowth(t, sess.ID, 98)
	require.NoError(t, f.game.PurchaseBoost(ctx, u.ID, "order-1", 75_00))

	st, err := f.game.Current(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, 100, st.Session.GrowthPercentage)
	require.Equal(t, model.GrowthStatusComplete, st.Session.Status)
	require.True(t, st.IsComplete)
	require.Nil(t, st.Session.ActiveUserID)
	require.NotNil(t, st.Session.CompletedAt)
	// The claimable reward stays visible on the completed session.
	require.Equal(t, sess.RewardName, st.Session.RewardName)

	// Terminal sessions reject further growth.
	_, err = f.game.Water(ctx, u.ID)
	require.ErrorIs(t, err, ErrNoActiveSession)

	// A new game may start now.
	f.startGame(t, u.ID)
}

func TestWateringCompletesSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := createUser(t, f.gdb, "Amara", nil)
	sess := f.startGame(t, u.ID)

	f.setGrowth(t, sess.ID, 99)
	res, err := f.game.Water(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, 100, res.NewGrowth)
	require.True(t, res.Completed)
}

func TestLazyExpiry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := createUser(t, f.gdb, "Amara", nil)
	sess := f.startGame(t, u.ID)
	require.Equal(t, 60, sess.TargetDays)

	f.setGrowth(t, sess.ID, 40)
	f.advance(61 * 24 * time.Hour)

	// Reading flips the overdue session to expired.
	st, err := f.game.Current(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, st.IsExpired)
	require.Equal(t, model.GrowthStatusExpired, st.Session.Status)

	var stored model.GrowthSession
	require.NoError(t, f.gdb.Where("id = ?", sess.ID).First(&stored).Error)
	require.Equal(t, model.GrowthStatusExpired, stored.Status)
	require.Nil(t, stored.ActiveUserID)

	// Growth events against the expired session are rejected.
	_, err = f.game.Water(ctx, u.ID)
	require.ErrorIs(t, err, ErrNoActiveSession)

	// Expiry frees the slot for a new session.
	f.startGame(t, u.ID)
}

func TestExpiryOnMutationPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := createUser(t, f.gdb, "Amara", nil)
	f.startGame(t, u.ID)

	f.advance(61 * 24 * time.Hour)

	// Without a prior read, the mutation itself runs the lazy expire-check.
	_, err := f.game.Water(ctx, u.ID)
	require.ErrorIs(t, err, ErrSessionNotActive)
}

func TestFeed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	code := "PLANTY"
	owner := createUser(t, f.gdb, "Amara", &code)
	f.startGame(t, owner.ID)

	_, err := f.game.Feed(ctx, "NOCODE", "visitor-1")
	require.ErrorIs(t, err, ErrInvalidCode)

	_, err = f.game.Feed(ctx, code, owner.ID)
	require.ErrorIs(t, err, ErrCannotFeedOwnPlant)

	res, err := f.game.Feed(ctx, code, "visitor-1")
	require.NoError(t, err)
	require.Equal(t, 2, res.GrowthAdded)
	require.Equal(t, 2, res.NewGrowth)

	// The same visitor cannot feed the same plant twice.
	_, err = f.game.Feed(ctx, code, "visitor-1")
	require.ErrorIs(t, err, ErrAlreadyFed)

	res, err = f.game.Feed(ctx, code, "visitor-2")
	require.NoError(t, err)
	require.Equal(t, 4, res.NewGrowth)

	st, err := f.game.Current(ctx, owner.ID)
	require.NoError(t, err)
	require.Equal(t, 2, st.Session.PlantFood)
}

func TestPurchaseBoost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := createUser(t, f.gdb, "Amara", nil)
	f.startGame(t, u.ID)

	// Under $50 earns the small boost.
	require.NoError(t, f.game.PurchaseBoost(ctx, u.ID, "order-small", 49_99))
	st, err := f.game.Current(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, 5, st.Session.GrowthPercentage)

	// $50 and over earns the large one.
	require.NoError(t, f.game.PurchaseBoost(ctx, u.ID, "order-large", 50_00))
	st, err = f.game.Current(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, 15, st.Session.GrowthPercentage)

	// A retried order id applies nothing.
	require.NoError(t, f.game.PurchaseBoost(ctx, u.ID, "order-large", 50_00))
	st, err = f.game.Current(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, 15, st.Session.GrowthPercentage)
}

func TestCurrentPlantCooldownFlags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := createUser(t, f.gdb, "Amara", nil)

	st, err := f.game.Current(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, st)

	f.startGame(t, u.ID)
	st, err = f.game.Current(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, st.CanWater)
	require.EqualValues(t, 0, st.TimeUntilWater)

	_, err = f.game.Water(ctx, u.ID)
	require.NoError(t, err)
	f.advance(time.Hour)

	st, err = f.game.Current(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, st.CanWater)
	require.EqualValues(t, (3 * time.Hour).Seconds(), st.TimeUntilWater)
}

func TestManifestationEditDoesNotAlterSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := createUser(t, f.gdb, "Amara", nil)
	f.startGame(t, u.ID)

	require.NoError(t, f.gdb.Model(&model.Manifestation{}).
		Where("id = ?", "abundance").
		Updates(map[string]interface{}{"plant_type": "Cactus", "name": "Scarcity"}).Error)

	st, err := f.game.Current(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Money Tree", st.Session.PlantType)
	require.Equal(t, "Abundance", st.Session.ManifestationName)
}

func TestGrowthNonNegativeAndMonotonic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := createUser(t, f.gdb, "Amara", nil)
	f.startGame(t, u.ID)

	last := 0
	for i := 0; i < 6; i++ {
		res, err := f.game.Water(ctx, u.ID)
		require.NoError(t, err)
		require.GreaterOrEqual(t, res.NewGrowth, last)
		require.LessOrEqual(t, res.NewGrowth, 100)
		last = res.NewGrowth
		f.advance(4 * time.Hour)
	}
	require.Equal(t, 6, last)
}

func TestReferralFeedWithoutSession(t *testing.T) {
	f := newFixture(t)
	u := createUser(t, f.gdb, "Amara", nil)
	err := f.game.ReferralFeed(context.Background(), u.ID, "someone")
	require.True(t, errors.Is(err, ErrNoActiveSession))
}
