package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateCodeIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := createUser(t, f.gdb, "Maya", nil)

	code, err := f.referral.GenerateCode(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, code, codeLength)
	for _, r := range code {
		require.True(t, strings.ContainsRune(codeAlphabet, r), "unexpected character %q", r)
	}

	again, err := f.referral.GenerateCode(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, code, again)
}

func TestGenerateCodeUnknownUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.referral.GenerateCode(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRedeemInvalidCode(t *testing.T) {
	f := newFixture(t)
	u := createUser(t, f.gdb, "Maya", nil)
	err := f.referral.Redeem(context.Background(), "NOSUCH", u.ID)
	require.ErrorIs(t, err, ErrInvalidCode)
}

func TestRedeemOwnCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := createUser(t, f.gdb, "Maya", nil)
	code, err := f.referral.GenerateCode(ctx, u.ID)
	require.NoError(t, err)

	err = f.referral.Redeem(ctx, code, u.ID)
	require.ErrorIs(t, err, ErrSelfReferral)
	require.Zero(t, userPoints(t, f, u.ID))
}

func TestRedeemCreditsReferrerOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	referrer := createUser(t, f.gdb, "Maya", nil)
	referred := createUser(t, f.gdb, "Noah", nil)
	code, err := f.referral.GenerateCode(ctx, referrer.ID)
	require.NoError(t, err)

	require.NoError(t, f.referral.Redeem(ctx, code, referred.ID))
	require.Equal(t, int64(100), userPoints(t, f, referrer.ID))
	require.Zero(t, userPoints(t, f, referred.ID))

	// The same pair cannot be redeemed twice; the credit stays at 100.
	err = f.referral.Redeem(ctx, code, referred.ID)
	require.ErrorIs(t, err, ErrDuplicateReferral)
	require.Equal(t, int64(100), userPoints(t, f, referrer.ID))

	stats, err := f.loyalty.Stats(ctx, referrer.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.ReferralCount)
}

func TestRedeemFeedsReferrersPlant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	referrer := createUser(t, f.gdb, "Maya", nil)
	referred := createUser(t, f.gdb, "Noah", nil)
	code, err := f.referral.GenerateCode(ctx, referrer.ID)
	require.NoError(t, err)

	sess := f.startGame(t, referrer.ID)
	f.setGrowth(t, sess.ID, 90)

	require.NoError(t, f.referral.Redeem(ctx, code, referred.ID))

	status, err := f.game.Current(ctx, referrer.ID)
	require.NoError(t, err)
	require.Equal(t, 95, status.Session.GrowthPercentage)
	require.Equal(t, int64(100), userPoints(t, f, referrer.ID))
}

func TestRedeemWithoutSessionStillCredits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	referrer := createUser(t, f.gdb, "Maya", nil)
	referred := createUser(t, f.gdb, "Noah", nil)
	code, err := f.referral.GenerateCode(ctx, referrer.ID)
	require.NoError(t, err)

	// No plant growing; redemption succeeds and only points move.
	require.NoError(t, f.referral.Redeem(ctx, code, referred.ID))
	require.Equal(t, int64(100), userPoints(t, f, referrer.ID))
}

func TestGeneratedCodesAreUniquePerUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		u := createUser(t, f.gdb, "Member", nil)
		code, err := f.referral.GenerateCode(ctx, u.ID)
		require.NoError(t, err)
		require.False(t, seen[code], "code %s assigned twice", code)
		seen[code] = true
	}
}
