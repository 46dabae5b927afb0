package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mothernatural/wellness-backend/internal/model"
	"github.com/mothernatural/wellness-backend/internal/repository"
	"gorm.io/gorm"
)

const (
	pointsPerDollar = 1
	referralPoints  = 100
	signInPoints    = 5
)

type LoyaltySettings struct {
	PointsPerDollar float64 `json:"pointsPerDollar"`
	ReferralPoints  int64   `json:"referralPoints"`
	SignInPoints    int64   `json:"signInPoints"`
}

type LoyaltyStats struct {
	Points            int64
	CurrentTier       model.Tier
	NextTier          *model.Tier
	PointsToNextTier  int64
	ProgressToNext    int
	ReferralCode      *string
	ReferralCount     int64
	OrderCount        int64
}

type LoyaltyService interface {
	Stats(ctx context.Context, userID string) (*LoyaltyStats, error)
	Settings() LoyaltySettings
	Tiers() []model.Tier
	CreditOrderPoints(ctx context.Context, userID, orderID string, subtotalCents int64) (int64, error)
	CreditReferralPoints(ctx context.Context, referrerID, referredID string) error
	DailySignIn(ctx context.Context, userID string) (bool, error)
}

type loyaltyService struct {
	users     repository.UserRepository
	points    repository.PointRepository
	referrals repository.ReferralRepository
	orders    repository.OrderRepository
	now       func() time.Time
}

func NewLoyaltyService(users repository.UserRepository, points repository.PointRepository, referrals repository.ReferralRepository, orders repository.OrderRepository) LoyaltyService {
	return &loyaltyService{
		users:     users,
		points:    points,
		referrals: referrals,
		orders:    orders,
		now:       time.Now,
	}
}

func (s *loyaltyService) Settings() LoyaltySettings {
	return LoyaltySettings{
		PointsPerDollar: pointsPerDollar,
		ReferralPoints:  referralPoints,
		SignInPoints:    signInPoints,
	}
}

func (s *loyaltyService) Tiers() []model.Tier {
	return model.Tiers
}

// Stats derives the tier from the live point total; the tier is never stored.
func (s *loyaltyService) Stats(ctx context.Context, userID string) (*LoyaltyStats, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	current := model.TierForPoints(u.Points)
	next := model.NextTierForPoints(u.Points)

	stats := &LoyaltyStats{
		Points:       u.Points,
		CurrentTier:  current,
		NextTier:     next,
		ReferralCode: u.ReferralCode,
	}
	if next != nil {
		stats.PointsToNextTier = next.PointsRequired - u.Points
		span := next.PointsRequired - current.PointsRequired
		progress := int((u.Points - current.PointsRequired) * 100 / span)
		if progress < 0 {
			progress = 0
		}
		if progress > 100 {
			progress = 100
		}
		stats.ProgressToNext = progress
	} else {
		stats.ProgressToNext = 100
	}

	if stats.ReferralCount, err = s.referrals.CountByReferrer(ctx, userID); err != nil {
		return nil, err
	}
	if stats.OrderCount, err = s.orders.CountCompletedByUser(ctx, userID); err != nil {
		return nil, err
	}
	return stats, nil
}

// CreditOrderPoints awards 1 point per whole pre-discount dollar, rounded
// down. Idempotent per order id.
func (s *loyaltyService) CreditOrderPoints(ctx context.Context, userID, orderID string, subtotalCents int64) (int64, error) {
	pts := subtotalCents / 100 * pointsPerDollar
	if pts <= 0 {
		return 0, nil
	}
	ref := fmt.Sprintf("order:%s", orderID)
	if err := s.points.Credit(ctx, userID, pts, model.PointReasonOrder, &ref); err != nil {
		if errors.Is(err, repository.ErrDuplicateReference) {
			return 0, nil
		}
		return 0, err
	}
	return pts, nil
}

func (s *loyaltyService) CreditReferralPoints(ctx context.Context, referrerID, referredID string) error {
	ref := fmt.Sprintf("referral:%s:%s", referrerID, referredID)
	if err := s.points.Credit(ctx, referrerID, referralPoints, model.PointReasonReferral, &ref); err != nil {
		if errors.Is(err, repository.ErrDuplicateReference) {
			return nil
		}
		return err
	}
	return nil
}

// DailySignIn credits the sign-in bonus once per user per UTC day and reports
// whether this call was the one that awarded it.
func (s *loyaltyService) DailySignIn(ctx context.Context, userID string) (bool, error) {
	day := s.now().UTC().Format("2006-01-02")
	ref := fmt.Sprintf("login:%s:%s", userID, day)
	if err := s.points.Credit(ctx, userID, signInPoints, model.PointReasonDailyLogin, &ref); err != nil {
		if errors.Is(err, repository.ErrDuplicateReference) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
