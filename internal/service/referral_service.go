package service

import (
	"context"
	"crypto/rand"
	"errors"

	"github.com/mothernatural/wellness-backend/internal/model"
	"github.com/mothernatural/wellness-backend/internal/repository"
	"gorm.io/gorm"
)

// Codes stay short and typable; ambiguous characters (0/O, 1/I) are left out.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const codeLength = 6

type ReferralService interface {
	GenerateCode(ctx context.Context, userID string) (string, error)
	Redeem(ctx context.Context, code, newUserID string) error
}

type referralService struct {
	users     repository.UserRepository
	referrals repository.ReferralRepository
	loyalty   LoyaltyService
	game      GameService
}

func NewReferralService(users repository.UserRepository, referrals repository.ReferralRepository, loyalty LoyaltyService, game GameService) ReferralService {
	return &referralService{
		users:     users,
		referrals: referrals,
		loyalty:   loyalty,
		game:      game,
	}
}

func mintCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}

// GenerateCode is idempotent: an existing code is returned as-is. New codes
// are assigned with a conditional update so concurrent requests and alphabet
// collisions both fall through to a retry.
func (s *referralService) GenerateCode(ctx context.Context, userID string) (string, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if u.ReferralCode != nil {
		return *u.ReferralCode, nil
	}

	for attempt := 0; attempt < 5; attempt++ {
		code, err := mintCode()
		if err != nil {
			return "", err
		}
		rows, err := s.users.SetReferralCodeIfEmpty(ctx, userID, code)
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue // code taken by another user
			}
			return "", err
		}
		if rows == 1 {
			return code, nil
		}
		// Lost the race to a concurrent request; use whatever it assigned.
		u, err = s.users.FindByID(ctx, userID)
		if err != nil {
			return "", err
		}
		if u.ReferralCode != nil {
			return *u.ReferralCode, nil
		}
	}
	return "", errors.New("could not assign a unique referral code")
}

// Redeem records a signup-with-code: one ReferralRecord per (referrer,
// referred) pair, a one-time 100 point credit, and a +5% growth contribution
// when the referrer has a plant growing.
func (s *referralService) Redeem(ctx context.Context, code, newUserID string) error {
	referrer, err := s.users.FindByReferralCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCode
		}
		return err
	}
	if referrer.ID == newUserID {
		return ErrSelfReferral
	}

	rec := &model.ReferralRecord{
		ReferrerID: referrer.ID,
		ReferredID: newUserID,
		Code:       code,
	}
	if err := s.referrals.Create(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrDuplicatePair) {
			return ErrDuplicateReferral
		}
		return err
	}

	if err := s.loyalty.CreditReferralPoints(ctx, referrer.ID, newUserID); err != nil {
		return err
	}

	// The growth contribution only lands when a session is active; absence
	// or a just-expired plant does not fail the redemption.
	if err := s.game.ReferralFeed(ctx, referrer.ID, newUserID); err != nil {
		if !errors.Is(err, ErrNoActiveSession) && !errors.Is(err, ErrSessionNotActive) {
			return err
		}
	}
	return nil
}
