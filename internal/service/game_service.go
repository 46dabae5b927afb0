package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mothernatural/wellness-backend/internal/model"
	"github.com/mothernatural/wellness-backend/internal/repository"
	"gorm.io/gorm"
)

const (
	waterCooldown = 4 * time.Hour

	waterGrowth    = 1
	feedGrowth     = 2
	referralGrowth = 5

	purchaseGrowthSmall = 5
	purchaseGrowthLarge = 10
	// Orders of $50 or more earn the large boost.
	purchaseLargeThresholdCents = 50_00
)

// PlantStatus is a session plus the flags the client derives nothing from:
// cooldown remaining, completion and expiry are computed at read time.
type PlantStatus struct {
	Session        *model.GrowthSession
	CanWater       bool
	TimeUntilWater int64
	IsComplete     bool
	IsExpired      bool
}

type WaterResult struct {
	GrowthAdded int
	NewGrowth   int
	WaterCount  int
	Completed   bool
}

type StartGameInput struct {
	RewardType      string
	RewardID        string
	RewardName      string
	ManifestationID string
}

type GameService interface {
	Start(ctx context.Context, userID string, in StartGameInput) (*model.GrowthSession, error)
	Current(ctx context.Context, userID string) (*PlantStatus, error)
	Water(ctx context.Context, userID string) (*WaterResult, error)
	Feed(ctx context.Context, ownerCode, feederID string) (*WaterResult, error)
	ReferralFeed(ctx context.Context, userID, referredID string) error
	PurchaseBoost(ctx context.Context, userID, orderID string, subtotalCents int64) error
}

type gameService struct {
	sessions repository.GrowthSessionRepository
	cfg      repository.GameConfigRepository
	catalog  repository.CatalogRepository
	users    repository.UserRepository
	now      func() time.Time
}

func NewGameService(sessions repository.GrowthSessionRepository, cfg repository.GameConfigRepository, catalog repository.CatalogRepository, users repository.UserRepository) GameService {
	return &gameService{
		sessions: sessions,
		cfg:      cfg,
		catalog:  catalog,
		users:    users,
		now:      time.Now,
	}
}

func (s *gameService) Start(ctx context.Context, userID string, in StartGameInput) (*model.GrowthSession, error) {
	if in.RewardType == "" || in.RewardID == "" || in.ManifestationID == "" {
		return nil, errors.New("rewardType, rewardId and manifestationId are required")
	}
	rt, err := s.cfg.FindRewardType(ctx, in.RewardType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownRewardType
		}
		return nil, err
	}
	mf, err := s.cfg.FindManifestation(ctx, in.ManifestationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownManifestation
		}
		return nil, err
	}
	ok, err := s.catalog.RewardExists(ctx, in.RewardType, in.RewardID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRewardNotFound
	}

	now := s.now()
	sess := &model.GrowthSession{
		ID:           uuid.NewString(),
		UserID:       userID,
		ActiveUserID: &userID,
		RewardType:   rt.ID,
		RewardID:     in.RewardID,
		RewardName:   in.RewardName,
		TargetDays:   rt.TargetDays,
		// Visuals are a snapshot: later manifestation edits must not
		// change a plant already growing.
		ManifestationID:   mf.ID,
		ManifestationName: mf.Name,
		PlantType:         mf.PlantType,
		PlantImage:        mf.PlantImage,
		GrowthPercentage:  0,
		Status:            model.GrowthStatusActive,
		StartDate:         now,
		EndDate:           now.AddDate(0, 0, rt.TargetDays),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		if errors.Is(err, repository.ErrActiveExists) {
			return nil, ErrActiveSessionExists
		}
		return nil, err
	}
	return sess, nil
}

// Current returns the user's active session, lazily expiring it when the
// deadline has passed, or nil when the user has never started a game. A
// freshly terminal session is still returned so the client can show the
// claimable reward or the wilted plant.
func (s *gameService) Current(ctx context.Context, userID string) (*PlantStatus, error) {
	sess, err := s.sessions.FindActiveByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// No active session; fall back to the most recent terminal one.
		list, lerr := s.sessions.ListByUser(ctx, userID)
		if lerr != nil {
			return nil, lerr
		}
		if len(list) == 0 {
			return nil, nil
		}
		sess = &list[0]
	}

	now := s.now()
	if sess.Status == model.GrowthStatusActive && now.After(sess.EndDate) && sess.GrowthPercentage < 100 {
		if err := s.expire(ctx, userID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		sess.Status = model.GrowthStatusExpired
		sess.ActiveUserID = nil
	}
	return s.status(sess, now), nil
}

func (s *gameService) status(sess *model.GrowthSession, now time.Time) *PlantStatus {
	st := &PlantStatus{
		Session:    sess,
		IsComplete: sess.Status == model.GrowthStatusComplete,
		IsExpired:  sess.Status == model.GrowthStatusExpired,
	}
	if sess.Status == model.GrowthStatusActive {
		remaining := int64(0)
		if sess.LastWateredAt != nil {
			next := sess.LastWateredAt.Add(waterCooldown)
			if now.Before(next) {
				remaining = int64(next.Sub(now).Seconds())
			}
		}
		st.TimeUntilWater = remaining
		st.CanWater = remaining == 0
	}
	return st
}

// expire flips an overdue active session to expired under the row lock.
func (s *gameService) expire(ctx context.Context, userID string) error {
	return s.sessions.MutateActiveForUser(ctx, userID, func(tx *gorm.DB, sess *model.GrowthSession) error {
		if sess.Status != model.GrowthStatusActive || !s.now().After(sess.EndDate) || sess.GrowthPercentage >= 100 {
			return nil
		}
		sess.Status = model.GrowthStatusExpired
		sess.ActiveUserID = nil
		return s.sessions.Save(tx, sess)
	})
}

// errNeedsExpire aborts a growth mutation whose session is past its deadline.
// The flip to expired has to commit on its own, outside the rolled-back
// transaction.
var errNeedsExpire = errors.New("session past deadline")

// checkActive is the lazy-expiry gate every growth mutation runs first.
func (s *gameService) checkActive(sess *model.GrowthSession, now time.Time) error {
	if sess.Status != model.GrowthStatusActive {
		return ErrSessionNotActive
	}
	if now.After(sess.EndDate) {
		return errNeedsExpire
	}
	return nil
}

// finishMutation translates repository-level failures and commits the lazy
// expiry flip when the mutation found an overdue session.
func (s *gameService) finishMutation(ctx context.Context, userID string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, errNeedsExpire) {
		if eerr := s.expire(ctx, userID); eerr != nil && !errors.Is(eerr, gorm.ErrRecordNotFound) {
			return eerr
		}
		return ErrSessionNotActive
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNoActiveSession
	}
	return err
}

// applyGrowth adds amount, clamps to [0,100] and completes the session on the
// call that reaches 100. Callers hold the row lock.
func (s *gameService) applyGrowth(sess *model.GrowthSession, amount int, now time.Time) bool {
	sess.GrowthPercentage += amount
	if sess.GrowthPercentage >= 100 {
		sess.GrowthPercentage = 100
		sess.Status = model.GrowthStatusComplete
		sess.ActiveUserID = nil
		sess.CompletedAt = &now
		return true
	}
	return false
}

func (s *gameService) Water(ctx context.Context, userID string) (*WaterResult, error) {
	var result WaterResult
	err := s.sessions.MutateActiveForUser(ctx, userID, func(tx *gorm.DB, sess *model.GrowthSession) error {
		now := s.now()
		if err := s.checkActive(sess, now); err != nil {
			return err
		}
		if sess.LastWateredAt != nil {
			next := sess.LastWateredAt.Add(waterCooldown)
			if now.Before(next) {
				return &WateringTooSoonError{Remaining: next.Sub(now)}
			}
		}
		if err := s.sessions.CreateEvent(tx, &model.GrowthEvent{
			SessionID: sess.ID,
			Kind:      model.GrowthEventWater,
			Amount:    waterGrowth,
			ActorID:   userID,
		}); err != nil {
			return err
		}
		completed := s.applyGrowth(sess, waterGrowth, now)
		sess.WaterCount++
		sess.LastWateredAt = &now
		if err := s.sessions.Save(tx, sess); err != nil {
			return err
		}
		result = WaterResult{
			GrowthAdded: waterGrowth,
			NewGrowth:   sess.GrowthPercentage,
			WaterCount:  sess.WaterCount,
			Completed:   completed,
		}
		return nil
	})
	if err := s.finishMutation(ctx, userID, err); err != nil {
		return nil, err
	}
	return &result, nil
}

// Feed credits a friend's share-link visit. ownerCode is the referral code in
// the shared link; feederID identifies the visitor (uid or anonymous id) and
// each visitor feeds a given plant at most once.
func (s *gameService) Feed(ctx context.Context, ownerCode, feederID string) (*WaterResult, error) {
	owner, err := s.users.FindByReferralCode(ctx, ownerCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}
	if owner.ID == feederID {
		return nil, ErrCannotFeedOwnPlant
	}

	var result WaterResult
	err = s.sessions.MutateActiveForUser(ctx, owner.ID, func(tx *gorm.DB, sess *model.GrowthSession) error {
		now := s.now()
		if err := s.checkActive(sess, now); err != nil {
			return err
		}
		key := fmt.Sprintf("%s:%s", sess.ID, feederID)
		if err := s.sessions.CreateEvent(tx, &model.GrowthEvent{
			SessionID: sess.ID,
			Kind:      model.GrowthEventFeed,
			Amount:    feedGrowth,
			ActorID:   feederID,
			FeederKey: &key,
		}); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyFed
			}
			return err
		}
		completed := s.applyGrowth(sess, feedGrowth, now)
		sess.PlantFood++
		if err := s.sessions.Save(tx, sess); err != nil {
			return err
		}
		result = WaterResult{
			GrowthAdded: feedGrowth,
			NewGrowth:   sess.GrowthPercentage,
			WaterCount:  sess.WaterCount,
			Completed:   completed,
		}
		return nil
	})
	if err := s.finishMutation(ctx, owner.ID, err); err != nil {
		return nil, err
	}
	return &result, nil
}

// ReferralFeed applies the +5% referral contribution to the referrer's active
// session. Callers treat a missing or inactive session as a non-event.
func (s *gameService) ReferralFeed(ctx context.Context, userID, referredID string) error {
	err := s.sessions.MutateActiveForUser(ctx, userID, func(tx *gorm.DB, sess *model.GrowthSession) error {
		now := s.now()
		if err := s.checkActive(sess, now); err != nil {
			return err
		}
		if err := s.sessions.CreateEvent(tx, &model.GrowthEvent{
			SessionID: sess.ID,
			Kind:      model.GrowthEventReferral,
			Amount:    referralGrowth,
			ActorID:   referredID,
		}); err != nil {
			return err
		}
		s.applyGrowth(sess, referralGrowth, now)
		return s.sessions.Save(tx, sess)
	})
	return s.finishMutation(ctx, userID, err)
}

// PurchaseBoost applies the order-completion contribution, exactly once per
// order id: a retried webhook hits the unique order_id index and is a no-op.
func (s *gameService) PurchaseBoost(ctx context.Context, userID, orderID string, subtotalCents int64) error {
	amount := purchaseGrowthSmall
	if subtotalCents >= purchaseLargeThresholdCents {
		amount = purchaseGrowthLarge
	}
	err := s.sessions.MutateActiveForUser(ctx, userID, func(tx *gorm.DB, sess *model.GrowthSession) error {
		now := s.now()
		if err := s.checkActive(sess, now); err != nil {
			return err
		}
		if err := s.sessions.CreateEvent(tx, &model.GrowthEvent{
			SessionID: sess.ID,
			Kind:      model.GrowthEventPurchase,
			Amount:    amount,
			ActorID:   userID,
			OrderID:   &orderID,
		}); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil
			}
			return err
		}
		s.applyGrowth(sess, amount, now)
		return s.sessions.Save(tx, sess)
	})
	return s.finishMutation(ctx, userID, err)
}
