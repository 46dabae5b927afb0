package service

import (
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("not found")
var ErrForbidden = errors.New("forbidden")

// Loyalty / referral failures.
var (
	ErrInvalidCode       = errors.New("invalid referral code")
	ErrSelfReferral      = errors.New("cannot redeem your own referral code")
	ErrDuplicateReferral = errors.New("referral already redeemed for this user")
)

// Plant game failures.
var (
	ErrActiveSessionExists  = errors.New("an active growth session already exists")
	ErrNoActiveSession      = errors.New("no active growth session")
	ErrSessionNotActive     = errors.New("growth session is complete or expired")
	ErrUnknownRewardType    = errors.New("unknown reward type")
	ErrUnknownManifestation = errors.New("unknown manifestation")
	ErrRewardNotFound       = errors.New("reward not found for the chosen type")
	ErrAlreadyFed           = errors.New("this visitor already fed the plant")
	ErrCannotFeedOwnPlant   = errors.New("cannot feed your own plant")
)

// Account failures.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is deactivated")
)

// WateringTooSoonError reports how long the 4-hour cooldown still has to run.
type WateringTooSoonError struct {
	Remaining time.Duration
}

func (e *WateringTooSoonError) Error() string {
	return fmt.Sprintf("plant is not thirsty yet, wait %d seconds", int(e.Remaining.Seconds()))
}
