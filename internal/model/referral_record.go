package model

import "time"

// ReferralRecord is written once per successful signup-with-code. The
// composite unique index makes redemption idempotent per (referrer, referred)
// pair under concurrent retries.
type ReferralRecord struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	ReferrerID string    `gorm:"column:referrer_id;size:64;not null;uniqueIndex:idx_referral_pair"`
	ReferredID string    `gorm:"column:referred_id;size:64;not null;uniqueIndex:idx_referral_pair"`
	Code       string    `gorm:"column:code;size:16;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (ReferralRecord) TableName() string {
	return "referral_records"
}
