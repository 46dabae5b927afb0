package model

import "time"

type PointReason string

const (
	PointReasonOrder      PointReason = "order"
	PointReasonReferral   PointReason = "referral"
	PointReasonDailyLogin PointReason = "daily-login"
)

// PointEntry is an append-only ledger row. Reference is an idempotency key
// ("order:<id>", "referral:<referrer>:<referred>", "login:<uid>:<day>") so a
// retried credit for the same event inserts nothing.
type PointEntry struct {
	ID        uint64      `gorm:"primaryKey;autoIncrement"`
	UserID    string      `gorm:"column:user_id;size:64;index;not null"`
	Amount    int64       `gorm:"column:amount;not null"`
	Reason    PointReason `gorm:"column:reason;size:16;not null"`
	Reference *string     `gorm:"column:reference;size:160;uniqueIndex"`
	CreatedAt time.Time   `gorm:"autoCreateTime"`
}

func (PointEntry) TableName() string {
	return "point_entries"
}
