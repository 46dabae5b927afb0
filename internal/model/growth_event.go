package model

import "time"

type GrowthEventKind string

const (
	GrowthEventWater    GrowthEventKind = "water"
	GrowthEventFeed     GrowthEventKind = "feed"
	GrowthEventReferral GrowthEventKind = "referral"
	GrowthEventPurchase GrowthEventKind = "purchase"
)

// GrowthEvent records one growth contribution to a session. OrderID carries a
// global unique index so a completed order can only ever boost growth once;
// FeederKey (session id + feeder) does the same for friend feed visits.
type GrowthEvent struct {
	ID        uint64          `gorm:"primaryKey;autoIncrement"`
	SessionID string          `gorm:"column:session_id;size:64;index;not null"`
	Kind      GrowthEventKind `gorm:"column:kind;size:16;not null"`
	Amount    int             `gorm:"column:amount;not null"`
	ActorID   string          `gorm:"column:actor_id;size:64"`
	OrderID   *string         `gorm:"column:order_id;size:64;uniqueIndex"`
	FeederKey *string         `gorm:"column:feeder_key;size:160;uniqueIndex"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (GrowthEvent) TableName() string {
	return "growth_events"
}
