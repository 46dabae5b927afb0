package model

import "time"

// RewardType governs how many days a growth session may run for a given
// category of reward. Rows are admin-managed.
type RewardType struct {
	ID         string    `gorm:"primaryKey;size:32"`
	Name       string    `gorm:"size:120;not null"`
	TargetDays int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (RewardType) TableName() string {
	return "reward_types"
}
