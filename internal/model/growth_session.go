package model

import "time"

type GrowthStatus string

const (
	GrowthStatusActive   GrowthStatus = "active"
	GrowthStatusComplete GrowthStatus = "complete"
	GrowthStatusExpired  GrowthStatus = "expired"
)

// GrowthSession is one run of the plant game. A user has at most one active
// session: ActiveUserID mirrors UserID while status is active and is cleared
// on the transition to a terminal state, so the unique index enforces the
// invariant even under concurrent starts.
//
// Manifestation visuals are snapshotted at start; later config edits must not
// change an in-progress plant.
type GrowthSession struct {
	ID                string       `gorm:"primaryKey;size:64"`
	UserID            string       `gorm:"column:user_id;size:64;index;not null"`
	ActiveUserID      *string      `gorm:"column:active_user_id;size:64;uniqueIndex"`
	RewardType        string       `gorm:"column:reward_type;size:32;not null"`
	RewardID          string       `gorm:"column:reward_id;size:64;not null"`
	RewardName        string       `gorm:"column:reward_name;size:255;not null"`
	TargetDays        int          `gorm:"column:target_days;not null"`
	ManifestationID   string       `gorm:"column:manifestation_id;size:32;not null"`
	ManifestationName string       `gorm:"column:manifestation_name;size:120;not null"`
	PlantType         string       `gorm:"column:plant_type;size:120;not null"`
	PlantImage        string       `gorm:"column:plant_image;size:512"`
	GrowthPercentage  int          `gorm:"column:growth_percentage;not null;default:0"`
	WaterCount        int          `gorm:"column:water_count;not null;default:0"`
	PlantFood         int          `gorm:"column:plant_food;not null;default:0"`
	Status            GrowthStatus `gorm:"column:status;size:16;not null"`
	StartDate         time.Time    `gorm:"column:start_date;not null"`
	EndDate           time.Time    `gorm:"column:end_date;not null"`
	LastWateredAt     *time.Time   `gorm:"column:last_watered_at"`
	CompletedAt       *time.Time   `gorm:"column:completed_at"`
	CreatedAt         time.Time    `gorm:"autoCreateTime"`
	UpdatedAt         time.Time    `gorm:"autoUpdateTime"`
}

func (GrowthSession) TableName() string {
	return "growth_sessions"
}
