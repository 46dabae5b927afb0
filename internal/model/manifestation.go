package model

import "time"

// Manifestation is the cosmetic theme a user picks for a growth session.
// It has no effect on growth mechanics.
type Manifestation struct {
	ID           string    `gorm:"primaryKey;size:32"`
	Name         string    `gorm:"size:120;not null"`
	Description  string    `gorm:"type:text"`
	PlantType    string    `gorm:"size:120;not null"`
	PlantImage   string    `gorm:"size:512"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Manifestation) TableName() string {
	return "manifestations"
}
