package model

import "time"

type User struct {
	ID              string     `gorm:"primaryKey;size:64"`
	Email           string     `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash    string     `gorm:"size:128;not null"`
	Name            string     `gorm:"size:120;not null"`
	Points          int64      `gorm:"not null;default:0"`
	ReferralCode    *string    `gorm:"size:16;uniqueIndex"`
	ReferredByCode  *string    `gorm:"size:16"`
	CommunityMember bool       `gorm:"not null;default:false"`
	Admin           bool       `gorm:"column:is_admin;not null;default:false"`
	Active          bool       `gorm:"not null;default:true"`
	LastSignInAt    *time.Time `gorm:"column:last_sign_in_at"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
