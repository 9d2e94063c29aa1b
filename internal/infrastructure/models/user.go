package models

import (
	"time"
)

type User struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	FullName     string  `gorm:"type:varchar(100);not null"`
	Email        string  `gorm:"type:varchar(100);uniqueIndex;not null"`
	Password     string  `gorm:"type:varchar(200);not null"`
	PhoneNumber  string  `gorm:"type:varchar(20);uniqueIndex;not null"`
	ReferralCode string  `gorm:"type:varchar(20);uniqueIndex;not null"`
	ReferredBy   *string `gorm:"type:varchar(20)"`
	Blocked      bool    `gorm:"not null;default:false"`
	Deleted      bool    `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string {
	return "users"
}
