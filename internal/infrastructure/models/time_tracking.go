package models

import "time"

// OpenSessionIndex allows one active record per user
const OpenSessionIndex = "idx_time_tracking_open_session"

type SalesPersonTimeTracking struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	UserID          int64     `gorm:"column:users_id;index;not null"`
	Date            time.Time `gorm:"type:date;not null"`
	LogInTime       time.Time `gorm:"not null"`
	LogOutTime      *time.Time
	ActiveLoginTime *string `gorm:"type:varchar(20)"`
	Active          string  `gorm:"type:varchar(10);not null"`
}

func (SalesPersonTimeTracking) TableName() string {
	return "sales_person_time_tracking"
}
