package models

import "time"

type Role struct {
	ID          int64  `gorm:"primaryKey;autoIncrement:false"`
	Role        string `gorm:"type:varchar(50);not null"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Role) TableName() string {
	return "roles"
}

// UserRole keeps one row per user; (users_id, role_id) is unique as well.
type UserRole struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	UserID    int64 `gorm:"column:users_id;not null;uniqueIndex;uniqueIndex:idx_user_roles_user_role"`
	RoleID    int64 `gorm:"not null;uniqueIndex:idx_user_roles_user_role"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserRole) TableName() string {
	return "user_roles"
}
