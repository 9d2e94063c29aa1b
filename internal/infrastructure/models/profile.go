package models

import "time"

type AdminProfile struct {
	ID           int64      `gorm:"primaryKey;autoIncrement"`
	UserID       int64      `gorm:"column:users_id;uniqueIndex;not null"`
	DOB          *time.Time `gorm:"column:dob;type:date"`
	Gender       int        `gorm:"not null"`
	LastLogin    *time.Time
	ProfileImage *string `gorm:"type:varchar(1024)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (AdminProfile) TableName() string {
	return "admin_profile"
}

type SalesPersonProfile struct {
	ID           int64      `gorm:"primaryKey;autoIncrement"`
	UserID       int64      `gorm:"column:users_id;uniqueIndex;not null"`
	DOB          *time.Time `gorm:"column:dob;type:date"`
	Gender       int        `gorm:"not null"`
	Address1     string     `gorm:"column:address1;type:varchar(100)"`
	Address2     string     `gorm:"column:address2;type:varchar(100)"`
	City         string     `gorm:"type:varchar(20)"`
	District     string     `gorm:"type:varchar(20)"`
	State        string     `gorm:"type:varchar(20)"`
	Country      string     `gorm:"type:varchar(20)"`
	PostalCode   string     `gorm:"type:varchar(20)"`
	ProfileImage *string    `gorm:"type:varchar(1024)"`
	Designation  string     `gorm:"type:varchar(30)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (SalesPersonProfile) TableName() string {
	return "sales_person_profile"
}

// SalesPersonRow is the users join used by listings
type SalesPersonRow struct {
	SalesPersonProfile
	FullName     string
	Email        string
	PhoneNumber  string
	ReferralCode string
	Blocked      bool
}

// AdminRow is the users join used by listings
type AdminRow struct {
	AdminProfile
	FullName     string
	Email        string
	PhoneNumber  string
	ReferralCode string
	Blocked      bool
}
