package entities

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
)

// User represents a user entity
type User struct {
	ID           int64       `json:"id"`
	FullName     string      `json:"full_name"`
	Email        string      `json:"email"`
	PhoneNumber  string      `json:"phone_number"`
	PasswordHash string      `json:"-"`
	ReferralCode string      `json:"referral_code"`
	ReferredBy   null.String `json:"referred_by"`
	Blocked      bool        `json:"blocked"`
	Deleted      bool        `json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// RegisterUserInput is shared by sales person and admin registration
type RegisterUserInput struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	CountryCode string `json:"country_code"`
	ReferredBy  string `json:"referred_by"`
	RoleID      RoleID `json:"role_id"`
}

// RegisterAdminInput carries the admin profile seed and a chosen password
type RegisterAdminInput struct {
	RegisterUserInput
	Password string `json:"password"`
	DOB      Date   `json:"dob"`
	Gender   Gender `json:"gender"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     RoleID `json:"-"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ID           int64  `json:"id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
}

// NormalizeEmail is the stored and looked-up form of an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
