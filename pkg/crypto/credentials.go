package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/speps/go-hashids/v2"
	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12
	// GeneratedPasswordLength is the length of passwords issued by the system
	GeneratedPasswordLength = 12
	// MinPasswordLength is the minimum length accepted by the password policy
	MinPasswordLength = 8

	referralMinLength = 6
	referralDigits    = 10

	lowerChars   = "abcdefghijkmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	digitChars   = "23456789"
	specialChars = "@#$%&*!?"
)

var (
	ErrWeakPassword       = errors.New("password must be at least 8 characters long and contain one lower case character, one upper case character, one digit and one special character")
	ErrInvalidPhoneDigits = errors.New("phone number must contain at least one digit")
)

var (
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	randomInt                  = rand.Int
)

// CredentialService hashes and verifies passwords, issues generated passwords
// and derives referral codes.
type CredentialService struct {
	cost    int
	encoder *hashids.HashID
}

// NewCredentialService creates a credential service with the given bcrypt cost
// and referral code salt.
func NewCredentialService(cost int, referralSalt string) (*CredentialService, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}

	hd := hashids.NewData()
	hd.Salt = referralSalt
	hd.MinLength = referralMinLength
	encoder, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("failed to init referral encoder: %w", err)
	}

	return &CredentialService{cost: cost, encoder: encoder}, nil
}

// HashPassword hashes a password using bcrypt
func (s *CredentialService) HashPassword(password string) (string, error) {
	bytes, err := bcryptGenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword compares a password with a hash
func (s *CredentialService) CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GeneratePassword returns a random password that satisfies ValidatePassword.
func (s *CredentialService) GeneratePassword() (string, error) {
	classes := []string{lowerChars, upperChars, digitChars, specialChars}
	all := strings.Join(classes, "")

	out := make([]byte, 0, GeneratedPasswordLength)
	for _, class := range classes {
		c, err := pick(class)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	for len(out) < GeneratedPasswordLength {
		c, err := pick(all)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	// Fisher-Yates so the class characters are not always leading.
	for i := len(out) - 1; i > 0; i-- {
		j, err := randomInt(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		out[i], out[j.Int64()] = out[j.Int64()], out[i]
	}
	return string(out), nil
}

// ReferralCode encodes the last ten digits of a phone number.
func (s *CredentialService) ReferralCode(phoneNumber string) (string, error) {
	var digits strings.Builder
	for _, r := range phoneNumber {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if d == "" {
		return "", ErrInvalidPhoneDigits
	}
	if len(d) > referralDigits {
		d = d[len(d)-referralDigits:]
	}

	n, err := strconv.ParseInt(d, 10, 64)
	if err != nil {
		return "", fmt.Errorf("failed to parse phone digits: %w", err)
	}
	return s.encoder.EncodeInt64([]int64{n})
}

// ValidatePassword enforces the password policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}

	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	if !lower || !upper || !digit || !special {
		return ErrWeakPassword
	}
	return nil
}

func pick(charset string) (byte, error) {
	n, err := randomInt(rand.Reader, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, fmt.Errorf("failed to generate password: %w", err)
	}
	return charset[n.Int64()], nil
}
