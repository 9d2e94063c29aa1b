package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Token types carried in the typ claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims represents JWT claims. The subject is the user's email.
type Claims struct {
	Type string `json:"typ"`
	jwt.RegisteredClaims
}

// Email returns the subject of the token
func (c *Claims) Email() string {
	return c.Subject
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// JWTService handles JWT operations
type JWTService struct {
	secret        []byte
	method        *jwt.SigningMethodHMAC
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	now           func() time.Time
}

// Option customizes a JWTService
type Option func(*JWTService)

// WithAlgorithm selects the HMAC algorithm (HS256, HS384 or HS512).
// Unknown names keep HS256.
func WithAlgorithm(alg string) Option {
	return func(s *JWTService) {
		switch alg {
		case jwt.SigningMethodHS384.Alg():
			s.method = jwt.SigningMethodHS384
		case jwt.SigningMethodHS512.Alg():
			s.method = jwt.SigningMethodHS512
		default:
			s.method = jwt.SigningMethodHS256
		}
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *JWTService) {
		s.now = now
	}
}

var signJWTToken = func(token *jwt.Token, secret []byte) (string, error) {
	return token.SignedString(secret)
}

// NewJWTService creates a new JWT service
func NewJWTService(secret string, accessExpiry, refreshExpiry time.Duration, opts ...Option) *JWTService {
	s := &JWTService{
		secret:        []byte(secret),
		method:        jwt.SigningMethodHS256,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Algorithm returns the configured signing algorithm name
func (s *JWTService) Algorithm() string {
	return s.method.Alg()
}

// GenerateTokenPair generates access and refresh tokens for an email
func (s *JWTService) GenerateTokenPair(email string) (*TokenPair, error) {
	accessToken, err := s.generateToken(email, TokenTypeAccess, s.accessExpiry)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateToken(email, TokenTypeRefresh, s.refreshExpiry)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{s.method.Alg()}), jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ValidateAccessToken validates a token and requires the access type
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.validateType(tokenString, TokenTypeAccess)
}

// ValidateRefreshToken validates a token and requires the refresh type
func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.validateType(tokenString, TokenTypeRefresh)
}

func (s *JWTService) validateType(tokenString, typ string) (*Claims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != typ {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *JWTService) generateToken(email, typ string, expiry time.Duration) (string, error) {
	now := s.now()
	claims := &Claims{
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	return signJWTToken(token, s.secret)
}
