package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Mongo        MongoConfig
	JWT          JWTConfig
	Security     SecurityConfig
	Mail         MailConfig
	TimeTracking TimeTrackingConfig
	Upload       UploadConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port     string
	Env      string
	LogLevel string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
}

// DSN returns the key/value connection string understood by lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL         string
	Password    string
	PoolSize    int
	DialTimeout time.Duration
}

// MongoConfig holds the blob store connection
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	Algorithm     string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// SecurityConfig holds credential settings
type SecurityConfig struct {
	BcryptCost   int
	ReferralSalt string
}

// MailConfig holds the outbound mail settings
type MailConfig struct {
	SendGridAPIKey string
	FromName       string
	FromEmail      string
	SupportEmail   string
}

// TimeTrackingConfig holds the session duration policy
type TimeTrackingConfig struct {
	CutoffHour      int
	LogoutShift     time.Duration
	DurationPenalty time.Duration
	LoginOffset     time.Duration
	Timezone        string
	LockTTL         time.Duration
}

// Location resolves Timezone, falling back to the process local zone
func (c TimeTrackingConfig) Location() *time.Location {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// UploadConfig holds profile image limits
type UploadConfig struct {
	MaxImageBytes int
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:     getEnv("SERVER_PORT", "8080"),
			Env:      getEnv("SERVER_ENV", "development"),
			LogLevel: getEnv("LOG_LEVEL", ""),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			DBName:       getEnv("DB_NAME", "crm_admin"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			AutoMigrate:  getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			URL:         getEnv("REDIS_URL", "redis://localhost:6379"),
			Password:    getEnv("REDIS_PASSWORD", ""),
			PoolSize:    getEnvAsInt("REDIS_POOL_SIZE", 10),
			DialTimeout: getEnvAsDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		},
		Mongo: MongoConfig{
			URI:            getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGO_DATABASE", "crm_admin_files"),
			ConnectTimeout: getEnvAsDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			Algorithm:     getEnv("JWT_ALGORITHM", "HS256"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 30*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Security: SecurityConfig{
			BcryptCost:   getEnvAsInt("BCRYPT_COST", 12),
			ReferralSalt: getEnv("REFERRAL_SALT", "change-this-salt"),
		},
		Mail: MailConfig{
			SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
			FromName:       getEnv("MAIL_FROM_NAME", "CRM Admin"),
			FromEmail:      getEnv("MAIL_FROM_EMAIL", "no-reply@example.com"),
			SupportEmail:   getEnv("MAIL_SUPPORT_EMAIL", "support@example.com"),
		},
		TimeTracking: TimeTrackingConfig{
			CutoffHour:      getEnvAsInt("TIME_TRACKING_CUTOFF_HOUR", 18),
			LogoutShift:     getEnvAsDuration("TIME_TRACKING_LOGOUT_SHIFT", 2*time.Hour),
			DurationPenalty: getEnvAsDuration("TIME_TRACKING_DURATION_PENALTY", time.Hour),
			LoginOffset:     getEnvAsDuration("TIME_TRACKING_LOGIN_OFFSET", 0),
			Timezone:        getEnv("TIME_TRACKING_TIMEZONE", "Local"),
			LockTTL:         getEnvAsDuration("TIME_TRACKING_LOCK_TTL", 10*time.Second),
		},
		Upload: UploadConfig{
			MaxImageBytes: getEnvAsPositiveInt("UPLOAD_MAX_IMAGE_BYTES", 6000000),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsPositiveInt(key string, defaultValue int) int {
	if v := getEnvAsInt(key, defaultValue); v > 0 {
		return v
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
