package logger

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log  *zap.Logger
	once sync.Once
	atom zap.AtomicLevel
)

type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	CallerIDKey  ContextKey = "caller_id"
)

// Init builds the process logger once. Development gets the console encoder,
// everything else JSON. An empty level keeps the preset's default.
func Init(env, level string) {
	once.Do(func() {
		cfg := zap.NewProductionConfig()
		if env == "development" {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			cfg.EncoderConfig.TimeKey = "timestamp"
			cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
			cfg.InitialFields = map[string]interface{}{"env": env}
		}

		if lvl, err := zapcore.ParseLevel(strings.ToLower(level)); level != "" && err == nil {
			cfg.Level.SetLevel(lvl)
		}

		built, err := cfg.Build(zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
		log = built
		atom = cfg.Level
	})
}

// GetLogger returns the process logger, or a no-op logger before Init
func GetLogger() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// SetLevel changes the level at runtime
func SetLevel(level zapcore.Level) {
	atom.SetLevel(level)
}

// Sync flushes buffered entries
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}

// WithCaller tags ctx with the authorized user's id
func WithCaller(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, CallerIDKey, userID)
}

// WithContext returns the logger enriched with request_id and caller fields
func WithContext(ctx context.Context) *zap.Logger {
	base := GetLogger()
	if ctx == nil {
		return base
	}

	fields := make([]zap.Field, 0, 2)
	if reqID, ok := ctx.Value(RequestIDKey).(string); ok && reqID != "" {
		fields = append(fields, zap.String("request_id", reqID))
	}
	if id, ok := ctx.Value(CallerIDKey).(int64); ok {
		fields = append(fields, zap.Int64("caller_id", id))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

func Info(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Info(msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Error(msg, fields...)
}

func Debug(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Debug(msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Warn(msg, fields...)
}

// RequestLog is one access log line
type RequestLog struct {
	Method   string
	Route    string
	Path     string
	Status   int
	Latency  time.Duration
	ClientIP string
	Bytes    int
}

// LogRequest writes an access log line. Server errors log at Error and
// client errors at Warn.
func LogRequest(ctx context.Context, r RequestLog) {
	l := WithContext(ctx)
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("route", r.Route),
		zap.String("path", r.Path),
		zap.Int("status", r.Status),
		zap.Duration("latency", r.Latency),
		zap.String("client_ip", r.ClientIP),
		zap.Int("bytes", r.Bytes),
	}
	switch {
	case r.Status >= 500:
		l.Error("HTTP request", fields...)
	case r.Status >= 400:
		l.Warn("HTTP request", fields...)
	default:
		l.Info("HTTP request", fields...)
	}
}
