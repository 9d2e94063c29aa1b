package main

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"crm-admin.backend/pkg/logger"
	"crm-admin.backend/pkg/metrics"
)

const (
	serviceName    = "crm-admin-backend"
	serviceVersion = "1.0.0"

	healthCheckTimeout = 2 * time.Second
)

// healthCheck reports whether one dependency is reachable
type healthCheck func(ctx context.Context) error

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, Idempotency-Key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

// registerHealthRoute serves /health. Any failing check turns the response 503.
func registerHealthRoute(r *gin.Engine, checks map[string]healthCheck) {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		status := http.StatusOK
		deps := make(map[string]string, len(checks))
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				logger.Warn(ctx, "Health check failed", zap.String("dependency", name), zap.Error(err))
				deps[name] = "down"
				status = http.StatusServiceUnavailable
				continue
			}
			deps[name] = "up"
		}

		state := "ok"
		if status != http.StatusOK {
			state = "degraded"
		}
		c.JSON(status, gin.H{
			"status":       state,
			"service":      serviceName,
			"version":      serviceVersion,
			"dependencies": deps,
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}
