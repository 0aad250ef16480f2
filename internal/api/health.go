package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/database"
)

type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthHandler reports on the database and, when configured, redis.
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

func (h *HealthHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", h.HealthCheck)
}

// HealthCheck returns 503 when the database is unreachable. Redis only backs
// rate limiting, so its failure degrades rather than fails the check.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := gin.H{"status": "healthy", "database": "up"}
	if err := database.HealthCheck(ctx, h.db); err != nil {
		resp["status"] = "unhealthy"
		resp["database"] = "down"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	switch {
	case h.redis == nil:
		resp["redis"] = "disabled"
	case h.redis.Ping(ctx).Err() != nil:
		resp["status"] = "degraded"
		resp["redis"] = "down"
	default:
		resp["redis"] = "up"
	}
	c.JSON(http.StatusOK, resp)
}
