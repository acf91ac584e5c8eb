package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/credimed/app-leads/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.opentelemetry.io/otel"
)

// HealthCheck godoc
// @Summary Service health
// @Description Reports the health of the service and its MongoDB and Redis dependencies.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "HealthCheck")
	defer span.End()

	status := http.StatusOK
	statuses := map[string]string{
		"mongodb": "healthy",
		"redis":   "healthy",
	}

	if err := config.MongoDB.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		statuses["mongodb"] = "unhealthy"
		status = http.StatusServiceUnavailable
	}
	if err := config.Redis.Ping(ctx).Err(); err != nil {
		statuses["redis"] = "unhealthy"
		status = http.StatusServiceUnavailable
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "degraded"
	}

	c.JSON(status, HealthResponse{
		Status:    overall,
		Timestamp: time.Now(),
		Services:  statuses,
	})
}
