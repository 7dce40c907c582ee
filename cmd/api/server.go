package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"catadopt-backend/pkg/container"
)

// healthCheckHandler reports liveness plus database and cache status.
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		checks := gin.H{}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			checks["database"] = "down"
		} else {
			checks["database"] = "up"
		}

		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			// Cache loss degrades performance, not availability
			checks["cache"] = "down"
		} else {
			checks["cache"] = "up"
		}

		ctx.JSON(status, gin.H{
			"status":      http.StatusText(status),
			"environment": c.Config.App.Environment,
			"time":        time.Now().UTC(),
			"checks":      checks,
		})
	}
}
