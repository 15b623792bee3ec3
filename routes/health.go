package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func AddHealthCheckRoutes(group *gin.RouterGroup, database pinger) {
	health := group.Group("/health")
	health.GET("", aliveCheck(database))
}

func AddMetricsRoutes(group *gin.RouterGroup) {
	group.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func aliveCheck(database pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := database.Ping(c.Request.Context()); err != nil {
			log.WithError(err).Warn("Health check failed")
			c.String(http.StatusServiceUnavailable, "database unavailable")
			return
		}
		c.String(http.StatusOK, "ok")
	}
}
