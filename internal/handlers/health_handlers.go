package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HandleHealth reports whether the store answers a ping
func (s *Server) HandleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.Store.Ping(c.Request.Context()); err != nil {
			logrus.WithError(err).Error("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Server is running and connected to the database!",
		})
	}
}

// HandleMetrics serves the current metrics snapshot
func (s *Server) HandleMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.Metrics.Snapshot())
	}
}
