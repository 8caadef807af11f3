package api

import (
	"net/http"

	admindelivery "minwon-backend/internal/admin/delivery"
	"minwon-backend/internal/auth/delivery"
	userdelivery "minwon-backend/internal/user/delivery"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func SetupRoutes(r *gin.Engine, verifier delivery.TokenVerifier, adminHandler *admindelivery.AdminHandler, tokenHandler *userdelivery.TokenHandler) {
	r.Use(requestID())

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Privileged admin-role operations (protected)
		admin := api.Group("/admin")
		admin.Use(delivery.AuthMiddleware(verifier))
		{
			admin.POST("/bootstrap", adminHandler.Bootstrap)
			admin.POST("/approve", adminHandler.Approve)
			admin.POST("/reject", adminHandler.Reject)
			admin.POST("/apply", adminHandler.Apply)
		}

		api.GET("/admins", delivery.AuthMiddleware(verifier), adminHandler.List)

		// FCM routes (protected)
		fcm := api.Group("/fcm")
		fcm.Use(delivery.AuthMiddleware(verifier))
		{
			fcm.POST("/register", tokenHandler.Register)
			fcm.DELETE("/:token", tokenHandler.Unregister)
		}
	}
}

// requestID tags every request so log lines of one call can be correlated.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Set("requestID", id)
		c.Next()
	}
}
