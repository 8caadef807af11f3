package api

import (
	admindelivery "minwon-backend/internal/admin/delivery"
	adminusecase "minwon-backend/internal/admin/usecase"
	"minwon-backend/internal/auth/delivery"
	userdelivery "minwon-backend/internal/user/delivery"
	userrepo "minwon-backend/internal/user/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	verifier     delivery.TokenVerifier
	adminHandler *admindelivery.AdminHandler
	tokenHandler *userdelivery.TokenHandler
}

func NewHandler(verifier delivery.TokenVerifier, adminUc adminusecase.AdminUsecase, tokens userrepo.TokenStore) *Handler {
	return &Handler{
		verifier:     verifier,
		adminHandler: admindelivery.NewAdminHandler(adminUc),
		tokenHandler: userdelivery.NewTokenHandler(tokens),
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.verifier, h.adminHandler, h.tokenHandler)

	return r.Run(addr)
}
