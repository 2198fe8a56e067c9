package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sportlink/refnet/config"
	"github.com/sportlink/refnet/internal/profile"
)

// RegisterAuthRoutes sets up the public auth routes.
func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	profileRepo := profile.NewProfileRepository(db)
	authController := NewAuthController(profileRepo, appConfig)

	authPublic := router.Group("/auth")
	{
		authPublic.POST("/register", authController.Register)
		authPublic.POST("/login", authController.Login)
	}
}
