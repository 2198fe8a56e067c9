package profile

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/sportlink/refnet/internal/middleware"
)

// ProfileRoutes sets up profile read routes.
func ProfileRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewProfileRepository(db)
	controller := NewProfileController(repo)

	// Public profile summaries
	router.GET("/profiles/:profile_id", controller.GetProfileSummary)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.GET("/users/me", controller.GetMyProfile)
	}
}
