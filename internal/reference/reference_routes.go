package reference

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sportlink/refnet/internal/friendship"
	mw "github.com/sportlink/refnet/internal/middleware"
	"github.com/sportlink/refnet/internal/notification"
	"github.com/sportlink/refnet/internal/profile"
)

// ReferenceRoutes sets up the reference workflow routes.
func ReferenceRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewReferenceRepository(db)
	friendRepo := friendship.NewFriendshipRepository(db)
	profileRepo := profile.NewProfileRepository(db)
	notifier := notification.NewService(notification.NewNotificationRepository(db))

	service := NewService(repo, friendRepo, profileRepo, notifier)
	controller := NewReferenceController(service)

	// Public reads
	router.GET("/profiles/:profile_id/references", controller.ListProfileReferences)
	router.GET("/references/relationship-types", controller.GetRelationshipTypes)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.POST("/references/requests", controller.RequestReference)
		authRoutes.DELETE("/references/requests/:reference_id", controller.CancelReferenceRequest)
		authRoutes.PUT("/references/:reference_id/respond", controller.RespondToReference)
		authRoutes.PUT("/references/:reference_id/withdraw", controller.WithdrawReference)
		authRoutes.PUT("/references/:reference_id/endorsement", controller.EditEndorsement)
		authRoutes.DELETE("/references/:reference_id", controller.RemoveReference)
		authRoutes.GET("/users/me/references", controller.ListMyReferences)
	}
}
