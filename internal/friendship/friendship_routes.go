package friendship

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/sportlink/refnet/internal/middleware"
	"github.com/sportlink/refnet/internal/notification"
	"github.com/sportlink/refnet/internal/profile"
)

// FriendshipRoutes sets up the friendship routes. All require authentication.
func FriendshipRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewFriendshipRepository(db)
	profileRepo := profile.NewProfileRepository(db)
	notifier := notification.NewService(notification.NewNotificationRepository(db))
	controller := NewFriendshipController(repo, profileRepo, notifier)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.POST("/friendships/requests", controller.SendFriendRequest)
		authRoutes.PUT("/friendships/requests/:edge_id/:action", controller.RespondToFriendRequest)
		authRoutes.GET("/profiles/:profile_id/friendship-status", controller.GetFriendshipStatus)
		authRoutes.GET("/users/me/friends", controller.ListFriends)
		authRoutes.GET("/users/me/friend-requests", controller.ListIncomingFriendRequests)
	}
}
