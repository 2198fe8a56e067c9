package notification

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/sportlink/refnet/internal/middleware"
)

// NotificationRoutes sets up the notification routes.
func NotificationRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewNotificationRepository(db)
	controller := NewNotificationController(repo)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.GET("/users/me/notifications", controller.ListMyNotifications)
		authRoutes.PUT("/users/me/notifications/:notification_id/dismiss", controller.DismissNotification)
	}
}
