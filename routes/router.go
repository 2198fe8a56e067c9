package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/sportlink/refnet/config"
	"github.com/sportlink/refnet/internal/auth"
	"github.com/sportlink/refnet/internal/friendship"
	"github.com/sportlink/refnet/internal/notification"
	"github.com/sportlink/refnet/internal/profile"
	"github.com/sportlink/refnet/internal/reference"
)

// SetupRoutes builds the gin engine and registers every feature's routes.
func SetupRoutes() *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	cfg := config.GetConfig()
	db := config.DB
	jwtSecret := cfg.JWT.AccessTokenSecret

	// API routes
	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, db, cfg)
	profile.ProfileRoutes(api, db, jwtSecret)
	friendship.FriendshipRoutes(api, db, jwtSecret)
	notification.NotificationRoutes(api, db, jwtSecret)
	reference.ReferenceRoutes(api, db, jwtSecret)

	return r
}
