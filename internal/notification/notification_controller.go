package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sportlink/refnet/internal/middleware"
	"github.com/sportlink/refnet/pkg/responses"
)

// NotificationController exposes the recipient-facing notification list.
type NotificationController struct {
	repo NotificationRepository
}

// NewNotificationController creates a new notification controller.
func NewNotificationController(repo NotificationRepository) *NotificationController {
	return &NotificationController{repo: repo}
}

// ListMyNotifications godoc
// @Summary List the authenticated member's undismissed notifications
// @Tags Notifications
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]Notification} "Notifications"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /users/me/notifications [get]
func (nc *NotificationController) ListMyNotifications(c *gin.Context) {
	profileID, err := middleware.GetProfileIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	notifications, total, err := nc.repo.ListUndismissed(profileID, page, limit)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve notifications: "+err.Error())
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Notifications retrieved successfully", notifications, total, page, limit)
}

// DismissNotification godoc
// @Summary Dismiss one of the authenticated member's notifications
// @Description Idempotent: dismissing an already-dismissed or absent notification succeeds with no effect.
// @Tags Notifications
// @Produce json
// @Param notification_id path uint true "Notification ID"
// @Success 200 {object} responses.SuccessResponse "Dismissed"
// @Failure 400 {object} responses.ErrorResponse "Invalid notification ID"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /users/me/notifications/{notification_id}/dismiss [put]
func (nc *NotificationController) DismissNotification(c *gin.Context) {
	profileID, err := middleware.GetProfileIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	notificationID, err := strconv.ParseUint(c.Param("notification_id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	if _, err := nc.repo.MarkDismissedByID(uint(notificationID), profileID); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to dismiss notification: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Notification dismissed", nil)
}
