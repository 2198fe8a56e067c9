package friendship

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sportlink/refnet/internal/middleware"
	"github.com/sportlink/refnet/internal/notification"
	"github.com/sportlink/refnet/internal/profile"
	"github.com/sportlink/refnet/pkg/responses"
	"github.com/sportlink/refnet/pkg/validator"
)

// FriendshipController handles the friend add/accept flows.
type FriendshipController struct {
	repo     FriendshipRepository
	profiles profile.ProfileRepository
	notifier *notification.Service
}

// NewFriendshipController creates a new friendship controller.
func NewFriendshipController(repo FriendshipRepository, profiles profile.ProfileRepository, notifier *notification.Service) *FriendshipController {
	return &FriendshipController{repo: repo, profiles: profiles, notifier: notifier}
}

type SendFriendRequestRequest struct {
	AddresseeID uint `json:"addressee_id" binding:"required"`
}

// FriendRequestView decorates an incoming request with the sender's summary.
type FriendRequestView struct {
	Edge
	Requester *profile.Summary `json:"requester,omitempty"`
}

// SendFriendRequest godoc
// @Summary Send a friend request
// @Tags Friendships
// @Accept json
// @Produce json
// @Param request body SendFriendRequestRequest true "Addressee"
// @Success 201 {object} responses.SuccessResponse{data=Edge} "Request sent"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 409 {object} responses.ErrorResponse "Edge already exists"
// @Security ApiKeyAuth
// @Router /friendships/requests [post]
func (fc *FriendshipController) SendFriendRequest(c *gin.Context) {
	profileID, err := middleware.GetProfileIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req SendFriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"status": "error", "errors": validator.ParseError(err)})
		return
	}

	if req.AddresseeID == profileID {
		responses.SendError(c, http.StatusBadRequest, "Cannot send a friend request to yourself")
		return
	}

	addressee, err := fc.profiles.GetByID(req.AddresseeID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to look up profile: "+err.Error())
		return
	}
	if addressee == nil {
		responses.SendError(c, http.StatusNotFound, "Profile not found")
		return
	}

	existing, err := fc.repo.GetBetween(profileID, req.AddresseeID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to check existing friendship: "+err.Error())
		return
	}
	if existing != nil && (existing.Status == StatusPending || existing.Status == StatusAccepted || existing.Status == StatusBlocked) {
		responses.SendError(c, http.StatusConflict, "A friendship or pending request already exists")
		return
	}

	edge := Edge{
		RequesterID: profileID,
		AddresseeID: req.AddresseeID,
		Status:      StatusPending,
	}
	if err := fc.repo.Create(&edge); err != nil {
		// The active-edge partial index backstops the pre-check above when
		// two sends for the same pair race.
		if IsUniqueViolation(err) {
			responses.SendError(c, http.StatusConflict, "A friendship or pending request already exists")
			return
		}
		responses.SendError(c, http.StatusInternalServerError, "Failed to create friend request: "+err.Error())
		return
	}

	fc.notifier.Emit(notification.KindFriendRequestReceived, edge.ID, edge.AddresseeID)
	responses.SendSuccess(c, http.StatusCreated, "Friend request sent", edge)
}

// RespondToFriendRequest godoc
// @Summary Accept or reject a pending friend request
// @Tags Friendships
// @Produce json
// @Param edge_id path uint true "Friendship edge ID"
// @Param action path string true "accept or reject"
// @Success 200 {object} responses.SuccessResponse{data=Edge} "Updated edge"
// @Failure 400 {object} responses.ErrorResponse "Invalid action"
// @Failure 403 {object} responses.ErrorResponse "Not the addressee"
// @Failure 404 {object} responses.ErrorResponse "Request not found"
// @Failure 409 {object} responses.ErrorResponse "Request already handled"
// @Security ApiKeyAuth
// @Router /friendships/requests/{edge_id}/{action} [put]
func (fc *FriendshipController) RespondToFriendRequest(c *gin.Context) {
	profileID, err := middleware.GetProfileIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	edgeID, err := strconv.ParseUint(c.Param("edge_id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid edge ID")
		return
	}

	action := c.Param("action")
	if action != "accept" && action != "reject" {
		responses.SendError(c, http.StatusBadRequest, "Action must be 'accept' or 'reject'")
		return
	}

	edge, err := fc.repo.GetByID(uint(edgeID))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve friend request: "+err.Error())
		return
	}
	if edge == nil {
		responses.SendError(c, http.StatusNotFound, "Friend request not found")
		return
	}
	if edge.AddresseeID != profileID {
		responses.SendError(c, http.StatusForbidden, "Only the addressee can respond to this request")
		return
	}
	if edge.Status != StatusPending {
		responses.SendError(c, http.StatusConflict, "Friend request has already been handled")
		return
	}

	newStatus := StatusAccepted
	if action == "reject" {
		newStatus = StatusRejected
	}
	if err := fc.repo.UpdateStatus(edge.ID, newStatus); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to update friend request: "+err.Error())
		return
	}
	edge.Status = newStatus

	fc.notifier.Dismiss(notification.KindFriendRequestReceived, edge.ID)
	responses.SendSuccess(c, http.StatusOK, "Friend request "+newStatus, edge)
}

// GetFriendshipStatus godoc
// @Summary Get the friendship status between the authenticated member and another profile
// @Description Returns the edge status regardless of which side initiated it, or "none" when no edge exists.
// @Tags Friendships
// @Produce json
// @Param profile_id path uint true "Other profile ID"
// @Success 200 {object} responses.SuccessResponse{data=string} "Friendship status"
// @Failure 400 {object} responses.ErrorResponse "Invalid profile ID"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /profiles/{profile_id}/friendship-status [get]
func (fc *FriendshipController) GetFriendshipStatus(c *gin.Context) {
	profileID, err := middleware.GetProfileIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	otherID, err := strconv.ParseUint(c.Param("profile_id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid profile ID")
		return
	}

	status, err := fc.repo.GetStatus(profileID, uint(otherID))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve friendship status: "+err.Error())
		return
	}
	if status == "" {
		status = "none"
	}
	responses.SendSuccess(c, http.StatusOK, "Friendship status retrieved successfully", status)
}

// ListFriends godoc
// @Summary List the authenticated member's accepted friends
// @Tags Friendships
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]profile.Summary} "Friends"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /users/me/friends [get]
func (fc *FriendshipController) ListFriends(c *gin.Context) {
	profileID, err := middleware.GetProfileIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	ids, err := fc.repo.ListFriendIDs(profileID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to list friends: "+err.Error())
		return
	}

	summaries, err := fc.profiles.GetSummaries(ids)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to load friend profiles: "+err.Error())
		return
	}

	friends := make([]profile.Summary, 0, len(ids))
	for _, id := range ids {
		if s, ok := summaries[id]; ok {
			friends = append(friends, s)
		}
	}
	responses.SendSuccess(c, http.StatusOK, "Friends retrieved successfully", friends)
}

// ListIncomingFriendRequests godoc
// @Summary List pending friend requests addressed to the authenticated member
// @Tags Friendships
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]FriendRequestView} "Pending requests"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /users/me/friend-requests [get]
func (fc *FriendshipController) ListIncomingFriendRequests(c *gin.Context) {
	profileID, err := middleware.GetProfileIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	edges, err := fc.repo.ListIncomingPending(profileID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to list friend requests: "+err.Error())
		return
	}

	requesterIDs := make([]uint, 0, len(edges))
	for _, e := range edges {
		requesterIDs = append(requesterIDs, e.RequesterID)
	}
	summaries, err := fc.profiles.GetSummaries(requesterIDs)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to load requester profiles: "+err.Error())
		return
	}

	views := make([]FriendRequestView, 0, len(edges))
	for _, e := range edges {
		view := FriendRequestView{Edge: e}
		if s, ok := summaries[e.RequesterID]; ok {
			view.Requester = &s
		}
		views = append(views, view)
	}
	responses.SendSuccess(c, http.StatusOK, "Friend requests retrieved successfully", views)
}
