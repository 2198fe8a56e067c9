package profile

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sportlink/refnet/internal/middleware"
	"github.com/sportlink/refnet/pkg/responses"
)

// ProfileController handles profile-related HTTP requests.
type ProfileController struct {
	repo ProfileRepository
}

// NewProfileController creates a new profile controller.
func NewProfileController(repo ProfileRepository) *ProfileController {
	return &ProfileController{repo: repo}
}

// GetProfileSummary godoc
// @Summary Get a profile's public summary
// @Description Retrieves the public summary (display name, avatar, role) for a profile.
// @Tags Profiles
// @Produce json
// @Param profile_id path uint true "Profile ID"
// @Success 200 {object} responses.SuccessResponse{data=Summary} "Profile summary"
// @Failure 404 {object} responses.ErrorResponse "Profile not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /profiles/{profile_id} [get]
func (pc *ProfileController) GetProfileSummary(c *gin.Context) {
	profileID, err := strconv.ParseUint(c.Param("profile_id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid profile ID")
		return
	}

	summary, err := pc.repo.GetSummary(uint(profileID))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve profile: "+err.Error())
		return
	}
	if summary == nil {
		responses.SendError(c, http.StatusNotFound, "Profile not found")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile retrieved successfully", summary)
}

// GetMyProfile godoc
// @Summary Get the authenticated member's profile
// @Tags Profiles
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=Profile} "Own profile"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /users/me [get]
func (pc *ProfileController) GetMyProfile(c *gin.Context) {
	profileID, err := middleware.GetProfileIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	p, err := pc.repo.GetByID(profileID)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to retrieve profile: "+err.Error())
		return
	}
	if p == nil {
		responses.SendError(c, http.StatusNotFound, "Profile not found")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile retrieved successfully", p)
}
