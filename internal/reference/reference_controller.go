package reference

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sportlink/refnet/internal/middleware"
	"github.com/sportlink/refnet/pkg/apperrors"
	"github.com/sportlink/refnet/pkg/responses"
	"github.com/sportlink/refnet/pkg/validator"
)

// ReferenceController handles reference workflow HTTP requests.
type ReferenceController struct {
	service *Service
}

// NewReferenceController creates a new reference controller.
func NewReferenceController(service *Service) *ReferenceController {
	return &ReferenceController{service: service}
}

// sendWorkflowError maps a workflow error onto the HTTP status and envelope.
func sendWorkflowError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		responses.SendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var status int
	switch appErr.Code {
	case apperrors.ErrCodeNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeNotAuthorized, apperrors.ErrCodeNotFriends:
		status = http.StatusForbidden
	case apperrors.ErrCodeInvalidState, apperrors.ErrCodeDuplicateActive, apperrors.ErrCodeCapacityExceeded:
		status = http.StatusConflict
	case apperrors.ErrCodeNotEligibleRole, apperrors.ErrCodeSelfReference, apperrors.ErrCodeValidation:
		status = http.StatusBadRequest
	case apperrors.ErrCodeTransientFailure:
		status = http.StatusServiceUnavailable
	default:
		status = http.StatusInternalServerError
	}
	responses.SendErrorCode(c, status, appErr.Code, appErr.Message)
}

// --- DTOs for requests ---

type CreateReferenceRequest struct {
	GiverID          uint   `json:"giver_id" binding:"required"`
	RelationshipType string `json:"relationship_type" binding:"required,max=100"`
	RequestNote      string `json:"request_note" binding:"max=600"`
}

type RespondToReferenceRequest struct {
	Accept          *bool  `json:"accept" binding:"required"`
	EndorsementText string `json:"endorsement_text" binding:"max=800"`
}

type EditEndorsementRequest struct {
	EndorsementText *string `json:"endorsement_text" binding:"omitempty,max=800"`
}

// --- Handlers ---

// RequestReference godoc
// @Summary Request a reference from an accepted friend
// @Description Creates a pending reference relationship. The requester must be a player or coach, the giver an accepted friend, and the requester must hold fewer than 5 accepted references.
// @Tags References
// @Accept json
// @Produce json
// @Param request body CreateReferenceRequest true "Reference request"
// @Success 201 {object} responses.SuccessResponse{data=Relationship} "Pending relationship created"
// @Failure 400 {object} responses.ErrorResponse "Ineligible role, self-reference, or invalid input"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 403 {object} responses.ErrorResponse "Not accepted friends"
// @Failure 409 {object} responses.ErrorResponse "Duplicate active relationship or capacity reached"
// @Failure 503 {object} responses.ErrorResponse "Transient store contention"
// @Security ApiKeyAuth
// @Router /references/requests [post]
func (rc *ReferenceController) RequestReference(c *gin.Context) {
	profileID, err := middleware.GetProfileIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req CreateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"status": "error", "errors": validator.ParseError(err)})
		return
	}

	rel, err := rc.service.Request(profileID, req.GiverID, req.RelationshipType, req.RequestNote)
	if err != nil {
		sendWorkflowError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Reference requested successfully", rel)
}

// RespondToReference godoc
// @Summary Accept or decline a pending reference request
// @Description Giver-only. Accepting re-validates the requester's capacity; an optional endorsement can be attached on accept. The originating notification is dismissed either way.
// @Tags References
// @Accept json
// @Produce json
// @Param reference_id path uint true "Reference relationship ID"
// @Param response body RespondToReferenceRequest true "Response"
// @Success 200 {object} responses.SuccessResponse{data=Relationship} "Updated relationship"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 403 {object} responses.ErrorResponse "Caller is not the giver"
// @Failure 404 {object} responses.ErrorResponse "Relationship not found"
// @Failure 409 {object} responses.ErrorResponse "Not pending, or requester at capacity"
// @Failure 503 {object} responses.ErrorResponse "Transient store contention"
// @Security ApiKeyAuth
// @Router /references/{reference_id}/respond [put]
func (rc *ReferenceController) RespondToReference(c *gin.Context) {
	profileID, err := middleware.GetProfileIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	referenceID, err := strconv.ParseUint(c.Param("reference_id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid reference ID")
		return
	}

	var req RespondToReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"status": "error", "errors": validator.ParseError(err)})
		return
	}

	rel, err := rc.service.Respond(uint(referenceID), profileID, *req.Accept, req.EndorsementText)
	if err != nil {
		sendWorkflowError(c, err)
		return
	}

	message := "Reference declined"
	if *req.Accept {
		message = "Reference accepted"
	}
	responses.SendSuccess(c, http.StatusOK, message, rel)
}

// RemoveReference godoc
// @Summary Remove an accepted reference (requester side)
// @Tags References
// @Produce json
// @Param reference_id path uint true "Reference relationship ID"
// @Success 200 {object} responses.SuccessResponse "Reference removed"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 403 {object} responses.ErrorResponse "Caller is not the requester"
// @Failure 404 {object} responses.ErrorResponse "Relationship not found"
// @Failure 409 {object} responses.ErrorResponse "Relationship not accepted"
// @Security ApiKeyAuth
// @Router /references/{reference_id} [delete]
func (rc *ReferenceController) RemoveReference(c *gin.Context) {
	profileID, err := middleware.GetProfileIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	referenceID, err := strconv.ParseUint(c.Param("reference_id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid reference ID")
		return
	}

	if err := rc.service.Remove(uint(referenceID), profileID); err != nil {
		sendWorkflowError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Reference removed", nil)
}

// WithdrawReference godoc
// @Summary Withdraw an accepted reference (giver side)
// @Tags References
// @Produce json
// @Param reference_id path uint true "Reference relationship ID"
// @Success 200 {object} responses.SuccessResponse "Reference withdrawn"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 403 {object} responses.ErrorResponse "Caller is not the giver"
// @Failure 404 {object} responses.ErrorResponse "Relationship not found"
// @Failure 409 {object} responses.ErrorResponse "Relationship not accepted"
// @Security ApiKeyAuth
// @Router /references/{reference_id}/withdraw [put]
func (rc *ReferenceController) WithdrawReference(c *gin.Context) {
	profileID, err := middleware.GetProfileIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	referenceID, err := strconv.ParseUint(c.Param("reference_id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid reference ID")
		return
	}

	if err := rc.service.Withdraw(uint(referenceID), profileID); err != nil {
		sendWorkflowError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Reference withdrawn", nil)
}

// CancelReferenceRequest godoc
// @Summary Cancel a pending reference request (requester side)
// @Tags References
// @Produce json
// @Param reference_id path uint true "Reference relationship ID"
// @Success 200 {object} responses.SuccessResponse "Request cancelled"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 403 {object} responses.ErrorResponse "Caller is not the requester"
// @Failure 404 {object} responses.ErrorResponse "Relationship not found"
// @Failure 409 {object} responses.ErrorResponse "Relationship not pending"
// @Security ApiKeyAuth
// @Router /references/requests/{reference_id} [delete]
func (rc *ReferenceController) CancelReferenceRequest(c *gin.Context) {
	profileID, err := middleware.GetProfileIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	referenceID, err := strconv.ParseUint(c.Param("reference_id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid reference ID")
		return
	}

	if err := rc.service.Cancel(uint(referenceID), profileID); err != nil {
		sendWorkflowError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Reference request cancelled", nil)
}

// EditEndorsement godoc
// @Summary Edit or clear the endorsement on an accepted reference (giver side)
// @Tags References
// @Accept json
// @Produce json
// @Param reference_id path uint true "Reference relationship ID"
// @Param endorsement body EditEndorsementRequest true "Endorsement text (null clears)"
// @Success 200 {object} responses.SuccessResponse{data=Relationship} "Updated relationship"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 403 {object} responses.ErrorResponse "Caller is not the giver"
// @Failure 404 {object} responses.ErrorResponse "Relationship not found"
// @Failure 409 {object} responses.ErrorResponse "Relationship not accepted"
// @Security ApiKeyAuth
// @Router /references/{reference_id}/endorsement [put]
func (rc *ReferenceController) EditEndorsement(c *gin.Context) {
	profileID, err := middleware.GetProfileIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	referenceID, err := strconv.ParseUint(c.Param("reference_id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid reference ID")
		return
	}

	var req EditEndorsementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"status": "error", "errors": validator.ParseError(err)})
		return
	}

	rel, err := rc.service.EditEndorsement(uint(referenceID), profileID, req.EndorsementText)
	if err != nil {
		sendWorkflowError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Endorsement updated", rel)
}

// ListProfileReferences godoc
// @Summary List a profile's references
// @Description Returns the accepted, pending, incoming, and given projections for the profile.
// @Tags References
// @Produce json
// @Param profile_id path uint true "Profile ID"
// @Success 200 {object} responses.SuccessResponse{data=ListResult} "Reference projections"
// @Failure 400 {object} responses.ErrorResponse "Invalid profile ID"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /profiles/{profile_id}/references [get]
func (rc *ReferenceController) ListProfileReferences(c *gin.Context) {
	profileID, err := strconv.ParseUint(c.Param("profile_id"), 10, 32)
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, "Invalid profile ID")
		return
	}

	result, err := rc.service.List(uint(profileID))
	if err != nil {
		sendWorkflowError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "References retrieved successfully", result)
}

// ListMyReferences godoc
// @Summary List the authenticated member's references
// @Tags References
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=ListResult} "Reference projections"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /users/me/references [get]
func (rc *ReferenceController) ListMyReferences(c *gin.Context) {
	profileID, err := middleware.GetProfileIDFromContext(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	result, err := rc.service.List(profileID)
	if err != nil {
		sendWorkflowError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "References retrieved successfully", result)
}

// GetRelationshipTypes godoc
// @Summary List the allowed relationship type labels
// @Tags References
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]string} "Relationship types"
// @Router /references/relationship-types [get]
func (rc *ReferenceController) GetRelationshipTypes(c *gin.Context) {
	responses.SendSuccess(c, http.StatusOK, "Relationship types retrieved successfully", RelationshipTypes())
}
