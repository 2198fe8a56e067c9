package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sportlink/refnet/config"
	"github.com/sportlink/refnet/internal/profile"
	"github.com/sportlink/refnet/pkg/responses"
	"github.com/sportlink/refnet/pkg/token"
	"github.com/sportlink/refnet/pkg/validator"
	"github.com/sportlink/refnet/utils"
)

// AuthController handles account registration and login.
type AuthController struct {
	profiles  profile.ProfileRepository
	appConfig *config.Config
}

// NewAuthController creates a new auth controller.
func NewAuthController(profiles profile.ProfileRepository, appConfig *config.Config) *AuthController {
	return &AuthController{
		profiles:  profiles,
		appConfig: appConfig,
	}
}

type RegisterRequest struct {
	DisplayName string `json:"display_name" binding:"required,min=2,max=100" example:"John Doe"`
	Email       string `json:"email" binding:"required,email" example:"john@example.com"`
	Password    string `json:"password" binding:"required,min=8,max=72" example:"password123"`
	Role        string `json:"role" binding:"required,oneof=player coach club brand" example:"player"`
	AvatarURL   string `json:"avatar_url"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"john@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	Profile     profile.Summary `json:"profile"`
}

// Register godoc
// @Summary Register a new member profile
// @Description Creates a member account with one of the roles: player, coach, club, brand.
// @Tags Auth
// @Accept json
// @Produce json
// @Param account body RegisterRequest true "Registration data"
// @Success 201 {object} responses.SuccessResponse{data=profile.Summary} "Profile created"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 409 {object} responses.ErrorResponse "Email already registered"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"status": "error", "errors": validator.ParseError(err)})
		return
	}

	existing, err := ac.profiles.GetByEmail(req.Email)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to check existing account: "+err.Error())
		return
	}
	if existing != nil {
		responses.SendError(c, http.StatusConflict, "Email already registered")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	p := profile.Profile{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Password:    hashed,
		AvatarURL:   req.AvatarURL,
		Role:        req.Role,
	}
	if err := ac.profiles.Create(&p); err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to create profile: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Profile registered successfully", p.Summary())
}

// Login godoc
// @Summary Log in and receive an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} responses.SuccessResponse{data=LoginResponse} "Access token"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Invalid credentials"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"status": "error", "errors": validator.ParseError(err)})
		return
	}

	p, err := ac.profiles.GetByEmail(req.Email)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to look up account: "+err.Error())
		return
	}
	if p == nil || !utils.CheckPassword(p.Password, req.Password) {
		responses.SendError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	accessToken, err := token.GenerateJWT(p.ID, p.Role, ac.appConfig.JWT.AccessTokenSecret, ac.appConfig.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Logged in successfully", LoginResponse{
		AccessToken: accessToken,
		Profile:     p.Summary(),
	})
}
