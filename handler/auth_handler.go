package handler

import (
	"errors"

	"notesvc/dto"
	"notesvc/services"
	"notesvc/usecase"
	"notesvc/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	Users *usecase.UserService
}

func NewAuthHandler(users *usecase.UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

// Register handles POST /api/auth/register and returns a token pair so the
// client is logged in immediately.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, bindingErrorFields(err))
		return
	}

	user, err := h.Users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrUsernameTaken) {
			utils.TrackAuthAttempt("failure", "register")
			utils.Conflict(c, "Username already exists")
			return
		}
		utils.InternalError(c, "Failed to register user")
		return
	}

	pair, err := issueTokenPair(user.UserID)
	if err != nil {
		utils.InternalError(c, "Failed to generate tokens")
		return
	}

	utils.TrackAuthAttempt("success", "register")
	utils.Created(c, pair)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, bindingErrorFields(err))
		return
	}

	user, err := h.Users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		utils.TrackAuthAttempt("failure", "login")
		utils.Unauthorized(c, "Invalid username or password")
		return
	}

	pair, err := issueTokenPair(user.UserID)
	if err != nil {
		utils.InternalError(c, "Failed to generate tokens")
		return
	}

	utils.TrackAuthAttempt("success", "login")
	utils.Success(c, pair)
}

// Refresh handles POST /api/auth/refresh: trades a valid refresh token for
// a new pair and voids the old refresh token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, bindingErrorFields(err))
		return
	}

	ctx := c.Request.Context()
	if services.IsTokenBlacklisted(ctx, req.Refresh) {
		utils.TrackAuthAttempt("failure", "refresh")
		utils.Unauthorized(c, "Token has been invalidated")
		return
	}

	userID, err := services.ParseToken(req.Refresh, "refresh")
	if err != nil {
		utils.TrackAuthAttempt("failure", "refresh")
		utils.Unauthorized(c, "Invalid refresh token")
		return
	}

	if err := services.BlacklistTokens(ctx, "", req.Refresh); err != nil {
		utils.InternalError(c, "Failed to rotate tokens")
		return
	}

	pair, err := issueTokenPair(userID)
	if err != nil {
		utils.InternalError(c, "Failed to generate tokens")
		return
	}

	utils.TrackAuthAttempt("success", "refresh")
	utils.Success(c, pair)
}

// Logout handles POST /api/auth/logout (authenticated): voids the presented
// access token and the refresh token from the body.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, bindingErrorFields(err))
		return
	}

	accessToken := c.GetString("access_token")
	if err := services.BlacklistTokens(c.Request.Context(), accessToken, req.Refresh); err != nil {
		utils.InternalError(c, "Failed to log out")
		return
	}

	utils.SuccessMessage(c, "Logged out successfully.")
}

func issueTokenPair(userID string) (*dto.TokenPair, error) {
	access, err := services.GenerateAccessToken(userID)
	if err != nil {
		return nil, err
	}
	refresh, err := services.GenerateRefreshToken(userID)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPair{Access: access, Refresh: refresh}, nil
}

// bindingErrorFields flattens gin's validator errors into the field map the
// envelope expects.
func bindingErrorFields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"error": "Invalid request body"}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = "This field is required."
		case "email":
			fields[fe.Field()] = "Must be a valid email address."
		case "min":
			fields[fe.Field()] = "Too short (min " + fe.Param() + ")."
		case "max":
			fields[fe.Field()] = "Too long (max " + fe.Param() + ")."
		case "password":
			fields[fe.Field()] = "Must be at least 6 characters with a number and a special character."
		default:
			fields[fe.Field()] = "Invalid value."
		}
	}
	return fields
}
