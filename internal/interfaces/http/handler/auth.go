package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	identityapp "github.com/storelaunch/backend/internal/application/identity"
	"github.com/storelaunch/backend/internal/interfaces/http/dto"
	"github.com/storelaunch/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identityapp.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LoginResponse{
		Token: toTokenResponse(result.TokenResult),
		User:  toAuthUserResponse(result.User),
	})
}

// RefreshToken handles POST /auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"token": toTokenResponse(*result)})
}

// Logout handles POST /auth/logout. The presented access token is revoked
// until it would have expired.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Unauthorized")
		return
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		h.Unauthorized(c, "Unauthorized")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), identityapp.LogoutInput{
		UserID:   userID,
		TokenJTI: claims.ID,
		TokenTTL: claims.GetRemainingTTL(),
	}); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MessageResponse{Message: "Logged out successfully"})
}

// GetCurrentUser handles GET /auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toAuthUserResponse(*user))
}

// ForgotPassword handles POST /auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.authService.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ForgotPasswordResponse{Message: result.Message, DevToken: result.DevToken})
}

// VerifyResetToken handles GET /auth/verify-reset-token?token=
func (h *AuthHandler) VerifyResetToken(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, VerifyResetTokenResponse{Valid: false, Error: "Token is required"})
		return
	}

	valid, err := h.authService.VerifyResetToken(c.Request.Context(), token)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, VerifyResetTokenResponse{Valid: valid})
}

// ResetPassword handles POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), identityapp.ResetPasswordInput{
		Token:    req.Token,
		Password: req.Password,
	}); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MessageResponse{Message: "Password reset successfully"})
}
