package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inc-tasks/task-api/internal/dto"
	apierrors "github.com/inc-tasks/task-api/internal/errors"
	"github.com/inc-tasks/task-api/internal/middleware"
	"github.com/inc-tasks/task-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService     *services.AuthService
	passwordService *services.PasswordService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, passwordService *services.PasswordService) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		passwordService: passwordService,
	}
}

// Login authenticates a user and issues an access and a refresh token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success("Login successful", dto.LoginResponse{
		User:         dto.ToUserDTO(*result.User),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}))
}

// RefreshToken exchanges a refresh token for a new access token.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success("Token refreshed successfully", dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}))
}

// ForgotPassword emails a one-time code to the account owner.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.passwordService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success("Password reset OTP sent to your email", nil))
}

// VerifyOTP checks a one-time code without consuming it.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.passwordService.VerifyOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success("OTP verified successfully", nil))
}

// UpdatePassword sets a new password and clears any pending code.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req dto.UpdatePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.passwordService.UpdatePassword(c.Request.Context(), req.Email, req.NewPassword); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success("Password updated successfully", nil))
}

// VerifyToken returns the identity decoded from the access token.
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, middleware.MsgTokenRequired)
		return
	}

	c.JSON(http.StatusOK, dto.Success("User information retrieved successfully", dto.ToIdentityDTO(identity)))
}
