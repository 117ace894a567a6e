// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"aquafarm-service/internal/domain/user"
	"aquafarm-service/internal/middleware"
	"aquafarm-service/internal/pkg/response"
	authService "aquafarm-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *authService.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(svc *authService.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: svc, logger: logger}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid registration payload", err)
		return
	}

	profile, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "registration failed", err)
		return
	}

	response.Success(c, http.StatusCreated, "account created", profile)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid login payload", err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "login failed", err)
		return
	}

	response.Success(c, http.StatusOK, "logged in", result)
}

func (h *AuthHandler) GetMe(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	profile, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, "failed to load profile", err)
		return
	}

	response.Success(c, http.StatusOK, "profile retrieved", profile)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.MustGetIdentityID(c)

	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid profile payload", err)
		return
	}

	profile, err := h.authService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		response.FromError(c, "failed to update profile", err)
		return
	}

	response.Success(c, http.StatusOK, "profile updated", profile)
}
