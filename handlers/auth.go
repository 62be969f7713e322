package handlers

import (
	"net/http"

	"flowmaster/middleware"
	"flowmaster/models"
	"flowmaster/services/user"
	"flowmaster/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves registration, login, service tokens and the caller's profile.
type AuthHandler struct {
	UserSvc user.UserService
}

func NewAuthHandler(svc user.UserService) *AuthHandler {
	return &AuthHandler{UserSvc: svc}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.UserSvc.Register(c.Request.Context(), req)
	if err != nil {
		getLogger(c).Error("User registration failed", zap.String("email", req.Email), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.UserSvc.Login(c.Request.Context(), req)
	if err != nil {
		getLogger(c).Info("Login failed", zap.String("email", req.Email))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ServiceToken handles POST /auth/service-token for trusted agents.
func (h *AuthHandler) ServiceToken(c *gin.Context) {
	var req models.ServiceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	token, err := h.UserSvc.IssueServiceToken(c.Request.Context(), req)
	if err != nil {
		getLogger(c).Warn("Service token refused", zap.String("tenantId", req.TenantID))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Profile handles GET /api/users/profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	p := middleware.Principal(c)
	if p == nil {
		utils.RespondError(c, &utils.UnauthorizedError{Message: "Unauthorized"})
		return
	}
	u, err := h.UserSvc.GetUserByID(c.Request.Context(), p.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// SetFCMToken handles PUT /api/users/fcm-token.
func (h *AuthHandler) SetFCMToken(c *gin.Context) {
	p := middleware.Principal(c)
	if p == nil {
		utils.RespondError(c, &utils.UnauthorizedError{Message: "Unauthorized"})
		return
	}
	var req models.FCMTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.UserSvc.SetFCMToken(c.Request.Context(), p.UserID, req.Token); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
