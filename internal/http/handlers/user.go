package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/storynest-backend/internal/http/response"
	"github.com/yungbote/storynest-backend/internal/pkg/ctxutil"
	"github.com/yungbote/storynest-backend/internal/services"
)

type UserHandler struct {
	authService services.AuthService
}

func NewUserHandler(authService services.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

func (uh *UserHandler) Signup(c *gin.Context) {
	var req services.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, pair, err := uh.authService.Register(c.Request.Context(), req)
	if err != nil {
		response.RespondMapped(c, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"userId":       user.ID,
		"parentName":   user.ParentName,
		"childName":    user.ChildName,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

func (uh *UserHandler) Login(c *gin.Context) {
	var req struct {
		ParentEmail string `json:"parentEmail"`
		Password    string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, pair, err := uh.authService.Login(c.Request.Context(), req.ParentEmail, req.Password)
	if err != nil {
		response.RespondMapped(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"userId":       user.ID,
		"parentName":   user.ParentName,
		"childName":    user.ChildName,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

func (uh *UserHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, pair, err := uh.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.RespondMapped(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"userId":       user.ID,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

func (uh *UserHandler) Logout(c *gin.Context) {
	userID := ctxutil.UserID(c.Request.Context())
	if err := uh.authService.Logout(c.Request.Context(), userID); err != nil {
		response.RespondMapped(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Logged out successfully"})
}
