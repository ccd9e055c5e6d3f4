package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ruanfdev/cleanbreak-backend/internal/services"
	"github.com/ruanfdev/cleanbreak-backend/internal/types"
)

type AuthHandler struct {
	authService   services.AuthService
	sessionCookie CookieConfig
}

func NewAuthHandler(authService services.AuthService, sessionCookie CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, sessionCookie: sessionCookie}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Password  string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	user := types.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	}
	if err := ah.authService.RegisterUser(c.Request.Context(), &user); err != nil {
		RespondError(c, http.StatusBadRequest, "registration_failed", err)
		return
	}

	// Registration logs the user straight in; the access gate will route
	// them to the quiz on their next navigation.
	accessToken, refreshToken, err := ah.authService.IssueSession(c.Request.Context(), &user)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "session_failed", err)
		return
	}
	ah.sessionCookie.Write(c, accessToken)
	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_in":    int(ah.authService.GetAccessTTL().Seconds()),
	})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	accessToken, refreshToken, err := ah.authService.LoginUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "login_failed", err)
		return
	}
	ah.sessionCookie.Write(c, accessToken)
	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_in":    int(ah.authService.GetAccessTTL().Seconds()),
	})
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
	accessToken, refreshToken, err := ah.authService.RefreshUser(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "refresh_failed", err)
		return
	}
	ah.sessionCookie.Write(c, accessToken)
	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_in":    int(ah.authService.GetAccessTTL().Seconds()),
	})
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	if err := ah.authService.LogoutUser(c.Request.Context()); err != nil {
		RespondError(c, http.StatusBadRequest, "logout_failed", err)
		return
	}
	ah.sessionCookie.Clear(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}
