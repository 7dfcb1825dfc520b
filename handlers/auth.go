package handlers

import (
	"net/http"
	"time"

	"grambazaar/config"
	"grambazaar/middleware"
	"grambazaar/models"
	"grambazaar/services/user"
	"grambazaar/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	Users user.UserService
}

func NewAuthHandler(users user.UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func setTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.TokenCookieName, token, maxAge, "/", "", config.IsProduction(), true)
}

// RegisterHandler creates a customer account.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req models.UserRegistration
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Users.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "userId": u.ID})
}

// LoginHandler verifies credentials and sets the session cookie.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	setTokenCookie(c, resp.Token, int(time.Until(resp.ExpiresAt).Seconds()))
	getLogger(c).Info("User logged in", zap.String("userId", resp.User.ID))
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": resp.User})
}

// LogoutHandler revokes the current token and clears the cookie.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	if err := h.Users.Logout(c.Request.Context(), middleware.TokenFromRequest(c)); err != nil {
		getLogger(c).Warn("Logout: token revocation failed", zap.Error(err))
	}
	setTokenCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// MeHandler reports the session state; it never fails with 401.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"isAuthenticated": false, "user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"isAuthenticated": true,
		"user":            gin.H{"userId": id.UserID, "role": id.Role},
	})
}

func (h *AuthHandler) GetProfileHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	u, err := h.Users.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *AuthHandler) UpdateProfileHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req models.ProfileUpdate
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Users.UpdateProfile(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": u})
}
