package httpapi

import (
	"errors"
	"net/http"
	"time"

	"ejareh/internal/core/auth"
	tokenblacklistPort "ejareh/internal/ports/tokenblacklist"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	uc        AuthUseCase
	blacklist tokenblacklistPort.BlacklistRepository
	sc        auth.SigningContext
}

func NewAuthController(uc AuthUseCase, blacklist tokenblacklistPort.BlacklistRepository, sc auth.SigningContext) *AuthController {
	return &AuthController{uc: uc, blacklist: blacklist, sc: sc}
}

func (ctl *AuthController) LoginUser(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	res, err := ctl.uc.LoginUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, auth.ErrWrongPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": "wrong password"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not login"})
		}
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *AuthController) RegisterUser(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Family   string `json:"family" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	u, err := ctl.uc.RegisterUser(c.Request.Context(), req.Name, req.Family, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not register user"})
		return
	}
	c.JSON(http.StatusCreated, u)
}

// ValidateToken اعتبارسنجی توکن و برگرداندن زمان انقضا؛ هر خطایی 401 است
func (ctl *AuthController) ValidateToken(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	// توکن‌های باطل‌شده با logout هم 401 می‌گیرند
	if revoked, err := ctl.blacklist.IsRevoked(c.Request.Context(), req.Token); err != nil || revoked {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	expiresAt, err := ctl.uc.ValidateToken(req.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"expiresAt": expiresAt})
}

func (ctl *AuthController) RefreshToken(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	if revoked, err := ctl.blacklist.IsRevoked(c.Request.Context(), req.Token); err != nil || revoked {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token can not be refreshed"})
		return
	}

	res, err := ctl.uc.RefreshToken(c.Request.Context(), req.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token can not be refreshed"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// Logout باطل کردن توکن جاری تا پایان بازه‌ی refresh
func (ctl *AuthController) Logout(c *gin.Context) {
	tokenString, exists := c.Get("token")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	claims, err := auth.DecodeUnverified(tokenString.(string))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	// توکن باید تا پایان بازه‌ی sliding هم غیرقابل استفاده بماند
	deadline := time.Unix(claims.ExpiresAt, 0).Add(ctl.sc.SlidingWindow)
	if err := ctl.blacklist.Revoke(c.Request.Context(), tokenString.(string), time.Until(deadline)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not logout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "successfully logged out"})
}

func (ctl *AuthController) Me(c *gin.Context) {
	email, exists := c.Get("email")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	u, err := ctl.uc.GetProfile(c.Request.Context(), email.(string))
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get profile"})
		return
	}
	c.JSON(http.StatusOK, u)
}
