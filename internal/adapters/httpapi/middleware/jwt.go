package middleware

import (
	"net/http"
	"strings"

	"ejareh/internal/core/auth"
	tokenblacklistPort "ejareh/internal/ports/tokenblacklist"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware اعتبارسنجی هدر Authorization و گذاشتن مشخصات کاربر در context
func JWTAuthMiddleware(sc auth.SigningContext, blacklist tokenblacklistPort.BlacklistRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims, err := auth.DecodeAndVerify(tokenString, sc)
		if err != nil {
			// منقضی یا نامعتبر — برای کاربر فرقی ندارد
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		// توکن‌های باطل‌شده با logout
		revoked, err := blacklist.IsRevoked(c.Request.Context(), tokenString)
		if err != nil || revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("userID", claims.Subject)
		c.Set("email", claims.Email)
		c.Set("token", tokenString)
		c.Next()
	}
}
