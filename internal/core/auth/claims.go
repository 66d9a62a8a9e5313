package auth

import (
	"ejareh/internal/core/user"

	"github.com/dgrijalva/jwt-go"
)

// Claims اطلاعات داخل توکن: ایمیل کاربر به‌علاوه claimهای استاندارد JWT
type Claims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

// BuildClaims ساخت claimها از روی رکورد کاربر — تابع خالص، بدون I/O؛
// فیلدهای iat/exp/iss/aud بعداً توسط Encode پر می‌شوند
func BuildClaims(u *user.User) *Claims {
	return &Claims{
		Email: u.Email,
		StandardClaims: jwt.StandardClaims{
			Subject: u.ID.String(),
		},
	}
}
