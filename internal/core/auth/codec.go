package auth

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Encode تولید توکن امضاشده‌ی HS256 از روی claimها؛ iat همین حالا و
// exp = iat + TokenLifetime تنظیم می‌شود و بعد از صدور هرگز تغییر نمی‌کند
func Encode(claims *Claims, sc SigningContext) (string, error) {
	now := time.Now()
	claims.IssuedAt = now.Unix()
	claims.ExpiresAt = now.Add(sc.TokenLifetime).Unix()
	claims.Issuer = sc.Issuer
	claims.Audience = sc.Audience

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(sc.Key)
}

// DecodeUnverified فقط payload را می‌خواند — نه امضا چک می‌شود نه انقضا.
// خروجی این تابع قابل اعتماد نیست و فقط برای خواندن exp (مسیر refresh)
// استفاده می‌شود؛ برای تصمیم‌های امنیتی حتماً DecodeAndVerify
func DecodeUnverified(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// DecodeAndVerify اعتبارسنجی کامل توکن: امضا، الگوریتم، انقضا، issuer و audience.
// هیچ clock skew مجاز نیست — به محض now >= exp توکن منقضی حساب می‌شود.
// خروجی: ErrTokenExpired فقط وقتی تنها مشکل انقضا باشد، وگرنه ErrTokenInvalid
func DecodeAndVerify(tokenString string, sc SigningContext) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		// جلوگیری از حمله‌ی تعویض الگوریتم — فقط HS256
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return sc.Key, nil
	})
	if err != nil {
		ve, ok := err.(*jwt.ValidationError)
		if !ok {
			return nil, ErrTokenMalformed
		}
		switch {
		case ve.Errors&jwt.ValidationErrorMalformed != 0:
			return nil, ErrTokenMalformed
		case ve.Errors&(jwt.ValidationErrorUnverifiable|jwt.ValidationErrorSignatureInvalid) != 0:
			return nil, ErrTokenInvalid
		case ve.Errors&jwt.ValidationErrorExpired != 0:
			// Expired فقط وقتی که تنها مشکل انقضا باشد؛ claimها قبل از
			// اعتبارسنجی پر شده‌اند پس issuer/audience اینجا هم چک می‌شوند
			if !verifyIssuerAndAudience(claims, sc) {
				return nil, ErrTokenInvalid
			}
			return nil, ErrTokenExpired
		default:
			return nil, ErrTokenInvalid
		}
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	// jwt-go فقط exp/iat/nbf را چک می‌کند؛ issuer و audience دستی
	if !verifyIssuerAndAudience(claims, sc) {
		return nil, ErrTokenInvalid
	}

	// jwt-go لحظه‌ی now == exp را هنوز معتبر می‌داند؛ اینجا نه —
	// به محض now >= exp توکن منقضی است
	if time.Now().Unix() >= claims.ExpiresAt {
		return nil, ErrTokenExpired
	}

	return claims, nil
}

func verifyIssuerAndAudience(claims *Claims, sc SigningContext) bool {
	return claims.VerifyIssuer(sc.Issuer, true) && claims.VerifyAudience(sc.Audience, true)
}
