package auth

import "errors"

// خطاهای سرویس احراز هویت — کنترلرها با errors.Is روی این مقادیر شاخه می‌زنند
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")
	ErrEmailTaken    = errors.New("email already taken")

	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token is expired")
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrNotRefreshable = errors.New("token is not refreshable")
)
