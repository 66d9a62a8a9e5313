package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"ejareh/internal/core/auth"

	"go.uber.org/zap"
)

// LoadSigningContext ساخت SigningContext از env — یک بار در startup صدا زده
// می‌شود و مقدارش به سرویس و middleware تزریق می‌شود؛ هیچ‌جا دوباره env خوانده نمی‌شود
func LoadSigningContext() auth.SigningContext {
	key := os.Getenv("JWT_SECRET_KEY")
	if key == "" {
		Logger.Fatal("JWT_SECRET_KEY is not set")
	}

	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		Logger.Fatal("JWT_ISSUER is not set")
	}

	audience := os.Getenv("JWT_AUDIENCE")
	if audience == "" {
		Logger.Fatal("JWT_AUDIENCE is not set")
	}

	// مقدار خراب یعنی پیکربندی غلط — همان startup باید بایستیم نه در درخواست‌ها
	expireMinutes, err := parseMinutes(os.Getenv("JWT_EXPIRE_MINUTES"), 60)
	if err != nil {
		Logger.Fatal("JWT_EXPIRE_MINUTES is invalid", zap.Error(err))
	}

	slidingMinutes, err := parseMinutes(os.Getenv("JWT_SLIDING_EXPIRE_MINUTES"), 10)
	if err != nil {
		Logger.Fatal("JWT_SLIDING_EXPIRE_MINUTES is invalid", zap.Error(err))
	}

	return auth.SigningContext{
		Key:           []byte(key),
		Issuer:        issuer,
		Audience:      audience,
		TokenLifetime: time.Duration(expireMinutes) * time.Minute,
		SlidingWindow: time.Duration(slidingMinutes) * time.Minute,
	}
}

// parseMinutes تبدیل مقدار env به دقیقه؛ فقط مقدار خالی پیش‌فرض می‌گیرد،
// مقدار تنظیم‌شده ولی غیرقابل‌پارس خطاست
func parseMinutes(value string, def int) (int, error) {
	if value == "" {
		return def, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", value)
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be a positive number of minutes, got %d", n)
	}
	return n, nil
}
