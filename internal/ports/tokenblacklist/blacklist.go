package tokenblacklist

import (
	"context"
	"time"
)

// BlacklistRepository پورت نگهداری توکن‌های باطل‌شده (logout) تا پایان مهلتشان
type BlacklistRepository interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
