package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/go-redis/redis/v8"
)

type BlacklistRepositoryRedis struct {
	Client *redis.Client
}

func NewBlacklistRepositoryRedis(client *redis.Client) *BlacklistRepositoryRedis {
	return &BlacklistRepositoryRedis{
		Client: client,
	}
}

// کلید Redis از هش توکن ساخته می‌شود تا خود توکن در Redis ذخیره نشود
func blacklistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked:" + hex.EncodeToString(sum[:])
}

// Revoke باطل کردن توکن تا پایان مهلتش؛ TTL انقضای خودکار را انجام می‌دهد
func (r *BlacklistRepositoryRedis) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// مهلت توکن گذشته، چیزی برای نگه داشتن نیست
		return nil
	}
	return r.Client.Set(ctx, blacklistKey(token), "1", ttl).Err()
}

// IsRevoked بررسی اینکه توکن قبلاً باطل شده یا نه
func (r *BlacklistRepositoryRedis) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.Client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
