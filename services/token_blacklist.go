package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTokenBlacklist voids issued tokens before their natural expiry.
// Keys carry a TTL equal to the token's remaining lifetime, so redis cleans
// up after itself.
type RedisTokenBlacklist struct {
	Client *redis.Client
}

// TokenBlacklist is the process-wide instance. A nil blacklist means no
// token has ever been revoked, which is the correct answer for tests.
var TokenBlacklist *RedisTokenBlacklist

func NewTokenBlacklist(redisURL string) (*RedisTokenBlacklist, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisTokenBlacklist{Client: client}, nil
}

// BlacklistTokens voids an access/refresh pair, e.g. on logout.
func BlacklistTokens(ctx context.Context, accessToken, refreshToken string) error {
	if TokenBlacklist == nil {
		return nil
	}
	if accessToken != "" {
		if err := TokenBlacklist.blacklist(ctx, accessToken); err != nil {
			return err
		}
	}
	if refreshToken != "" {
		if err := TokenBlacklist.blacklist(ctx, refreshToken); err != nil {
			return err
		}
	}
	return nil
}

func (tb *RedisTokenBlacklist) blacklist(ctx context.Context, tokenString string) error {
	ttl := time.Until(TokenExpiry(tokenString))
	if ttl <= 0 {
		return nil // already expired, nothing to void
	}

	key := "blacklist:" + tokenString
	if err := tb.Client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// IsTokenBlacklisted reports whether the token has been revoked.
func IsTokenBlacklisted(ctx context.Context, tokenString string) bool {
	if TokenBlacklist == nil {
		return false
	}
	count, err := TokenBlacklist.Client.Exists(ctx, "blacklist:"+tokenString).Result()
	if err != nil {
		return false
	}
	return count > 0
}

func (tb *RedisTokenBlacklist) Close() error {
	return tb.Client.Close()
}
