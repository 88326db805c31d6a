package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/IqraSayed2/E-HealthCare/internal/config"
	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

func InitRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       0,
	})

	_, err := Redis.Ping(Ctx).Result()
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Token revocation and login rate limiting will be disabled.", err)
		Redis = nil
	} else {
		log.Println("Connected to Redis successfully")
	}
}

// BlacklistToken marks a JWT's JTI as revoked until the token would have
// expired anyway.
func BlacklistToken(jti string, ttl time.Duration) error {
	if Redis == nil || jti == "" {
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	return Redis.Set(Ctx, "token_blacklist:"+jti, "1", ttl).Err()
}

// IsTokenBlacklisted reports whether a JTI has been revoked via logout.
// Fails open when Redis is unavailable.
func IsTokenBlacklisted(jti string) bool {
	if Redis == nil || jti == "" {
		return false
	}
	exists, err := Redis.Exists(Ctx, "token_blacklist:"+jti).Result()
	if err != nil {
		return false
	}
	return exists > 0
}

// CheckRateLimit increments a counter for the key and reports whether the
// caller is still within limit for the window. Allows everything when Redis
// is down.
func CheckRateLimit(key string, limit int, window time.Duration) (bool, error) {
	if Redis == nil {
		return true, nil
	}
	redisKey := fmt.Sprintf("rate_limit:%s", key)
	count, err := Redis.Incr(Ctx, redisKey).Result()
	if err != nil {
		return true, err
	}

	if count == 1 {
		Redis.Expire(Ctx, redisKey, window)
	}

	return count <= int64(limit), nil
}
