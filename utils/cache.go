// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"corpay/config"

	"github.com/go-redis/redis/v8"
)

// SessionCacheClient holds in-flight checkout sessions.
var SessionCacheClient *redis.Client

// CheckoutSessionTTL is how long an idle checkout session survives.
const CheckoutSessionTTL = 30 * time.Minute

// InitRedis initializes the Redis client for checkout session caching.
func InitRedis() {
	SessionCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := SessionCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Sessions): %v", err)
	}
}

// GetSessionCacheClient returns the checkout session cache client.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitRedis()
	}
	return SessionCacheClient
}
