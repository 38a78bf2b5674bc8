// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"barkwise/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client (provider profiles, social proof).
	CacheClient *redis.Client
	// HoldClient is the dedicated client for ephemeral booking holds.
	HoldClient *redis.Client
)

// InitCache initializes the generic Redis cache client (using DB from AppConfig for general caching).
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitHoldCache initializes the Redis client backing booking holds (using DB from AppConfig).
func InitHoldCache() {
	HoldClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisHoldDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := HoldClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Holds): %v", err)
	}
}

// GetHoldClient returns the Redis client backing booking holds.
func GetHoldClient() *redis.Client {
	if HoldClient == nil {
		InitHoldCache()
	}
	return HoldClient
}

// InvalidateProviderProfile drops a provider's cached profile so the next
// read is guaranteed fresh. A nil client is a no-op.
func InvalidateProviderProfile(client *redis.Client, providerID string) {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Del(ctx, ProviderCachePrefix+providerID).Err(); err != nil {
		log.Printf("failed to invalidate provider cache for %s: %v", providerID, err)
	}
}
