package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kingoftech-v01/shop-backend/config"
	"github.com/kingoftech-v01/shop-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Nil is re-exported so callers can test for cache misses without
// importing go-redis themselves.
var Nil = redis.Nil

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// SetJSON marshals value and stores it under key with the given TTL
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		logger.Error("Failed to marshal cache value", err, map[string]interface{}{
			"key": key,
		})
		return err
	}

	if err := client.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Error("Failed to write cache value", err, map[string]interface{}{
			"key": key,
		})
		return err
	}

	logger.Debug("Cache value written", map[string]interface{}{
		"key": key,
		"ttl": ttl.String(),
	})
	return nil
}

// GetJSON loads the value stored under key into dest.
// Returns redis.Nil when the key does not exist.
func GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Error("Failed to read cache value", err, map[string]interface{}{
				"key": key,
			})
		}
		return err
	}
	return json.Unmarshal(data, dest)
}
