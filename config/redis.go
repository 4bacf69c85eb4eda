package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is a global Redis client instance, nil when REDIS_ADDR is unset.
var RedisClient *redis.Client

// InitRedis creates RedisClient from AppConfig and checks it answers PING.
// An unreachable Redis leaves RedisClient nil so callers fall back to no cache.
func InitRedis() error {
	if err := LoadAppConfig(); err != nil {
		return err
	}
	c := AppConfig
	if c.RedisAddr == "" {
		RedisClient = nil
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:         c.RedisAddr,
		Password:     c.RedisPass,
		DB:           c.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		RedisClient = nil
		return err
	}
	RedisClient = client
	return nil
}
