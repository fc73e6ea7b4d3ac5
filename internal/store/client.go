// Package store persists chat documents in Redis. Each record is a single
// JSON document under a namespaced key, so reads and writes stay whole-record
// and the last writer wins.
package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "chat"

// ConnectConfig controls the startup connection check.
type ConnectConfig struct {
	Addr     string
	Password string
	DB       int
	// MaxAttempts bounds the PING retry loop; Delay is the fixed wait
	// between attempts.
	MaxAttempts int
	Delay       time.Duration
}

// Connect opens a Redis client and verifies it with a bounded PING retry
// loop. The error from the last attempt is returned after exhaustion.
func Connect(ctx context.Context, cfg ConnectConfig) (*redis.Client, error) {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.Delay <= 0 {
		cfg.Delay = 5 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			client.Close()
			return nil, err
		}

		lastErr = client.Ping(ctx).Err()
		if lastErr == nil {
			return client, nil
		}

		if attempt < cfg.MaxAttempts {
			log.Printf("[store] redis connection failed (attempt %d/%d): %v, retrying in %s",
				attempt, cfg.MaxAttempts, lastErr, cfg.Delay)
			select {
			case <-ctx.Done():
				client.Close()
				return nil, ctx.Err()
			case <-time.After(cfg.Delay):
			}
		}
	}

	client.Close()
	return nil, fmt.Errorf("redis unreachable after %d attempts: %w", cfg.MaxAttempts, lastErr)
}

func settingsKey(userID string) string {
	return fmt.Sprintf("%s:settings:%s", keyPrefix, userID)
}

func conversationKey(userID string) string {
	return fmt.Sprintf("%s:conversation:%s", keyPrefix, userID)
}
