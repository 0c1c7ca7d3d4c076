package cache

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// Connect opens the redis client used for order-history caching.
func Connect() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "redis:6379"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "",
		DB:       0,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	log.Printf("Redis connected (%s)", addr)
	return rdb
}

// OrdersKey is the cache key for one user's order history.
func OrdersKey(userID uint) string {
	return fmt.Sprintf("orders:%d", userID)
}
