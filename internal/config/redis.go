package config

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	RDB     *redis.Client
	redisMu sync.Mutex
)

// ConnectRedis initializes the shared Redis client (idempotent).
// Redis holds staged gateway payments and the admin notification channel.
func ConnectRedis(env Env) *redis.Client {
	redisMu.Lock()
	defer redisMu.Unlock()

	if RDB != nil {
		return RDB
	}

	client := redis.NewClient(&redis.Options{
		Addr:         env.RedisAddr,
		Password:     env.RedisPassword,
		DB:           env.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to ping Redis: %v", err)
	}

	RDB = client
	log.Println("connected to Redis")
	return RDB
}

func CloseRedis() {
	redisMu.Lock()
	defer redisMu.Unlock()

	if RDB != nil {
		_ = RDB.Close()
		RDB = nil
	}
}
