// Package utils: connection helpers shared by the binaries; environment
// reading stays here so main packages only wire things together.
package utils

import (
	"os"
	"strconv"

	"fs-api/internal/logger"

	"github.com/redis/go-redis/v9"
)

// OpenRedis opens a client from explicit parameters, kept for tests and
// manual injection.
func OpenRedis(addr, pass string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr, Password: pass})
}

// OpenRedisFromEnv opens a client from the environment.
// Constraints: returns nil when REDIS_HOST is unset, callers treat nil as
// "cache disabled"; a bad REDIS_DB value silently falls back to 0.
func OpenRedisFromEnv() *redis.Client {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		return nil
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	addr := host + ":" + port
	pass := os.Getenv("REDIS_PASS")
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, _ := strconv.Atoi(v); n >= 0 {
			db = n
		}
	}
	logger.L().Debug("redis_env", "addr", addr, "db", db)
	return redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
}
