package adapter

import (
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to the redis instance backing the stream buses.
func NewRedisClient(addr string) redis.UniversalClient {
	if addr == "" {
		addr = "localhost:6379"
	}
	return redis.NewClient(&redis.Options{
		Addr: addr,
	})
}
