// internal/publish/client.go
package publish

import (
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient builds a client from either "host:port" or a redis:// URL.
// It does not dial; the first command does.
func NewRedisClient(addr string) (redis.UniversalClient, error) {
	if addr == "" {
		return nil, fmt.Errorf("publish: redis addr is empty")
	}
	if !strings.Contains(addr, "://") {
		return redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}}), nil
	}

	opts, err := redis.ParseURL(addr)
	if err != nil {
		return nil, fmt.Errorf("publish: cant parse redis url: %w", err)
	}
	return redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        []string{opts.Addr},
		DB:           opts.DB,
		Username:     opts.Username,
		Password:     opts.Password,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		TLSConfig:    opts.TLSConfig,
	}), nil
}
