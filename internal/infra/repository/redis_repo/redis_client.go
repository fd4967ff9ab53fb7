package redis_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Option func(*redis.Options)

func WithPassword(password string) Option {
	return func(o *redis.Options) {
		o.Password = password
	}
}

func WithDB(db int) Option {
	return func(o *redis.Options) {
		o.DB = db
	}
}

func WithPoolSize(poolSize int) Option {
	return func(o *redis.Options) {
		o.PoolSize = poolSize
	}
}

// NewRedisClient 建立連線並 ping 一次，連不上直接回傳錯誤
func NewRedisClient(ctx context.Context, address string, options ...Option) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:        address,
		DialTimeout: 5 * time.Second,
	}
	for _, option := range options {
		option(opts)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", address, err)
	}
	return client, nil
}
