package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	KindCart     = "cart"
	KindWishlist = "wishlist"

	defaultMaxRetries = 10
)

var ErrTooManyRetries = errors.New("session state update conflicted too many times")

// SessionStateRepo 以 session id 為單位存放 json 狀態
// 每次修改都是 WATCH/MULTI 的 read-modify-write
type SessionStateRepo[T any] struct {
	client     *redis.Client
	kind       string
	ttl        time.Duration
	maxRetries int
}

func NewSessionStateRepo[T any](client *redis.Client, kind string, ttl time.Duration) *SessionStateRepo[T] {
	return &SessionStateRepo[T]{
		client:     client,
		kind:       kind,
		ttl:        ttl,
		maxRetries: defaultMaxRetries,
	}
}

func (r *SessionStateRepo[T]) key(sid string) string {
	return fmt.Sprintf("shoeverse:%s:%s", r.kind, sid)
}

func decodeState[T any](data []byte) (*T, error) {
	state := new(T)
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("decode session state: %w", err)
	}
	return state, nil
}

// Load 不存在時回傳零值狀態
func (r *SessionStateRepo[T]) Load(ctx context.Context, sid string) (*T, error) {
	data, err := r.client.Get(ctx, r.key(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return new(T), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s state: %w", r.kind, err)
	}
	return decodeState[T](data)
}

// Update fn 回傳錯誤時不寫入，衝突時 fn 可能被呼叫多次
func (r *SessionStateRepo[T]) Update(ctx context.Context, sid string, fn func(*T) error) error {
	key := r.key(sid)

	txf := func(tx *redis.Tx) error {
		state := new(T)
		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		default:
			if state, err = decodeState[T](data); err != nil {
				return err
			}
		}

		if err := fn(state); err != nil {
			return err
		}

		encoded, err := json.Marshal(state)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, r.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < r.maxRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return ErrTooManyRetries
}

func (r *SessionStateRepo[T]) Delete(ctx context.Context, sid string) error {
	if err := r.client.Del(ctx, r.key(sid)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s state: %w", r.kind, err)
	}
	return nil
}
