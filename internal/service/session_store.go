package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/shoeverse/internal/cart"
	"github.com/RoyceAzure/lab/shoeverse/internal/errs"
	"gorm.io/gorm"
)

// SessionStore 以 session id 存放的狀態，redis 與 memory 兩種實作
// Update 對同一個 session 是原子的 read-modify-write
type SessionStore[T any] interface {
	Load(ctx context.Context, sid string) (*T, error)
	Update(ctx context.Context, sid string, fn func(*T) error) error
	Delete(ctx context.Context, sid string) error
}

type CartStore = SessionStore[cart.Cart]

type WishlistStore = SessionStore[cart.Wishlist]

var errMissingSession = errs.Validation("missing session id")

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// toAppError 已經是 AppError 的直接回傳，其餘視為內部錯誤
func toAppError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *errs.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return errs.Internal(err)
}
