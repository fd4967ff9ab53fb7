package service

import (
	"context"

	"github.com/RoyceAzure/lab/shoeverse/internal/cart"
	"github.com/RoyceAzure/lab/shoeverse/internal/catalog"
	"github.com/RoyceAzure/lab/shoeverse/internal/errs"
)

type IWishlistService interface {
	Add(ctx context.Context, sid string, category string, productID int) error
	Remove(ctx context.Context, sid string, category string, productID int) error
	View(ctx context.Context, sid string) ([]catalog.Product, error)
	Contains(ctx context.Context, sid string, category string, productID int) (bool, error)
}

type WishlistService struct {
	store   WishlistStore
	catalog catalog.Lookup
}

func NewWishlistService(store WishlistStore, lookup catalog.Lookup) *WishlistService {
	return &WishlistService{store: store, catalog: lookup}
}

// Add 重複加入不算錯誤
func (s *WishlistService) Add(ctx context.Context, sid string, category string, productID int) error {
	if sid == "" {
		return errMissingSession
	}
	product, err := s.catalog.Get(category, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return errs.NotFound("product not found")
	}

	err = s.store.Update(ctx, sid, func(w *cart.Wishlist) error {
		w.Add(category, productID)
		return nil
	})
	return toAppError(err)
}

func (s *WishlistService) Remove(ctx context.Context, sid string, category string, productID int) error {
	if sid == "" {
		return errMissingSession
	}
	err := s.store.Update(ctx, sid, func(w *cart.Wishlist) error {
		w.Remove(category, productID)
		return nil
	})
	return toAppError(err)
}

func (s *WishlistService) View(ctx context.Context, sid string) ([]catalog.Product, error) {
	products := make([]catalog.Product, 0)
	if sid == "" {
		return products, nil
	}
	w, err := s.store.Load(ctx, sid)
	if err != nil {
		return nil, errs.Internal(err)
	}
	for _, e := range w.Entries {
		p, err := s.catalog.Get(e.Category, e.ProductID)
		if err != nil || p == nil {
			continue
		}
		products = append(products, *p)
	}
	return products, nil
}

func (s *WishlistService) Contains(ctx context.Context, sid string, category string, productID int) (bool, error) {
	if sid == "" {
		return false, nil
	}
	w, err := s.store.Load(ctx, sid)
	if err != nil {
		return false, errs.Internal(err)
	}
	return w.Contains(category, productID), nil
}

var _ IWishlistService = (*WishlistService)(nil)
