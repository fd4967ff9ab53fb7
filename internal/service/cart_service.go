package service

import (
	"context"

	"github.com/RoyceAzure/lab/shoeverse/internal/cart"
	"github.com/RoyceAzure/lab/shoeverse/internal/catalog"
	"github.com/RoyceAzure/lab/shoeverse/internal/errs"
	"github.com/shopspring/decimal"
)

type ICartService interface {
	AddItem(ctx context.Context, sid string, category string, productID int, size string, qty int) error
	RemoveItem(ctx context.Context, sid string, category string, productID int, size string) error
	UpdateQuantity(ctx context.Context, sid string, category string, productID int, size string, direction string) error
	Snapshot(ctx context.Context, sid string) ([]cart.Line, error)
	View(ctx context.Context, sid string) (*CartView, error)
	Clear(ctx context.Context, sid string) error
}

type CartLineView struct {
	cart.Line
	Name      string
	Price     decimal.Decimal
	Image     string
	LineTotal decimal.Decimal
}

type CartView struct {
	Lines    []CartLineView
	Subtotal decimal.Decimal
}

type CartService struct {
	store   CartStore
	catalog catalog.Lookup
}

func NewCartService(store CartStore, lookup catalog.Lookup) *CartService {
	return &CartService{store: store, catalog: lookup}
}

// AddItem 尺寸先檢查，之後才查商品
func (s *CartService) AddItem(ctx context.Context, sid string, category string, productID int, size string, qty int) error {
	if sid == "" {
		return errMissingSession
	}
	if err := cart.ValidateLine(size, qty); err != nil {
		return err
	}

	product, err := s.catalog.Get(category, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return errs.NotFound("product not found")
	}

	err = s.store.Update(ctx, sid, func(c *cart.Cart) error {
		return c.Add(category, productID, size, qty)
	})
	return toAppError(err)
}

func (s *CartService) RemoveItem(ctx context.Context, sid string, category string, productID int, size string) error {
	if sid == "" {
		return errMissingSession
	}
	err := s.store.Update(ctx, sid, func(c *cart.Cart) error {
		c.Remove(category, productID, size)
		return nil
	})
	return toAppError(err)
}

func (s *CartService) UpdateQuantity(ctx context.Context, sid string, category string, productID int, size string, direction string) error {
	if sid == "" {
		return errMissingSession
	}
	err := s.store.Update(ctx, sid, func(c *cart.Cart) error {
		return c.UpdateQuantity(category, productID, size, cart.Direction(direction))
	})
	return toAppError(err)
}

func (s *CartService) Snapshot(ctx context.Context, sid string) ([]cart.Line, error) {
	if sid == "" {
		return nil, nil
	}
	c, err := s.store.Load(ctx, sid)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return c.Snapshot(), nil
}

// View 找不到商品的項目不顯示，也不計入小計
func (s *CartService) View(ctx context.Context, sid string) (*CartView, error) {
	lines, err := s.Snapshot(ctx, sid)
	if err != nil {
		return nil, err
	}

	view := &CartView{Lines: make([]CartLineView, 0, len(lines)), Subtotal: decimal.Zero}
	for _, line := range lines {
		product, err := s.catalog.Get(line.Category, line.ProductID)
		if err != nil || product == nil {
			continue
		}
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		view.Lines = append(view.Lines, CartLineView{
			Line:      line,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			LineTotal: lineTotal,
		})
		view.Subtotal = view.Subtotal.Add(lineTotal)
	}
	return view, nil
}

func (s *CartService) Clear(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	return toAppError(s.store.Delete(ctx, sid))
}

var _ ICartService = (*CartService)(nil)
