package service

import (
	"context"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/shoeverse/internal/cart"
	"github.com/RoyceAzure/lab/shoeverse/internal/catalog"
	"github.com/RoyceAzure/lab/shoeverse/internal/errs"
	"github.com/RoyceAzure/lab/shoeverse/internal/infra/producer"
	"github.com/RoyceAzure/lab/shoeverse/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shoeverse/internal/model"
	"github.com/RoyceAzure/lab/shoeverse/internal/payment"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type IOrderService interface {
	PlaceOrder(ctx context.Context, sid string, userID, addressID uint, paymentMethod string) (*model.Order, error)
	CancelOrderItem(ctx context.Context, userID, itemID uint) error
	PurgeFullyCancelledOrders(ctx context.Context, userID uint) (int, error)
	ListOrders(ctx context.Context, userID uint) ([]model.Order, error)
	GetOrderConfirmation(ctx context.Context, userID, orderID uint) (*OrderConfirmation, error)
}

type OrderConfirmation struct {
	Order    *model.Order
	Address  *model.Address // 地址已刪除時為 nil
	Payment  payment.Method
	Subtotal decimal.Decimal
}

type OrderService struct {
	dbDao     db.IStore
	cartStore CartStore
	catalog   catalog.Lookup
	payments  *payment.Registry
	producer  producer.IOrderEventProducer
	logger    zerolog.Logger
}

func NewOrderService(
	dbDao db.IStore,
	cartStore CartStore,
	lookup catalog.Lookup,
	payments *payment.Registry,
	eventProducer producer.IOrderEventProducer,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		dbDao:     dbDao,
		cartStore: cartStore,
		catalog:   lookup,
		payments:  payments,
		producer:  eventProducer,
		logger:    logger,
	}
}

/*
PlaceOrder 購物車結帳

前置檢查依序:
  - 購物車不可為空
  - 付款方式必須已註冊
  - 使用者至少有一筆地址
  - addressID 必須屬於該使用者

訂單與項目在同一個交易內寫入，價格取下單當下的商品價格。
找不到的商品略過，全部找不到時視為空購物車。
交易成功後才從購物車扣掉已結帳的項目，失敗只記錄log。
*/
func (s *OrderService) PlaceOrder(ctx context.Context, sid string, userID, addressID uint, paymentMethod string) (*model.Order, error) {
	var lines []cart.Line
	if sid != "" {
		c, err := s.cartStore.Load(ctx, sid)
		if err != nil {
			return nil, errs.Internal(err)
		}
		lines = c.Snapshot()
	}
	if len(lines) == 0 {
		return nil, errs.ErrEmptyCart
	}

	if strings.TrimSpace(paymentMethod) == "" {
		return nil, errs.Validation("please select a payment method")
	}
	method, ok := s.payments.Resolve(paymentMethod)
	if !ok {
		return nil, errs.ErrUnsupportedPayment
	}

	addresses, err := s.dbDao.ListAddressesByUserID(ctx, userID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if len(addresses) == 0 {
		return nil, errs.ErrMissingAddress
	}
	if !ownsAddress(addresses, addressID) {
		return nil, errs.ErrInvalidAddress
	}

	items := s.resolveItems(lines)
	if len(items) == 0 {
		return nil, errs.ErrEmptyCart
	}

	addrID := addressID
	order := &model.Order{
		UserID:        userID,
		AddressID:     &addrID,
		PaymentMethod: method.Code,
		Status:        model.OrderStatusPending,
		CreatedAt:     time.Now().UTC(),
		Items:         items,
	}
	err = s.dbDao.ExecTx(ctx, func(tx db.UnifiedDB) error {
		return tx.CreateOrder(ctx, order)
	})
	if err != nil {
		return nil, errs.Internal(err)
	}

	err = s.cartStore.Update(ctx, sid, func(c *cart.Cart) error {
		c.Deduct(lines)
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("session_id", sid).Uint("order_id", order.ID).Msg("failed to clear cart after checkout")
	}
	if err := s.producer.ProduceOrderPlaced(ctx, order); err != nil {
		s.logger.Warn().Err(err).Uint("order_id", order.ID).Msg("failed to publish order placed event")
	}

	s.logger.Info().Uint("user_id", userID).Uint("order_id", order.ID).Int("items", len(order.Items)).Msg("order placed")
	return order, nil
}

func ownsAddress(addresses []model.Address, addressID uint) bool {
	if addressID == 0 {
		return false
	}
	for _, a := range addresses {
		if a.ID == addressID {
			return true
		}
	}
	return false
}

func (s *OrderService) resolveItems(lines []cart.Line) []model.OrderItem {
	items := make([]model.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, err := s.catalog.Get(line.Category, line.ProductID)
		if err != nil || product == nil {
			s.logger.Debug().Str("category", line.Category).Int("product_id", line.ProductID).Msg("skip unresolved cart line")
			continue
		}
		items = append(items, model.OrderItem{
			ProductCategory: line.Category,
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			Size:            line.Size,
			Price:           product.Price,
		})
	}
	return items
}

// CancelOrderItem 只標記取消，重複取消不算錯誤
func (s *OrderService) CancelOrderItem(ctx context.Context, userID, itemID uint) error {
	item, err := s.dbDao.GetOrderItemByID(ctx, itemID)
	if isNotFound(err) {
		return errs.NotFound("order item not found")
	}
	if err != nil {
		return errs.Internal(err)
	}

	order, err := s.dbDao.GetOrderByID(ctx, item.OrderID)
	if isNotFound(err) {
		return errs.NotFound("order item not found")
	}
	if err != nil {
		return errs.Internal(err)
	}
	if order.UserID != userID {
		return errs.ErrUnauthorized
	}
	if item.Cancelled {
		return nil
	}

	if err := s.dbDao.CancelOrderItem(ctx, itemID); err != nil {
		return errs.Internal(err)
	}
	if err := s.producer.ProduceOrderItemCancelled(ctx, userID, order.ID, itemID); err != nil {
		s.logger.Warn().Err(err).Uint("item_id", itemID).Msg("failed to publish order item cancelled event")
	}
	return nil
}

// PurgeFullyCancelledOrders 刪除所有項目皆已取消的訂單，沒有項目的訂單不處理
func (s *OrderService) PurgeFullyCancelledOrders(ctx context.Context, userID uint) (int, error) {
	var purged []uint
	err := s.dbDao.ExecTx(ctx, func(tx db.UnifiedDB) error {
		purged = purged[:0]
		orders, err := tx.ListOrdersByUserID(ctx, userID)
		if err != nil {
			return err
		}
		for _, order := range orders {
			if !order.FullyCancelled() {
				continue
			}
			if err := tx.DeleteOrderItemsByOrderID(ctx, order.ID); err != nil {
				return err
			}
			if err := tx.DeleteOrder(ctx, order.ID); err != nil {
				return err
			}
			purged = append(purged, order.ID)
		}
		return nil
	})
	if err != nil {
		return 0, errs.Internal(err)
	}

	if len(purged) > 0 {
		if err := s.producer.ProduceOrderHistoryPurged(ctx, userID, purged); err != nil {
			s.logger.Warn().Err(err).Uint("user_id", userID).Msg("failed to publish order history purged event")
		}
	}
	return len(purged), nil
}

// ListOrders 新的訂單在前，項目補上目前的商品資料
func (s *OrderService) ListOrders(ctx context.Context, userID uint) ([]model.Order, error) {
	orders, err := s.dbDao.ListOrdersByUserID(ctx, userID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	for i := range orders {
		s.attachProducts(&orders[i])
	}
	return orders, nil
}

func (s *OrderService) attachProducts(order *model.Order) {
	for i := range order.Items {
		item := &order.Items[i]
		product, err := s.catalog.Get(item.ProductCategory, item.ProductID)
		if err == nil && product != nil {
			item.Product = product
		}
	}
}

func (s *OrderService) GetOrderConfirmation(ctx context.Context, userID, orderID uint) (*OrderConfirmation, error) {
	order, err := s.dbDao.GetOrderByID(ctx, orderID)
	if isNotFound(err) {
		return nil, errs.NotFound("order not found")
	}
	if err != nil {
		return nil, errs.Internal(err)
	}
	if order.UserID != userID {
		return nil, errs.ErrUnauthorized
	}
	s.attachProducts(order)

	confirmation := &OrderConfirmation{
		Order:    order,
		Subtotal: order.Subtotal(),
	}
	if m, ok := s.payments.Resolve(order.PaymentMethod); ok {
		confirmation.Payment = m
	} else {
		confirmation.Payment = payment.Method{Code: order.PaymentMethod, DisplayName: order.PaymentMethod}
	}

	if order.AddressID != nil {
		address, err := s.dbDao.GetAddressByID(ctx, *order.AddressID)
		switch {
		case err == nil:
			confirmation.Address = address
		case !isNotFound(err):
			return nil, errs.Internal(err)
		}
	}
	return confirmation, nil
}

var _ IOrderService = (*OrderService)(nil)
