package db

import (
	"context"

	"github.com/RoyceAzure/lab/shoeverse/internal/model"
	"gorm.io/gorm"
)

// 購物車只存在 session state，下單後才寫入db
type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

func itemsByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

// CreateOrder 訂單與 Items 一起寫入
func (r *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *OrderRepo) GetOrderByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Preload("Items", itemsByID).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrdersByUserID 新的訂單在前
func (r *OrderRepo) ListOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Items", itemsByID).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepo) GetOrderItemByID(ctx context.Context, id uint) (*model.OrderItem, error) {
	var item model.OrderItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CancelOrderItem 只標記取消，不刪除
func (r *OrderRepo) CancelOrderItem(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.OrderItem{}).Where("id = ?", id).Update("cancelled", true).Error
}

func (r *OrderRepo) DeleteOrderItemsByOrderID(ctx context.Context, orderID uint) error {
	return r.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&model.OrderItem{}).Error
}

func (r *OrderRepo) DeleteOrder(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Order{}, id).Error
}
