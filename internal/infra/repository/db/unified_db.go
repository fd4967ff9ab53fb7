package db

import (
	"context"

	"github.com/RoyceAzure/lab/shoeverse/internal/model"
	"gorm.io/gorm"
)

// UnifiedDB 統一的資料庫介面
type UnifiedDB interface {
	GetDB() *gorm.DB

	IUserRepository
	IAddressRepository
	IOrderRepository
}

type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id uint) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type IAddressRepository interface {
	CreateAddress(ctx context.Context, address *model.Address) error
	UpdateAddress(ctx context.Context, address *model.Address) error
	GetAddressByID(ctx context.Context, id uint) (*model.Address, error)
	GetCurrentAddress(ctx context.Context, userID uint) (*model.Address, error)
	ListAddressesByUserID(ctx context.Context, userID uint) ([]model.Address, error)
	DeleteAddress(ctx context.Context, id uint) error
}

type IOrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrderByID(ctx context.Context, id uint) (*model.Order, error)
	ListOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error)
	GetOrderItemByID(ctx context.Context, id uint) (*model.OrderItem, error)
	CancelOrderItem(ctx context.Context, id uint) error
	DeleteOrderItemsByOrderID(ctx context.Context, orderID uint) error
	DeleteOrder(ctx context.Context, id uint) error
}

// UnifiedDBImpl 統一資料庫實現
type UnifiedDBImpl struct {
	db *gorm.DB
	*UserRepo
	*AddressRepo
	*OrderRepo
}

func NewUnifiedDB(db *gorm.DB) *UnifiedDBImpl {
	dbDao := NewDbDao(db)
	return &UnifiedDBImpl{
		db:          db,
		UserRepo:    NewUserRepo(dbDao),
		AddressRepo: NewAddressRepo(dbDao),
		OrderRepo:   NewOrderRepo(dbDao),
	}
}

func (u *UnifiedDBImpl) GetDB() *gorm.DB {
	return u.db
}

var (
	_ UnifiedDB          = (*UnifiedDBImpl)(nil)
	_ IUserRepository    = (*UserRepo)(nil)
	_ IAddressRepository = (*AddressRepo)(nil)
	_ IOrderRepository   = (*OrderRepo)(nil)
)
