package model

import (
	"time"

	"github.com/RoyceAzure/lab/shoeverse/internal/catalog"
	"github.com/shopspring/decimal"
)

const OrderStatusPending = "Pending"

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	UserID        uint        `gorm:"not null;index" json:"user_id"`
	AddressID     *uint       `json:"address_id"` // 地址刪除後為 null，訂單保留
	PaymentMethod string      `gorm:"not null;type:varchar(20)" json:"payment_method"`
	Status        string      `gorm:"not null;type:varchar(20);default:Pending" json:"status"`
	CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// OrderItem Price 為下單當下的商品價格，之後商品改價不影響
type OrderItem struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderID         uint            `gorm:"not null;index" json:"order_id"`
	ProductCategory string          `gorm:"not null;type:varchar(20)" json:"product_category"`
	ProductID       int             `gorm:"not null" json:"product_id"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	Size            string          `gorm:"not null;type:varchar(10)" json:"size"`
	Price           decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	Cancelled       bool            `gorm:"not null;default:false" json:"cancelled"`

	// 顯示用，從商品目錄補上，不存db
	Product *catalog.Product `gorm:"-" json:"product,omitempty"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Subtotal 未取消項目的金額總和
func (o *Order) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		if item.Cancelled {
			continue
		}
		total = total.Add(item.LineTotal())
	}
	return total
}

// FullyCancelled 沒有任何項目的訂單不算全部取消
func (o *Order) FullyCancelled() bool {
	if len(o.Items) == 0 {
		return false
	}
	for _, item := range o.Items {
		if !item.Cancelled {
			return false
		}
	}
	return true
}
