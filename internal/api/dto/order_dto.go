package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type AddressDTO struct {
	ID          uint   `json:"id,omitempty"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Pincode     string `json:"pincode"`
	State       string `json:"state"`
	City        string `json:"city"`
	House       string `json:"house"`
	Area        string `json:"area"`
}

type CheckoutDTO struct {
	PaymentMethod string `json:"payment_method"`
	AddressID     uint   `json:"address_id"`
}

type CheckoutResponse struct {
	OrderID uint `json:"order_id"`
}

// OrderItemDTO Product 為目前商品資料，商品下架時不回傳
type OrderItemDTO struct {
	ID        uint            `json:"id"`
	Category  string          `json:"category"`
	ProductID int             `json:"product_id"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Cancelled bool            `json:"cancelled"`
	Product   *ProductDTO     `json:"product,omitempty"`
}

type OrderDTO struct {
	ID            uint            `json:"id"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	AddressID     *uint           `json:"address_id"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []OrderItemDTO  `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

type PaymentMethodDTO struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
}

type OrderConfirmationDTO struct {
	Order    OrderDTO         `json:"order"`
	Address  *AddressDTO      `json:"address"`
	Payment  PaymentMethodDTO `json:"payment"`
	Subtotal decimal.Decimal  `json:"subtotal"`
}

type ClearHistoryResponse struct {
	Deleted int `json:"deleted"`
}
