package dto

import "github.com/shopspring/decimal"

// AddCartItemDTO qty 未帶時為 1
type AddCartItemDTO struct {
	Category  string `json:"category"`
	ProductID int    `json:"product_id"`
	Size      string `json:"size"`
	Qty       *int   `json:"qty"`
}

type CartLineKeyDTO struct {
	Category  string `json:"category"`
	ProductID int    `json:"product_id"`
	Size      string `json:"size"`
}

type UpdateCartQuantityDTO struct {
	CartLineKeyDTO
	Action string `json:"action"` // increase / decrease
}

type CartActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type CartLineDTO struct {
	Category  string          `json:"category"`
	ProductID int             `json:"product_id"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type CartDTO struct {
	Lines    []CartLineDTO   `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
}
