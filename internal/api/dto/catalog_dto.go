package dto

import "github.com/shopspring/decimal"

type ProductDTO struct {
	ID       int             `json:"id"`
	Category string          `json:"category"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
}

type ProductDetailDTO struct {
	ProductDTO
	InWishlist bool `json:"in_wishlist"`
}

type WishlistItemDTO struct {
	Category  string `json:"category"`
	ProductID int    `json:"product_id"`
}
