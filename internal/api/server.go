package api

import "github.com/RoyceAzure/lab/shoeverse/internal/api/handler"

type Server struct {
	AuthHandler     *handler.AuthHandler
	CatalogHandler  *handler.CatalogHandler
	CartHandler     *handler.CartHandler
	WishlistHandler *handler.WishlistHandler
	AddressHandler  *handler.AddressHandler
	OrderHandler    *handler.OrderHandler
}

func NewServer(
	authHandler *handler.AuthHandler,
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	wishlistHandler *handler.WishlistHandler,
	addressHandler *handler.AddressHandler,
	orderHandler *handler.OrderHandler,
) *Server {
	return &Server{
		AuthHandler:     authHandler,
		CatalogHandler:  catalogHandler,
		CartHandler:     cartHandler,
		WishlistHandler: wishlistHandler,
		AddressHandler:  addressHandler,
		OrderHandler:    orderHandler,
	}
}
