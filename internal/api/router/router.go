package router

import (
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/shoeverse/internal/api"
	m "github.com/RoyceAzure/lab/shoeverse/internal/api/middleware"
	"github.com/RoyceAzure/lab/shoeverse/internal/infra/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Options struct {
	TokenMaker   token.Maker
	LoginLimiter m.Limiter
	SessionTTL   time.Duration
	Logger       zerolog.Logger
}

func SetupRouter(server *api.Server, opts Options) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.SessionMiddleware(opts.SessionTTL))
	r.Use(m.AuthPayloadMiddleware(opts.TokenMaker))
	r.Use(m.LoggerMiddleware(opts.Logger))
	r.Use(m.RecoverMiddleware)

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", server.AuthHandler.Signup)
			if opts.LoginLimiter != nil {
				r.With(m.NewRateLimitMiddleware(opts.LoginLimiter)).Post("/login", server.AuthHandler.Login)
			} else {
				r.Post("/login", server.AuthHandler.Login)
			}
			r.With(m.AuthMiddleware).Get("/me", server.AuthHandler.Me)
		})

		r.Get("/products/{category}", server.CatalogHandler.ListProducts)
		r.Get("/products/{category}/{productId}", server.CatalogHandler.ProductDetail)
		r.Get("/search", server.CatalogHandler.Search)

		r.Route("/cart", func(r chi.Router) {
			r.With(m.AuthMiddleware).Get("/", server.CartHandler.View)
			r.Post("/items", server.CartHandler.AddItem)
			r.Post("/items/remove", server.CartHandler.RemoveItem)
			r.Post("/items/quantity", server.CartHandler.UpdateQuantity)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", server.WishlistHandler.View)
			r.Post("/items", server.WishlistHandler.Add)
			r.Post("/items/remove", server.WishlistHandler.Remove)
		})

		// 需要登入
		r.Group(func(r chi.Router) {
			r.Use(m.AuthMiddleware)

			r.Get("/account/address", server.AddressHandler.Get)
			r.Get("/account/addresses", server.AddressHandler.List)
			r.Post("/account/address", server.AddressHandler.Upsert)
			r.Post("/account/address/delete", server.AddressHandler.Delete)

			r.Post("/checkout", server.OrderHandler.Checkout)

			r.Get("/orders", server.OrderHandler.List)
			r.Get("/orders/{orderId}/confirmation", server.OrderHandler.Confirmation)
			r.Post("/orders/items/{itemId}/cancel", server.OrderHandler.CancelItem)
			r.Post("/orders/history/clear", server.OrderHandler.ClearHistory)
		})
	})

	// 在設置完所有路由後記錄路由樹
	chi.Walk(r, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		opts.Logger.Debug().Str("method", method).Str("route", route).Msg("route registered")
		return nil
	})
	return r
}
