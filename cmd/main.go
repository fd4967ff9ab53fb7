package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RoyceAzure/lab/shoeverse/internal/api"
	"github.com/RoyceAzure/lab/shoeverse/internal/api/handler"
	"github.com/RoyceAzure/lab/shoeverse/internal/api/router"
	"github.com/RoyceAzure/lab/shoeverse/internal/appcontext"
	"github.com/RoyceAzure/lab/shoeverse/internal/config"
)

func main() {
	cf := config.GetConfig()
	app, err := appcontext.NewApplicationContext(cf)
	if err != nil {
		log.Fatal(err)
		return
	}

	// 初始化 handler
	server := api.NewServer(
		handler.NewAuthHandler(app.UserService, cf.AccessTokenDuration),
		handler.NewCatalogHandler(app.Catalog, app.WishlistService),
		handler.NewCartHandler(app.CartService),
		handler.NewWishlistHandler(app.WishlistService),
		handler.NewAddressHandler(app.AddressService),
		handler.NewOrderHandler(app.OrderService),
	)

	// 設置路由
	r := router.SetupRouter(server, router.Options{
		TokenMaker:   app.TokenMaker,
		LoginLimiter: app.LoginLimiter,
		SessionTTL:   cf.SessionTTL,
		Logger:       app.Logger,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cf.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 設置訊號監聽
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutDownCompleted := make(chan struct{}, 1)
	go func() {
		<-sigChan
		app.Logger.Info().Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.Logger.Error().Err(err).Msg("Server shutdown error")
		}
		if err := app.Shutdown(shutdownCtx); err != nil {
			log.Printf("Application shutdown error: %v", err)
		}
		shutDownCompleted <- struct{}{}
	}()

	app.Logger.Info().Str("addr", srv.Addr).Msg("Server starting")
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		app.Logger.Fatal().Err(err).Msg("server stopped unexpectedly")
	}
	<-shutDownCompleted
	log.Printf("closed completed")
}
