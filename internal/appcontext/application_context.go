package appcontext

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/RoyceAzure/lab/shoeverse/internal/cart"
	"github.com/RoyceAzure/lab/shoeverse/internal/catalog"
	"github.com/RoyceAzure/lab/shoeverse/internal/config"
	"github.com/RoyceAzure/lab/shoeverse/internal/infra/limiter"
	"github.com/RoyceAzure/lab/shoeverse/internal/infra/logger"
	"github.com/RoyceAzure/lab/shoeverse/internal/infra/producer"
	"github.com/RoyceAzure/lab/shoeverse/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shoeverse/internal/infra/repository/memory_repo"
	"github.com/RoyceAzure/lab/shoeverse/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/shoeverse/internal/infra/token"
	"github.com/RoyceAzure/lab/shoeverse/internal/payment"
	"github.com/RoyceAzure/lab/shoeverse/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type ApplicationContext struct {
	Cf            *config.Config
	Logger        zerolog.Logger
	logWriter     *logger.KafkaLogWriter
	Catalog       *catalog.Catalog
	Payments      *payment.Registry
	DbStore       *db.Store
	RedisClient   *redis.Client
	CartStore     service.CartStore
	WishlistStore service.WishlistStore
	TokenMaker    token.Maker
	EventProducer producer.IOrderEventProducer
	LoginLimiter  *limiter.TokenBucket

	UserService     service.IUserService
	CartService     service.ICartService
	WishlistService service.IWishlistService
	AddressService  service.IAddressService
	OrderService    service.IOrderService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}

	if err := app.Init(); err != nil {
		return nil, err
	}
	return &app, nil
}

func (app *ApplicationContext) Init() error {
	steps := []func() error{
		app.setUpLogger,
		app.setUpCatalog,
		app.setUpDbConn,
		app.setUpSessionStores,
		app.setTokenMaker,
		app.setUpEventProducer,
		app.setUpServices,
		app.setUpLoginLimiter,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	app.Logger.Info().
		Str("env", app.Cf.Env).
		Str("port", app.Cf.ServerPort).
		Bool("redis", app.RedisClient != nil).
		Strs("kafka_brokers", app.Cf.KafkaBrokers).
		Msg("application context ready")
	return nil
}

func (app *ApplicationContext) setUpLogger() error {
	var extra []io.Writer
	if len(app.Cf.KafkaBrokers) > 0 && app.Cf.KafkaLogTopic != "" {
		// log writer 自己的錯誤不能再寫回 kafka
		writer := producer.NewKafkaWriter(app.Cf.KafkaBrokers, app.Cf.KafkaLogTopic, zerolog.Nop())
		app.logWriter = logger.NewKafkaLogWriter(writer)
		extra = append(extra, app.logWriter)
	}
	app.Logger = logger.NewLogger(app.Cf.LogLevel, app.Cf.IsDebug(), extra...)
	app.Logger.Info().Msg("Finish setup logger")
	return nil
}

func (app *ApplicationContext) setUpCatalog() error {
	app.Logger.Info().Msg("Start setup catalog")
	c, err := catalog.LoadFile(app.Cf.CatalogFile)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	app.Catalog = c
	app.Payments = payment.DefaultRegistry()
	app.Logger.Info().Msg("Finish setup catalog")
	return nil
}

// setUpDbConn 先跑 migration 再建立連線
func (app *ApplicationContext) setUpDbConn() error {
	app.Logger.Info().Msg("Start setup database connection")
	connCfg := db.ConnConfig{
		Host:     app.Cf.DbHost,
		Port:     app.Cf.DbPort,
		DbName:   app.Cf.DbName,
		User:     app.Cf.DbUser,
		Password: app.Cf.DbPas,
		SslMode:  app.Cf.DbSslMode,
		Debug:    app.Cf.IsDebug(),
	}

	if err := db.RunMigrations(connCfg.MigrateURL()); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	conn, err := db.GetDbConn(connCfg)
	if err != nil {
		return err
	}
	app.DbStore = db.NewStore(conn)
	app.Logger.Info().Msg("Finish setup database connection")
	return nil
}

// setUpSessionStores 未設定 REDIS_ADDR 時使用記憶體，只適合單一節點
func (app *ApplicationContext) setUpSessionStores() error {
	if app.Cf.RedisAddr == "" {
		app.Logger.Warn().Msg("REDIS_ADDR is empty, using in-memory session store")
		app.CartStore = memory_repo.NewSessionStateRepo[cart.Cart]()
		app.WishlistStore = memory_repo.NewSessionStateRepo[cart.Wishlist]()
		return nil
	}

	app.Logger.Info().Msg("Start setup redis")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := redis_repo.NewRedisClient(ctx, app.Cf.RedisAddr,
		redis_repo.WithPassword(app.Cf.RedisPassword),
		redis_repo.WithDB(app.Cf.RedisDB),
	)
	if err != nil {
		return err
	}
	app.RedisClient = client
	app.CartStore = redis_repo.NewSessionStateRepo[cart.Cart](client, redis_repo.KindCart, app.Cf.SessionTTL)
	app.WishlistStore = redis_repo.NewSessionStateRepo[cart.Wishlist](client, redis_repo.KindWishlist, app.Cf.SessionTTL)
	app.Logger.Info().Msg("Finish setup redis")
	return nil
}

func (app *ApplicationContext) setTokenMaker() error {
	tokenMaker, err := token.NewJWTMaker(app.Cf.AuthTokenKey)
	if err != nil {
		return fmt.Errorf("create token maker: %w", err)
	}
	app.TokenMaker = tokenMaker
	return nil
}

// setUpEventProducer 未設定 KAFKA_BROKERS 時不發送事件
func (app *ApplicationContext) setUpEventProducer() error {
	if len(app.Cf.KafkaBrokers) == 0 {
		app.Logger.Warn().Msg("KAFKA_BROKERS is empty, order events are disabled")
		app.EventProducer = producer.NoopProducer{}
		return nil
	}
	writer := producer.NewKafkaWriter(app.Cf.KafkaBrokers, app.Cf.KafkaOrderTopic, app.Logger)
	app.EventProducer = producer.NewOrderEventProducer(writer)
	app.Logger.Info().Str("topic", app.Cf.KafkaOrderTopic).Msg("Finish setup order event producer")
	return nil
}

func (app *ApplicationContext) setUpServices() error {
	app.UserService = service.NewUserService(app.DbStore, app.TokenMaker, app.Cf.AccessTokenDuration)
	app.CartService = service.NewCartService(app.CartStore, app.Catalog)
	app.WishlistService = service.NewWishlistService(app.WishlistStore, app.Catalog)
	app.AddressService = service.NewAddressService(app.DbStore)
	app.OrderService = service.NewOrderService(
		app.DbStore,
		app.CartStore,
		app.Catalog,
		app.Payments,
		app.EventProducer,
		app.Logger.With().Str("component", "order_service").Logger(),
	)
	return nil
}

func (app *ApplicationContext) setUpLoginLimiter() error {
	app.LoginLimiter = limiter.NewTokenBucket(&limiter.LimiterConfig{
		Capacity:   app.Cf.LoginRateCapacity,
		RatePS:     app.Cf.LoginRateRefill,
		RefillRate: 100 * time.Millisecond,
	})
	return nil
}

// Shutdown 同時關閉外部連線，任一個失敗不影響其他的關閉
func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	app.Logger.Info().Msg("Start application shutdown")

	if app.LoginLimiter != nil {
		app.LoginLimiter.Stop()
	}

	// 每個關閉失敗都記錄 log，回傳第一個錯誤
	var g errgroup.Group
	closeWith := func(name string, fn func() error) {
		g.Go(func() error {
			if err := fn(); err != nil {
				app.Logger.Error().Err(err).Str("resource", name).Msg("failed to close resource")
				return fmt.Errorf("close %s: %w", name, err)
			}
			return nil
		})
	}

	if app.EventProducer != nil {
		closeWith("event producer", app.EventProducer.Close)
	}
	if app.RedisClient != nil {
		closeWith("redis", app.RedisClient.Close)
	}
	if app.DbStore != nil {
		closeWith("database", app.DbStore.Close)
	}

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
	}()

	var closeErr error
	select {
	case closeErr = <-done:
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %w", ctx.Err())
	}

	app.Logger.Info().Msg("Application shutdown complete")
	// logger 最後關閉
	if app.logWriter != nil {
		if err := app.logWriter.Close(); err != nil {
			closeErr = errors.Join(closeErr, fmt.Errorf("close log writer: %w", err))
		}
	}
	return closeErr
}
