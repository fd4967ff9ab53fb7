package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/shoeverse/internal/cart"
	"github.com/RoyceAzure/lab/shoeverse/internal/catalog"
	"github.com/RoyceAzure/lab/shoeverse/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shoeverse/internal/infra/repository/memory_repo"
	"github.com/RoyceAzure/lab/shoeverse/internal/infra/token"
	"github.com/RoyceAzure/lab/shoeverse/internal/model"
	"github.com/RoyceAzure/lab/shoeverse/internal/payment"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testCatalogYaml = `
men:
  - id: 1
    name: Runner
    price: "50"
    image: men/1.jpg
  - id: 2
    name: Trail Shoe
    price: "80"
    image: men/2.jpg
kids:
  - id: 1
    name: Mini Runner
    price: "20"
    image: kids/1.jpg
`

const testTokenKey = "0123456789abcdef0123456789abcdef"

func newTestCatalog(t *testing.T, yaml string) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load(strings.NewReader(yaml))
	require.NoError(t, err)
	return c
}

func newTestStore(t *testing.T) *db.Store {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.NewDbDao(conn).InitMigrate())
	return db.NewStore(conn)
}

// recordingProducer 記錄發出的事件，err 不為 nil 時每次都回傳錯誤
type recordingProducer struct {
	mu        sync.Mutex
	err       error
	placed    []uint
	cancelled []uint
	purged    [][]uint
}

func (p *recordingProducer) ProduceOrderPlaced(ctx context.Context, order *model.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.placed = append(p.placed, order.ID)
	return p.err
}

func (p *recordingProducer) ProduceOrderItemCancelled(ctx context.Context, userID, orderID, itemID uint) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelled = append(p.cancelled, itemID)
	return p.err
}

func (p *recordingProducer) ProduceOrderHistoryPurged(ctx context.Context, userID uint, orderIDs []uint) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.purged = append(p.purged, orderIDs)
	return p.err
}

func (p *recordingProducer) Close() error { return nil }

type testEnv struct {
	store     *db.Store
	catalog   *catalog.Catalog
	cartStore *memory_repo.SessionStateRepo[cart.Cart]
	producer  *recordingProducer

	cartService    *CartService
	addressService *AddressService
	orderService   *OrderService
	userService    *UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		store:     newTestStore(t),
		catalog:   newTestCatalog(t, testCatalogYaml),
		cartStore: memory_repo.NewSessionStateRepo[cart.Cart](),
		producer:  &recordingProducer{},
	}

	maker, err := token.NewJWTMaker(testTokenKey)
	require.NoError(t, err)

	env.cartService = NewCartService(env.cartStore, env.catalog)
	env.addressService = NewAddressService(env.store)
	env.orderService = NewOrderService(env.store, env.cartStore, env.catalog, payment.DefaultRegistry(), env.producer, zerolog.Nop())
	env.userService = NewUserService(env.store, maker, time.Hour)
	return env
}

func (env *testEnv) createUser(t *testing.T, email string) *model.User {
	t.Helper()
	user := &model.User{Name: "Test User", Email: email, PasswordHash: "hash"}
	require.NoError(t, env.store.CreateUser(context.Background(), user))
	return user
}

func (env *testEnv) createAddress(t *testing.T, userID uint) *model.Address {
	t.Helper()
	addr, err := env.addressService.Upsert(context.Background(), userID, testAddressInput())
	require.NoError(t, err)
	return addr
}

func testAddressInput() AddressInput {
	return AddressInput{
		FullName:    "Test User",
		PhoneNumber: "0912345678",
		Pincode:     "10617",
		State:       "Taipei",
		City:        "Taipei",
		House:       "No. 1",
		Area:        "Da'an",
	}
}
