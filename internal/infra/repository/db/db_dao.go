package db

import (
	"context"

	"github.com/RoyceAzure/lab/shoeverse/internal/model"
	"gorm.io/gorm"
)

type DbDao struct {
	*gorm.DB
}

func NewDbDao(conn *gorm.DB) *DbDao {
	return &DbDao{
		DB: conn,
	}
}

// InitMigrate 以 gorm AutoMigrate 建立 schema，測試用 sqlite 使用
// 正式環境走 RunMigrations
func (d *DbDao) InitMigrate() error {
	return d.AutoMigrate(
		&model.User{},
		&model.Address{},
		&model.Order{},
		&model.OrderItem{},
	)
}

type IStore interface {
	UnifiedDB
	ExecTx(ctx context.Context, fn func(UnifiedDB) error) error
}

// Store 非交易操作直接使用內嵌的 UnifiedDB
type Store struct {
	*UnifiedDBImpl
	db *gorm.DB
}

func NewStore(conn *gorm.DB) *Store {
	return &Store{
		UnifiedDBImpl: NewUnifiedDB(conn),
		db:            conn,
	}
}

// ExecTx 執行一個交易，fn 回傳錯誤時整個交易回滾
// fn 內只能使用傳入的 UnifiedDB
func (s *Store) ExecTx(ctx context.Context, fn func(UnifiedDB) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewUnifiedDB(tx))
	})
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ IStore = (*Store)(nil)
