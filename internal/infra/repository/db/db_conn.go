package db

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type ConnConfig struct {
	Host     string
	Port     string
	DbName   string
	User     string
	Password string
	SslMode  string
	Debug    bool
}

func (c ConnConfig) sslMode() string {
	if c.SslMode == "" {
		return "disable"
	}
	return c.SslMode
}

// 帳號密碼經過 url escape，密碼含 @ / # 等字元也能正確解析
func (c ConnConfig) connURL(scheme string) string {
	u := url.URL{
		Scheme:   scheme,
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.DbName,
		RawQuery: url.Values{"sslmode": []string{c.sslMode()}}.Encode(),
	}
	return u.String()
}

// DSN pgx 連線字串
func (c ConnConfig) DSN() string {
	return c.connURL("postgres")
}

// MigrateURL golang-migrate pgx5 driver 使用的連線字串
func (c ConnConfig) MigrateURL() string {
	return c.connURL("pgx5")
}

// GetDbConn 透過 pgx stdlib 建立 *sql.DB，再交給 gorm
func GetDbConn(c ConnConfig) (*gorm.DB, error) {
	pgxCfg, err := pgx.ParseConfig(c.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	sqlDB := stdlib.OpenDB(*pgxCfg)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	logLevel := logger.Warn
	if c.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel),
	})
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}
