package config

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

/*
把init config跟read config分開
init : 需要設置viper watch 與 onConfigChange
read config : 一般讀取  需要使用讀寫鎖
*/
var config_singleton *ConfigSingleTon
var muonce sync.Once

// ConfigPathEnv 設定檔位置，未設定時只讀環境變數
const ConfigPathEnv = "SHOEVERSE_CONFIG"

type ConfigSingleTon struct {
	Config *Config
	mu     sync.RWMutex
}

type Config struct {
	ServerPort          string        `mapstructure:"SERVER_PORT"`
	Env                 string        `mapstructure:"ENV"`
	LogLevel            string        `mapstructure:"LOG_LEVEL"`
	DbHost              string        `mapstructure:"POSTGRES_HOST"`
	DbPort              string        `mapstructure:"POSTGRES_PORT"`
	DbName              string        `mapstructure:"POSTGRES_DB"`
	DbUser              string        `mapstructure:"POSTGRES_USER"`
	DbPas               string        `mapstructure:"POSTGRES_PASSWORD"`
	DbSslMode           string        `mapstructure:"POSTGRES_SSLMODE"`
	RedisAddr           string        `mapstructure:"REDIS_ADDR"`
	RedisPassword       string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB             int           `mapstructure:"REDIS_DB"`
	SessionTTL          time.Duration `mapstructure:"SESSION_TTL"`
	AuthTokenKey        string        `mapstructure:"AUTH_TOKEN_KEY"`
	AccessTokenDuration time.Duration `mapstructure:"ACCESS_TOKEN_DURATION"`
	KafkaBrokers        []string      `mapstructure:"KAFKA_BROKERS"`
	KafkaOrderTopic     string        `mapstructure:"KAFKA_ORDER_TOPIC"`
	KafkaLogTopic       string        `mapstructure:"KAFKA_LOG_TOPIC"` // 空字串不送 log 到 kafka
	CatalogFile         string        `mapstructure:"CATALOG_FILE"`
	LoginRateCapacity   int           `mapstructure:"LOGIN_RATE_CAPACITY"`
	LoginRateRefill     int           `mapstructure:"LOGIN_RATE_REFILL"` // tokens/秒
}

var defaults = map[string]any{
	"SERVER_PORT":           "8080",
	"ENV":                   "development",
	"LOG_LEVEL":             "info",
	"POSTGRES_HOST":         "localhost",
	"POSTGRES_PORT":         "5432",
	"POSTGRES_DB":           "shoeverse",
	"POSTGRES_USER":         "postgres",
	"POSTGRES_PASSWORD":     "",
	"POSTGRES_SSLMODE":      "disable",
	"REDIS_ADDR":            "",
	"REDIS_PASSWORD":        "",
	"REDIS_DB":              0,
	"SESSION_TTL":           "72h",
	"AUTH_TOKEN_KEY":        "",
	"ACCESS_TOKEN_DURATION": "24h",
	"KAFKA_BROKERS":         "",
	"KAFKA_ORDER_TOPIC":     "shoeverse.orders",
	"KAFKA_LOG_TOPIC":       "",
	"CATALOG_FILE":          "",
	"LOGIN_RATE_CAPACITY":   10,
	"LOGIN_RATE_REFILL":     1,
}

func GetConfig() *Config {
	initConfig()
	config_singleton.mu.RLock()
	defer config_singleton.mu.RUnlock()
	return config_singleton.Config
}

func initConfig() {
	muonce.Do(func() {
		path := os.Getenv(ConfigPathEnv)
		v := newViper(path)

		config_singleton = &ConfigSingleTon{}
		cf, err := load(v)
		if err != nil {
			log.Fatalf("error read config: %v", err)
		}
		config_singleton.Config = cf

		if path == "" {
			return
		}
		v.OnConfigChange(func(e fsnotify.Event) {
			cf, err := load(v)
			if err != nil {
				log.Printf("failed to reload config file %s: %v", e.Name, err)
				return
			}
			config_singleton.mu.Lock()
			config_singleton.Config = cf
			config_singleton.mu.Unlock()
		})
		v.WatchConfig()
	})
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
	}
	v.AutomaticEnv()
	return v
}

/*
單純回傳錯誤  由外部決定要不要Fatal
*/
func load(v *viper.Viper) (*Config, error) {
	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cf := &Config{}
	if err := v.Unmarshal(cf); err != nil {
		return nil, err
	}
	return cf, nil
}

// Load 不經過 singleton 讀取設定，path 為空時只讀預設值與環境變數
func Load(path string) (*Config, error) {
	return load(newViper(path))
}

func (c *Config) IsDebug() bool {
	return c.Env == "debug"
}
