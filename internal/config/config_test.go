package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cf, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "8080", cf.ServerPort)
	require.Equal(t, 72*time.Hour, cf.SessionTTL)
	require.Equal(t, 24*time.Hour, cf.AccessTokenDuration)
	require.Empty(t, cf.KafkaBrokers)
	require.Empty(t, cf.RedisAddr)
	require.Equal(t, 10, cf.LoginRateCapacity)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("REDIS_DB", "2")

	cf, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "9090", cf.ServerPort)
	require.Equal(t, 30*time.Minute, cf.SessionTTL)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cf.KafkaBrokers)
	require.Equal(t, 2, cf.RedisDB)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.env")
	content := "POSTGRES_DB=shop\nAUTH_TOKEN_KEY=0123456789abcdef0123456789abcdef\nENV=debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cf, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "shop", cf.DbName)
	require.Equal(t, "0123456789abcdef0123456789abcdef", cf.AuthTokenKey)
	require.True(t, cf.IsDebug())
	require.Equal(t, "5432", cf.DbPort)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}
