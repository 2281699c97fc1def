package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T) (Config, error) {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	return Load(v)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := load(t)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, AuthDev, cfg.Auth.Mode)
	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTTTL)
	assert.Equal(t, "cat-registry", cfg.App)
}

func TestLoad_LegacyEnvNames(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DSN", "postgres://u:p@localhost/cats")
	t.Setenv("APP_NAME", "cats-dev")

	cfg, err := load(t)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "postgres://u:p@localhost/cats", cfg.Store.PostgresDSN)
	assert.Equal(t, "cats-dev", cfg.App)
}

func TestLoad_ExplicitAddrWinsOverPort(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HTTP_ADDR", "127.0.0.1:7000")

	cfg, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.HTTP.Addr)
}

func TestLoad_MongoDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	cfg, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.Equal(t, "cats", cfg.Store.MongoDatabase)
}

func TestValidate_Errors(t *testing.T) {
	t.Setenv("STORE_DRIVER", "cassandra")
	t.Setenv("AUTH_MODE", "jwt")
	t.Setenv("AUTH_JWT_SECRET", "short")

	_, err := load(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown store.driver "cassandra"`)
	assert.Contains(t, err.Error(), "auth.jwt.secret must be at least 16 characters")
}

func TestValidate_RemoteNeedsURL(t *testing.T) {
	t.Setenv("AUTH_MODE", "remote")

	_, err := load(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.remote.url is required")
}
