package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, StoreMemory, cfg.SessionStore)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, int64(1<<20), cfg.MaxRequestBodySize)
	assert.Equal(t, "storefront_session", cfg.SessionCookieName)
	assert.Equal(t, "IKW store", cfg.Shop.Name)
	assert.Equal(t, "Waichi Ikeda", cfg.Shop.ContactName)
	assert.Equal(t, "W.Ikeda@liverpool.ac.uk", cfg.Shop.Email)
	assert.Equal(t, "+81 00-000-0000", cfg.Shop.Phone)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("SESSION_TTL", "45m")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REQUEST_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, StoreRedis, cfg.SessionStore)
	assert.Equal(t, 45*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout, "invalid values fall back to defaults")
}

func TestLoad_RejectsUnknownStore(t *testing.T) {
	t.Setenv("SESSION_STORE", "etcd")

	_, err := Load()
	assert.ErrorContains(t, err, "unknown SESSION_STORE")
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("SHOP_NAME=Test Shop\nMONGO_DB_NAME=fromfile\n"), 0o600))
	t.Setenv("MONGO_DB_NAME", "fromenv")
	// godotenv sets variables process-wide; t.Setenv restores SHOP_NAME afterwards
	t.Setenv("SHOP_NAME", "")
	os.Unsetenv("SHOP_NAME")

	cfg, err := Load(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "Test Shop", cfg.Shop.Name)
	assert.Equal(t, "fromenv", cfg.MongoDBName, "existing variables win")
}
