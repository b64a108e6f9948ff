package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"API_BASE_URL", "SOURCE_MODE", "FETCH_TIMEOUT_MS", "MAX_RETRIES",
		"WISHLIST_CAPACITY", "BOOKMARK_CAPACITY", "RECENT_CAPACITY", "RECENT_TTL_HOURS", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, _ := Load()
	assert.Equal(t, "http://localhost:3000", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 1, cfg.MaxRetries)
	assert.Zero(t, cfg.WishlistCapacity, "wishlist is unbounded unless capped")
	assert.Zero(t, cfg.BookmarkCapacity, "bookmarks are unbounded unless capped")
	assert.Equal(t, 10, cfg.RecentCapacity)
	assert.Equal(t, 7*24*time.Hour, cfg.RecentTTL)
	assert.False(t, cfg.Debug)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://exchange.example.org/")
	t.Setenv("SOURCE_MODE", "BROWSER")
	t.Setenv("FETCH_TIMEOUT_MS", "2500")
	t.Setenv("WISHLIST_CAPACITY", "5")
	t.Setenv("RECENT_TTL_HOURS", "1")
	t.Setenv("STORAGE_DIR", "/tmp/state")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, _ := Load()
	assert.Equal(t, "https://exchange.example.org", cfg.APIBaseURL)
	assert.Equal(t, SourceBrowser, cfg.SourceMode)
	assert.Equal(t, 2500*time.Millisecond, cfg.FetchTimeout)
	assert.Equal(t, 5, cfg.WishlistCapacity)
	assert.Equal(t, time.Hour, cfg.RecentTTL)
	assert.Equal(t, "/tmp/state", cfg.StorageDir)
	assert.True(t, cfg.Debug)
}

func TestLoadEmptyStorageDirDisablesStorage(t *testing.T) {
	t.Setenv("STORAGE_DIR", "")
	cfg, _ := Load()
	assert.Empty(t, cfg.StorageDir)
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("MAX_CONCURRENCY", "lots")
	assert.Equal(t, 3, getEnvInt("MAX_CONCURRENCY", 3))
}
