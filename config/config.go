package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Source modes.
const (
	SourceAPI     = "api"
	SourceBrowser = "browser"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	APIBaseURL   string
	SiteBaseURL  string
	SourceMode   string
	FetchTimeout time.Duration
	MaxRetries   int

	MaxConcurrency int
	RateLimitMs    int

	// StorageDir is where on-device state lives. Empty disables persistence.
	StorageDir       string
	WishlistCapacity int
	BookmarkCapacity int
	RecentCapacity   int
	RecentTTL        time.Duration

	ChromeBin string
	Debug     bool
}

// Load reads the .env file (if any) and returns a populated Config.
// The returned bool reports whether a .env file was found.
func Load() (*Config, bool) {
	found := godotenv.Load() == nil

	return &Config{
		APIBaseURL:   strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:3000"), "/"),
		SiteBaseURL:  strings.TrimRight(getEnv("SITE_BASE_URL", "http://localhost:3000"), "/"),
		SourceMode:   strings.ToLower(getEnv("SOURCE_MODE", SourceAPI)),
		FetchTimeout: time.Duration(getEnvInt("FETCH_TIMEOUT_MS", 10000)) * time.Millisecond,
		MaxRetries:   getEnvInt("MAX_RETRIES", 1),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 0),

		StorageDir:       getEnv("STORAGE_DIR", defaultStorageDir()),
		WishlistCapacity: getEnvInt("WISHLIST_CAPACITY", 0),
		BookmarkCapacity: getEnvInt("BOOKMARK_CAPACITY", 0),
		RecentCapacity:   getEnvInt("RECENT_CAPACITY", 10),
		RecentTTL:        time.Duration(getEnvInt("RECENT_TTL_HOURS", 168)) * time.Hour,

		ChromeBin: getEnv("CHROME_BIN", ""),
		Debug:     strings.EqualFold(getEnv("LOG_LEVEL", "info"), "debug"),
	}, found
}

func defaultStorageDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return dir + string(os.PathSeparator) + "exchange-catalog"
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
