package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration, loaded from environment
// variables with sensible defaults.
type Config struct {
	// HTTP surface
	Host           string
	Port           string
	AllowedOrigins string
	RateLimitRPS   float64

	// Database
	DatabaseURL string

	// Marketplace
	CatalogBaseURL string
	UserAgent      string

	// Extraction
	MinPrice int
	MaxPrice int

	// Scraper behavior
	RenderTimeout  time.Duration
	SettleWait     time.Duration
	BatchPause     time.Duration
	ScrapeCooldown time.Duration
	DataDir        string

	// Scheduler
	CheckCron string

	// Event publishing (optional)
	RedisAddr       string
	RedisDB         int
	RedisStream     string
	RedisStreamSize int

	// Cooldown cache (optional; in-memory fallback when unset)
	MemcacheAddr string

	Environment string
}

// Load reads the configuration from the environment.
func Load() *Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamSize, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAXLEN", "500"))
	rateRPS, _ := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "5"), 64)
	minPrice, _ := strconv.Atoi(getEnv("PRICE_MIN", "100"))
	maxPrice, _ := strconv.Atoi(getEnv("PRICE_MAX", "500000"))

	return &Config{
		Host:           getEnv("HOST", "0.0.0.0"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		RateLimitRPS:   rateRPS,

		DatabaseURL: os.Getenv("DATABASE_URL"),

		CatalogBaseURL: getEnv("CATALOG_BASE_URL", "https://www.qoo10.jp"),
		UserAgent: getEnv("SCRAPER_USER_AGENT",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"),

		MinPrice: minPrice,
		MaxPrice: maxPrice,

		RenderTimeout:  getEnvDuration("RENDER_TIMEOUT", 30*time.Second),
		SettleWait:     getEnvDuration("RENDER_SETTLE_WAIT", 3*time.Second),
		BatchPause:     getEnvDuration("BATCH_PAUSE", 2*time.Second),
		ScrapeCooldown: getEnvDuration("SCRAPE_COOLDOWN", 5*time.Minute),
		DataDir:        getEnv("DATA_DIR", "data"),

		CheckCron: getEnv("CHECK_CRON", "0 0 */6 * * *"),

		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisDB:         redisDB,
		RedisStream:     getEnv("REDIS_STREAM", "price-changes"),
		RedisStreamSize: streamSize,

		MemcacheAddr: os.Getenv("MEMCACHE_ADDR"),

		Environment: getEnv("QMATCH_ENVIRONMENT", "development"),
	}
}

// CatalogURL builds the catalog page URL for a catalog number.
func (c *Config) CatalogURL(catalogNo int64) string {
	return c.CatalogBaseURL +
		"/gmkt.inc/catalog/goods/goods.aspx?catalogno=" +
		strconv.FormatInt(catalogNo, 10) +
		"&ga_priority=-1&ga_prdlist=srp"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
