package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AccessKey       string
	SecretKey       string
	BaseURL         string
	PaymentCurrency string

	Currency       string
	DBPath         string
	LogPath        string
	Refresh        time.Duration
	OrderbookDepth int
}

func Default() Config {
	return Config{
		BaseURL:         "https://api.bithumb.com",
		PaymentCurrency: "KRW",
		Currency:        "BTC",
		DBPath:          "bithumb.db",
		LogPath:         "bithumb.log",
		Refresh:         2 * time.Second,
		OrderbookDepth:  5,
	}
}

// LoadFromEnv reads envPath (or ./.env) if present, then the environment.
// Environment values win over the file.
func LoadFromEnv(envPath string) Config {
	cfg := Default()

	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	cfg.AccessKey = os.Getenv("BITHUMB_API_KEY")
	cfg.SecretKey = os.Getenv("BITHUMB_API_SECRET")
	cfg.BaseURL = getEnv("BITHUMB_BASE_URL", cfg.BaseURL)
	cfg.PaymentCurrency = strings.ToUpper(getEnv("BITHUMB_PAYMENT_CURRENCY", cfg.PaymentCurrency))
	cfg.Currency = strings.ToUpper(getEnv("BOT_CURRENCY", cfg.Currency))
	cfg.DBPath = getEnv("BOT_DB_PATH", cfg.DBPath)
	cfg.LogPath = getEnv("BOT_LOG_PATH", cfg.LogPath)

	if s := os.Getenv("BOT_REFRESH_SECONDS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			cfg.Refresh = time.Duration(n) * time.Second
		}
	}
	if s := os.Getenv("BOT_ORDERBOOK_DEPTH"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			cfg.OrderbookDepth = n
		}
	}

	return cfg
}

func (c Config) HasKeys() bool {
	return c.AccessKey != "" && c.SecretKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
