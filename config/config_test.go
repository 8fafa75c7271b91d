package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "BITHUMB_API_KEY=filekey\nBITHUMB_API_SECRET=filesecret\nBOT_CURRENCY=eth\nBOT_REFRESH_SECONDS=7\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	// godotenv never overrides variables that are already set.
	for _, k := range []string{"BITHUMB_API_KEY", "BITHUMB_API_SECRET", "BOT_CURRENCY", "BOT_REFRESH_SECONDS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("BOT_ORDERBOOK_DEPTH", "12")

	cfg := LoadFromEnv(envFile)

	if cfg.AccessKey != "filekey" || cfg.SecretKey != "filesecret" || !cfg.HasKeys() {
		t.Errorf("keys not loaded: %+v", cfg)
	}
	if cfg.Currency != "ETH" {
		t.Errorf("Currency = %q", cfg.Currency)
	}
	if cfg.Refresh != 7*time.Second {
		t.Errorf("Refresh = %v", cfg.Refresh)
	}
	if cfg.OrderbookDepth != 12 {
		t.Errorf("OrderbookDepth = %d", cfg.OrderbookDepth)
	}
	if cfg.PaymentCurrency != "KRW" || cfg.BaseURL != "https://api.bithumb.com" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}
