package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://www.qoo10.jp", cfg.CatalogBaseURL)
	assert.Equal(t, 100, cfg.MinPrice)
	assert.Equal(t, 500000, cfg.MaxPrice)
	assert.Equal(t, 30*time.Second, cfg.RenderTimeout)
	assert.Equal(t, 2*time.Second, cfg.BatchPause)
	assert.Equal(t, 5*time.Minute, cfg.ScrapeCooldown)
	assert.Equal(t, "0 0 */6 * * *", cfg.CheckCron)
}

func TestLoadOverrides(t *testing.T) {
	os.Setenv("PORT", "9090")
	os.Setenv("PRICE_MIN", "500")
	os.Setenv("BATCH_PAUSE", "5s")
	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("PRICE_MIN")
		os.Unsetenv("BATCH_PAUSE")
	}()

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 500, cfg.MinPrice)
	assert.Equal(t, 5*time.Second, cfg.BatchPause)
}

func TestCatalogURL(t *testing.T) {
	cfg := Load()

	url := cfg.CatalogURL(123456)
	assert.Equal(t,
		"https://www.qoo10.jp/gmkt.inc/catalog/goods/goods.aspx?catalogno=123456&ga_priority=-1&ga_prdlist=srp",
		url)
}
