package config_test

import (
	"testing"
	"time"

	"github.com/Houeta/phone-insights/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestMustLoad(t *testing.T) {
	t.Run("error - non-positive batch size", func(t *testing.T) {
		t.Setenv("PI_BATCH_SIZE", "0")

		assert.PanicsWithError(t, config.ErrInvalidBatchSize.Error(), func() {
			config.MustLoad()
		})
	})

	t.Run("error - unknown recommendation provider", func(t *testing.T) {
		t.Setenv("PI_RECOMMEND_PROVIDER", "openrouter")

		assert.PanicsWithError(t, config.ErrUnknownProvider.Error(), func() {
			config.MustLoad()
		})
	})

	t.Run("defaults", func(t *testing.T) {
		cfg := config.MustLoad()

		assert.Equal(t, "production", cfg.Env)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, ":9090", cfg.DiagAddr)
		assert.Equal(t, "https://api.groq.com/openai/v1", cfg.LLM.Groq.BaseURL)
		assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLM.Groq.Model)
		assert.Equal(t, "google/gemini-2.5-flash", cfg.LLM.Gateway.Model)
		assert.Equal(t, config.ProviderGateway, cfg.LLM.Recommend)
		assert.Equal(t, time.Hour, cfg.LLM.ReviewTTL)
		assert.Equal(t, 5, cfg.Batch.Size)
		assert.Equal(t, 2*time.Second, cfg.Batch.Delay)
		assert.Zero(t, cfg.Checker.Interval)
		assert.Empty(t, cfg.Tg.Token)
		assert.Empty(t, cfg.AdminToken)
	})

	t.Run("success", func(t *testing.T) {
		t.Setenv("PI_ENV", "local")
		t.Setenv("PI_TELEGRAM_TOKEN", "telegramToken")
		t.Setenv("PI_CATALOG_URL", "https://example.com")
		t.Setenv("PI_STORAGE_PATH", "some/path/to/db")
		t.Setenv("PI_ADMIN_TOKEN", "s3cret")
		t.Setenv("PI_GROQ_API_KEY", "gsk_test")
		t.Setenv("PI_RECOMMEND_PROVIDER", " Gemini ")
		t.Setenv("PI_GEMINI_API_KEY", "gemini-key")
		t.Setenv("PI_BATCH_SIZE", "3")
		t.Setenv("PI_BATCH_DELAY", "500ms")
		t.Setenv("PI_CHECK_INTERVAL", "30m")
		t.Setenv("PI_REVIEW_CACHE_TTL", "0s")

		cfg := config.MustLoad()

		assert.Equal(t, "local", cfg.Env)
		assert.Equal(t, 15*time.Second, cfg.Tg.Timeout)
		assert.Equal(t, "telegramToken", cfg.Tg.Token)
		assert.Equal(t, "https://example.com", cfg.CatalogURL)
		assert.Equal(t, "some/path/to/db", cfg.StoragePath)
		assert.Equal(t, "s3cret", cfg.AdminToken)
		assert.Equal(t, "gsk_test", cfg.LLM.Groq.APIKey)
		assert.Equal(t, config.ProviderGemini, cfg.LLM.Recommend)
		assert.Equal(t, "gemini-key", cfg.LLM.Gemini.APIKey)
		assert.Equal(t, 3, cfg.Batch.Size)
		assert.Equal(t, 500*time.Millisecond, cfg.Batch.Delay)
		assert.Equal(t, 30*time.Minute, cfg.Checker.Interval)
		assert.Zero(t, cfg.LLM.ReviewTTL)
	})
}
