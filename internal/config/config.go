package config

import (
	"errors"
	"strings"
	"time"

	"github.com/Houeta/phone-insights/internal/llm"
	"github.com/spf13/viper"
)

var (
	ErrInvalidBatchSize = errors.New("error getting PI_BATCH_SIZE: value must be a positive integer")
	ErrUnknownProvider  = errors.New("error getting PI_RECOMMEND_PROVIDER: expected gateway or gemini")
)

// Recommendation providers.
const (
	ProviderGateway = "gateway"
	ProviderGemini  = "gemini"
)

type Config struct {
	Env         string // Env is the current environment: local, development, production.
	HTTPAddr    string
	DiagAddr    string
	StoragePath string
	AdminToken  string
	CatalogURL  string
	LLM         LLM
	Batch       Batch
	Checker     Checker
	Tg          Telegram
}

// Provider is one OpenAI-compatible endpoint.
type Provider struct {
	APIKey  string
	BaseURL string
	Model   string
}

type LLM struct {
	Groq      Provider
	Gateway   Provider
	Gemini    Provider
	Recommend string        // Recommend selects the provider of recommendations.
	Timeout   time.Duration // Timeout bounds a single completion.
	ReviewTTL time.Duration // ReviewTTL is how long generated reviews are served from cache; 0 disables it.
}

// Batch tunes the specs backfill.
type Batch struct {
	Size  int
	Delay time.Duration
}

type Checker struct {
	Interval time.Duration // Interval between catalog checks; 0 disables the background checker.
}

type Telegram struct {
	Token   string        // Token is an unique telegram bot token. The bot is disabled when empty.
	Timeout time.Duration // Timeout is a poller timeout duration.
}

// MustLoad loads the configuration from environment variables and returns a Config struct.
func MustLoad() *Config {
	// Automatically binds environment variables to config keys
	viper.SetEnvPrefix("PI")
	viper.AutomaticEnv()

	// optional args
	viper.SetDefault("ENV", "production")
	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("DIAG_ADDR", ":9090")
	viper.SetDefault("STORAGE_PATH", "phone-insights.db")
	viper.SetDefault("GROQ_BASE_URL", llm.GroqBaseURL)
	viper.SetDefault("GROQ_MODEL", llm.GroqModel)
	viper.SetDefault("GATEWAY_BASE_URL", llm.GatewayBaseURL)
	viper.SetDefault("GATEWAY_MODEL", llm.GatewayModel)
	viper.SetDefault("GEMINI_MODEL", llm.GeminiModel)
	viper.SetDefault("RECOMMEND_PROVIDER", ProviderGateway)
	viper.SetDefault("LLM_TIMEOUT", "60s")
	viper.SetDefault("REVIEW_CACHE_TTL", "1h")
	viper.SetDefault("BATCH_SIZE", 5)
	viper.SetDefault("BATCH_DELAY", "2s")
	viper.SetDefault("CHECK_INTERVAL", "0s")
	viper.SetDefault("TELEGRAM_TIMEOUT", "15s")

	if viper.GetInt("BATCH_SIZE") <= 0 {
		panic(ErrInvalidBatchSize)
	}

	provider := strings.ToLower(strings.TrimSpace(viper.GetString("RECOMMEND_PROVIDER")))
	if provider != ProviderGateway && provider != ProviderGemini {
		panic(ErrUnknownProvider)
	}

	return &Config{
		Env:         viper.GetString("ENV"),
		HTTPAddr:    viper.GetString("HTTP_ADDR"),
		DiagAddr:    viper.GetString("DIAG_ADDR"),
		StoragePath: viper.GetString("STORAGE_PATH"),
		AdminToken:  viper.GetString("ADMIN_TOKEN"),
		CatalogURL:  viper.GetString("CATALOG_URL"),
		LLM: LLM{
			Groq: Provider{
				APIKey:  viper.GetString("GROQ_API_KEY"),
				BaseURL: viper.GetString("GROQ_BASE_URL"),
				Model:   viper.GetString("GROQ_MODEL"),
			},
			Gateway: Provider{
				APIKey:  viper.GetString("GATEWAY_API_KEY"),
				BaseURL: viper.GetString("GATEWAY_BASE_URL"),
				Model:   viper.GetString("GATEWAY_MODEL"),
			},
			Gemini: Provider{
				APIKey: viper.GetString("GEMINI_API_KEY"),
				Model:  viper.GetString("GEMINI_MODEL"),
			},
			Recommend: provider,
			Timeout:   viper.GetDuration("LLM_TIMEOUT"),
			ReviewTTL: viper.GetDuration("REVIEW_CACHE_TTL"),
		},
		Batch: Batch{
			Size:  viper.GetInt("BATCH_SIZE"),
			Delay: viper.GetDuration("BATCH_DELAY"),
		},
		Checker: Checker{
			Interval: viper.GetDuration("CHECK_INTERVAL"),
		},
		Tg: Telegram{
			Token:   viper.GetString("TELEGRAM_TOKEN"),
			Timeout: viper.GetDuration("TELEGRAM_TIMEOUT"),
		},
	}
}
