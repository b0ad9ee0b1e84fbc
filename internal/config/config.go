package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

type Config struct {
	Port string

	// Auth. Empty disables bearer auth on the API.
	APIKey string

	// Model provider
	LLMProvider     string
	GeminiAPIKey    string
	GeminiModel     string
	AnthropicAPIKey string
	AnthropicModel  string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Limits
	MaxUploadBytes int64
	MaxInputTokens int
	ParseTimeout   time.Duration

	// State
	SessionTTL    time.Duration
	ParseCacheTTL time.Duration
	SettingsPath  string

	// Rendering
	BrandName       string
	DefaultViewport float64

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("INFOGRAPHIC_API_KEY"),

		LLMProvider:     envOr("LLM_PROVIDER", ProviderGemini),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     envOr("GEMINI_MODEL", "gemini-3-flash-preview"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB
		MaxInputTokens: envInt("MAX_INPUT_TOKENS", 6000),
		ParseTimeout:   envDuration("PARSE_TIMEOUT", 90*time.Second),

		SessionTTL:    envDuration("SESSION_TTL", 1*time.Hour),
		ParseCacheTTL: envDuration("PARSE_CACHE_TTL", 24*time.Hour),
		SettingsPath:  os.Getenv("SETTINGS_PATH"),

		BrandName:       envOr("BRAND_NAME", "NovaViA"),
		DefaultViewport: envFloat("DEFAULT_VIEWPORT", 1280),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.MaxInputTokens <= 0 {
		cfg.MaxInputTokens = 6000
	}
	if cfg.ParseTimeout <= 0 {
		cfg.ParseTimeout = 90 * time.Second
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 1 * time.Hour
	}
	if cfg.ParseCacheTTL <= 0 {
		cfg.ParseCacheTTL = 24 * time.Hour
	}
	if cfg.DefaultViewport <= 0 {
		cfg.DefaultViewport = 1280
	}

	return cfg
}

// Validate rejects settings the server cannot start with. A missing provider
// key is not an error: generation then reports a configuration error per
// request.
func (c Config) Validate() error {
	if c.LLMProvider != ProviderGemini && c.LLMProvider != ProviderAnthropic {
		return fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderGemini, ProviderAnthropic, c.LLMProvider)
	}
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	return nil
}

// ProviderKey returns the API key of the selected provider.
func (c Config) ProviderKey() string {
	if c.LLMProvider == ProviderAnthropic {
		return c.AnthropicAPIKey
	}
	return c.GeminiAPIKey
}

// ProviderModel returns the model name of the selected provider.
func (c Config) ProviderModel() string {
	if c.LLMProvider == ProviderAnthropic {
		return c.AnthropicModel
	}
	return c.GeminiModel
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
