package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	OTel                 OTelConfig
	LLM                  LLMConfig
	Env                  string
	Port                 string
	WebDir               string
	CORSAllowedOrigins   []string
	ExposeProviderErrors bool
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

type LLMConfig struct {
	Provider  string // "gemini", "openai" or "anthropic"
	APIKey    string
	BaseURL   string // Optional: for custom endpoints
	Model     string // Empty means provider default
	MaxTokens int
}

// providerKeyEnv maps each provider to the provider-specific credential variable
// consulted when LLM_API_KEY is not set.
var providerKeyEnv = map[string]string{
	"gemini":    "GEMINI_API_KEY",
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
}

// Load loads configuration from environment variables.
// In development, it first loads a .env file if one exists.
// The model credential is required; a missing key fails here instead of on the
// first model call.
func Load() (Config, error) {
	if getEnv("RELAY_ENV", "development") == "development" {
		_ = godotenv.Load(".env")
	}

	provider := strings.ToLower(getEnv("LLM_PROVIDER", "gemini"))

	cfg := Config{
		Env:                  getEnv("RELAY_ENV", "development"),
		Port:                 getEnv("PORT", "5000"),
		WebDir:               getEnv("WEB_DIR", "static"),
		CORSAllowedOrigins:   splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ExposeProviderErrors: getEnvBool("EXPOSE_PROVIDER_ERRORS", false),
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "codeflow-relay"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
		LLM: LLMConfig{
			Provider:  provider,
			APIKey:    getEnv("LLM_API_KEY", os.Getenv(providerKeyEnv[provider])),
			BaseURL:   getEnv("LLM_BASE_URL", ""),
			Model:     getEnv("LLM_MODEL", ""),
			MaxTokens: getEnvInt("LLM_MAX_TOKENS", 8192),
		},
	}

	if _, ok := providerKeyEnv[cfg.LLM.Provider]; !ok {
		return Config{}, fmt.Errorf("unsupported LLM_PROVIDER: %s (supported: gemini, openai, anthropic)", cfg.LLM.Provider)
	}

	if cfg.LLM.APIKey == "" {
		return Config{}, fmt.Errorf("LLM_API_KEY or %s is required", providerKeyEnv[cfg.LLM.Provider])
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
