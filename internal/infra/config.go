package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultAllowedOrigins is the CORS allow-list used when CORS_ALLOWED_ORIGINS is unset.
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"https://chz-fan-base.vercel.app",
	"https://nft-sports-studio.vercel.app",
}

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv string
	Port   string

	OpenAIAPIKey     string
	OpenAIBaseURL    string
	OpenAIImageModel string
	OpenAIOrg        string

	OpenRouterAPIKey      string
	OpenRouterBaseURL     string
	OpenRouterVisionModel string
	OpenRouterReferer     string
	OpenRouterTitle       string

	MongoURI      string
	MongoDatabase string
	DatabaseURL   string

	StadiumReferencesDir string
	ImageReferencesDir   string

	AllowedOrigins    []string
	RateLimitPerMin   int
	TrustProxyHeaders bool
	GeoIPDBPath       string
	ReferenceCacheTTL time.Duration

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	ShutdownTimeout  time.Duration

	VisionTimeout   time.Duration
	ImageTimeout    time.Duration
	DownloadTimeout time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:                getEnv("APP_ENV", "development"),
		Port:                  getEnv("PORT", "8000"),
		OpenAIAPIKey:          strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL:         getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIImageModel:      getEnv("OPENAI_IMAGE_MODEL", "dall-e-3"),
		OpenAIOrg:             os.Getenv("OPENAI_ORG"),
		OpenRouterAPIKey:      strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY")),
		OpenRouterBaseURL:     getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		OpenRouterVisionModel: getEnv("OPENROUTER_VISION_MODEL", "openai/gpt-4o"),
		OpenRouterReferer:     getEnv("OPENROUTER_REFERER", "https://nft-sports-studio.vercel.app"),
		OpenRouterTitle:       getEnv("OPENROUTER_TITLE", "NFT Sports Studio"),
		MongoURI:              getEnv("MONGODB_URI_PROD", os.Getenv("MONGODB_URI")),
		MongoDatabase:         getEnv("MONGODB_DATABASE", "nft_generator"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		StadiumReferencesDir:  getEnv("STADIUM_REFERENCES_DIR", "stadium_references"),
		ImageReferencesDir:    getEnv("IMAGE_REFERENCES_DIR", "image_references"),
		AllowedOrigins:        getEnvList("CORS_ALLOWED_ORIGINS", DefaultAllowedOrigins),
		RateLimitPerMin:       getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		TrustProxyHeaders:     getEnvBool("TRUST_PROXY_HEADERS", false),
		GeoIPDBPath:           os.Getenv("GEOIP_DB_PATH"),
		ReferenceCacheTTL:     time.Second * time.Duration(getEnvInt("REFERENCE_CACHE_TTL_SECONDS", 300)),
		HTTPReadTimeout:       time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:      time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 300)),
		HTTPIdleTimeout:       time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		VisionTimeout:         time.Second * time.Duration(getEnvInt("VISION_TIMEOUT_SECONDS", 60)),
		ImageTimeout:          time.Second * time.Duration(getEnvInt("IMAGE_TIMEOUT_SECONDS", 120)),
		DownloadTimeout:       time.Second * time.Duration(getEnvInt("DOWNLOAD_TIMEOUT_SECONDS", 60)),
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}
	if cfg.RateLimitPerMin < 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	// In-flight generations may run as long as a response write is allowed.
	cfg.ShutdownTimeout = time.Second * time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 0))
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = cfg.HTTPWriteTimeout
	}

	return cfg, nil
}

// HasImageProvider reports whether image generation credentials are present.
func (c *Config) HasImageProvider() bool {
	return c != nil && c.OpenAIAPIKey != ""
}

// HasVisionProvider reports whether vision analysis credentials are present.
func (c *Config) HasVisionProvider() bool {
	return c != nil && c.OpenRouterAPIKey != ""
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c != nil && c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return append([]string(nil), fallback...)
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
