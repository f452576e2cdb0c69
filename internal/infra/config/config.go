package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	OpenAI  OpenAIConfig  `yaml:"openai"`
	Gemini  GeminiConfig  `yaml:"gemini"`
	Cache   CacheConfig   `yaml:"cache"`
	Assets  AssetsConfig  `yaml:"assets"`
	Catalog CatalogConfig `yaml:"catalog"`
	Access  AccessConfig  `yaml:"access"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// OpenAIConfig contains chat and image generation settings for OpenAI.
// An empty API key leaves the provider configured but failing closed.
type OpenAIConfig struct {
	APIKey       string  `yaml:"apiKey"`
	BaseURL      string  `yaml:"baseUrl"`
	ModelGeneral string  `yaml:"modelGeneral"`
	ModelStyle   string  `yaml:"modelStyle"`
	ImageModel   string  `yaml:"imageModel"`
	Temperature  float32 `yaml:"temperature"`
}

// GeminiConfig contains Gemini text and image generation settings.
type GeminiConfig struct {
	APIKey     string        `yaml:"apiKey"`
	BaseURL    string        `yaml:"baseUrl"`
	TextModel  string        `yaml:"textModel"`
	ImageModel string        `yaml:"imageModel"`
	ImageDelay time.Duration `yaml:"imageDelay"`
}

// CacheConfig controls the single-slot recommendation cache.
type CacheConfig struct {
	Valkey        ValkeyConfig `yaml:"valkey"`
	MaxImageWidth int          `yaml:"maxImageWidth"`
	JPEGQuality   int          `yaml:"jpegQuality"`
}

// ValkeyConfig contains connection information for the cache slot.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// AssetsConfig enables S3-compatible offload of cached images.
type AssetsConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	PublicURL string `yaml:"publicUrl"`
}

// CatalogConfig selects the tagged content catalog backend.
type CatalogConfig struct {
	PostgresDSN string `yaml:"postgresDsn"`
	MaxConns    int32  `yaml:"maxConns"`
}

// AccessConfig drives the passcode login gate. The gate is enabled only
// when both hashes are present.
type AccessConfig struct {
	AdminPasscodeHash string        `yaml:"adminPasscodeHash"`
	GuestPasscodeHash string        `yaml:"guestPasscodeHash"`
	TokenSecret       string        `yaml:"tokenSecret"`
	TokenTTL          time.Duration `yaml:"tokenTtl"`
}

// Enabled reports whether the login gate should protect the API.
func (a AccessConfig) Enabled() bool {
	return strings.TrimSpace(a.AdminPasscodeHash) != "" && strings.TrimSpace(a.GuestPasscodeHash) != ""
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitAndTrim(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = isTruthy(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.OpenAI.BaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL_GENERAL"); v != "" {
		cfg.OpenAI.ModelGeneral = v
	}
	if v := os.Getenv("OPENAI_MODEL_STYLE"); v != "" {
		cfg.OpenAI.ModelStyle = v
	}
	if v := os.Getenv("OPENAI_IMAGE_MODEL"); v != "" {
		cfg.OpenAI.ImageModel = v
	}
	if v := os.Getenv("OPENAI_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.OpenAI.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("GEMINI_BASE_URL"); v != "" {
		cfg.Gemini.BaseURL = v
	}
	if v := os.Getenv("GEMINI_TEXT_MODEL"); v != "" {
		cfg.Gemini.TextModel = v
	}
	if v := os.Getenv("GEMINI_IMAGE_MODEL"); v != "" {
		cfg.Gemini.ImageModel = v
	}
	if v := os.Getenv("GEMINI_IMAGE_DELAY"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Gemini.ImageDelay = parsed
		}
	}
	if v := os.Getenv("CACHE_VALKEY_ENABLED"); v != "" {
		cfg.Cache.Valkey.Enabled = isTruthy(v)
	}
	if v := os.Getenv("CACHE_VALKEY_ADDR"); v != "" {
		cfg.Cache.Valkey.Addr = v
	}
	if v := os.Getenv("CACHE_MAX_IMAGE_WIDTH"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Cache.MaxImageWidth = parsed
		}
	}
	if v := os.Getenv("CACHE_JPEG_QUALITY"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Cache.JPEGQuality = parsed
		}
	}
	if v := os.Getenv("ASSETS_ENDPOINT"); v != "" {
		cfg.Assets.Endpoint = v
	}
	if v := os.Getenv("ASSETS_ACCESS_KEY"); v != "" {
		cfg.Assets.AccessKey = v
	}
	if v := os.Getenv("ASSETS_SECRET_KEY"); v != "" {
		cfg.Assets.SecretKey = v
	}
	if v := os.Getenv("ASSETS_BUCKET"); v != "" {
		cfg.Assets.Bucket = v
	}
	if v := os.Getenv("ASSETS_REGION"); v != "" {
		cfg.Assets.Region = v
	}
	if v := os.Getenv("ASSETS_PUBLIC_URL"); v != "" {
		cfg.Assets.PublicURL = v
	}
	if v := os.Getenv("CATALOG_POSTGRES_DSN"); v != "" {
		cfg.Catalog.PostgresDSN = v
	}
	if v := os.Getenv("CATALOG_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Catalog.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("ACCESS_ADMIN_PASSCODE_HASH"); v != "" {
		cfg.Access.AdminPasscodeHash = v
	}
	if v := os.Getenv("ACCESS_GUEST_PASSCODE_HASH"); v != "" {
		cfg.Access.GuestPasscodeHash = v
	}
	if v := os.Getenv("ACCESS_TOKEN_SECRET"); v != "" {
		cfg.Access.TokenSecret = v
	}
	if v := os.Getenv("ACCESS_TOKEN_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Access.TokenTTL = parsed
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 120 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		OpenAI: OpenAIConfig{
			BaseURL:      "https://api.openai.com/v1",
			ModelGeneral: "gpt-4o-mini",
			ModelStyle:   "gpt-4o",
			ImageModel:   "gpt-image-1-mini",
			Temperature:  0.8,
		},
		Gemini: GeminiConfig{
			BaseURL:    "https://generativelanguage.googleapis.com",
			TextModel:  "gemini-3-flash-preview",
			ImageModel: "gemini-2.5-flash-image",
			ImageDelay: time.Second,
		},
		Cache: CacheConfig{
			MaxImageWidth: 1024,
			JPEGQuality:   80,
		},
		Access: AccessConfig{
			TokenTTL: 12 * time.Hour,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.OpenAI.ModelGeneral == "" || c.OpenAI.ModelStyle == "" {
		return errors.New("openai text models cannot be empty")
	}
	if c.Gemini.TextModel == "" {
		return errors.New("gemini.textModel cannot be empty")
	}
	if c.Gemini.ImageDelay < 0 {
		return errors.New("gemini.imageDelay cannot be negative")
	}
	if c.Cache.MaxImageWidth <= 0 {
		return errors.New("cache.maxImageWidth must be positive")
	}
	if c.Cache.JPEGQuality <= 0 || c.Cache.JPEGQuality > 100 {
		return errors.New("cache.jpegQuality must be within 1..100")
	}
	if c.Cache.Valkey.Enabled && strings.TrimSpace(c.Cache.Valkey.Addr) == "" {
		return errors.New("cache.valkey.addr cannot be empty when valkey cache is enabled")
	}
	if c.Access.Enabled() && strings.TrimSpace(c.Access.TokenSecret) == "" {
		return errors.New("access.tokenSecret cannot be empty when the login gate is enabled")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}

func isTruthy(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitAndTrim(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
