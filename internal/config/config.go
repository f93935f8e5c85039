package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/samvad-hq/vernacular-news/internal/domain"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`

	NewsAPIURL   string `mapstructure:"news_api_url"`
	NewsAPIKey   string `mapstructure:"news_api_key"`
	NewsTopic    string `mapstructure:"news_topic"`
	NewsPageSize int    `mapstructure:"news_page_size"`

	TranslateAPIURL string  `mapstructure:"translate_api_url"`
	TranslateAPIKey string  `mapstructure:"translate_api_key"`
	TranslateRPS    float64 `mapstructure:"translate_rps"`
	TranslateBurst  int     `mapstructure:"translate_burst"`

	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`

	DefaultLanguage string `mapstructure:"default_language"`
	DefaultCategory string `mapstructure:"default_category"`

	PrefsStoreType string `mapstructure:"prefs_store_type"`
	PrefsBBoltPath string `mapstructure:"prefs_bbolt_path"`

	SpeechBackend  string `mapstructure:"speech_backend"`
	SpeechCommand  string `mapstructure:"speech_command"`
	PublishersFile string `mapstructure:"publishers_file"`

	EnrichImages bool `mapstructure:"enrich_images"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "vernacular-news")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "./data/reader.log")
	v.SetDefault("news_api_url", "https://newsapi.org/v2/everything")
	v.SetDefault("news_api_key", "")
	v.SetDefault("news_topic", "india")
	v.SetDefault("news_page_size", 0)
	v.SetDefault("translate_api_url", "https://translation.googleapis.com/language/translate/v2")
	v.SetDefault("translate_api_key", "")
	v.SetDefault("translate_rps", 0)
	v.SetDefault("translate_burst", 1)
	v.SetDefault("http_timeout_seconds", 0) // no timeout
	v.SetDefault("default_language", "hi")
	v.SetDefault("default_category", "general")
	v.SetDefault("prefs_store_type", "bbolt")
	v.SetDefault("prefs_bbolt_path", "./data/prefs.db")
	v.SetDefault("speech_backend", "none")
	v.SetDefault("speech_command", "espeak-ng")
	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("enrich_images", false)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.NewsAPIKey = strings.TrimSpace(c.NewsAPIKey)
	c.TranslateAPIKey = strings.TrimSpace(c.TranslateAPIKey)
	c.SpeechBackend = strings.ToLower(strings.TrimSpace(c.SpeechBackend))
	c.DefaultLanguage = strings.TrimSpace(c.DefaultLanguage)
	c.DefaultCategory = strings.ToLower(strings.TrimSpace(c.DefaultCategory))

	if c.NewsAPIKey == "" {
		return fmt.Errorf("news_api_key is required")
	}
	if c.TranslateAPIKey == "" {
		return fmt.Errorf("translate_api_key is required")
	}
	if strings.TrimSpace(c.NewsAPIURL) == "" {
		return fmt.Errorf("news_api_url is required")
	}
	if strings.TrimSpace(c.TranslateAPIURL) == "" {
		return fmt.Errorf("translate_api_url is required")
	}
	if c.NewsPageSize < 0 {
		return fmt.Errorf("invalid news_page_size (must not be negative)")
	}
	if c.TranslateRPS < 0 {
		return fmt.Errorf("invalid translate_rps (must not be negative)")
	}
	if c.TranslateBurst <= 0 {
		c.TranslateBurst = 1
	}
	if c.HTTPTimeoutSeconds < 0 {
		return fmt.Errorf("invalid http_timeout_seconds (must not be negative)")
	}
	c.HTTPTimeout = time.Duration(c.HTTPTimeoutSeconds) * time.Second

	lang, ok := domain.LookupLanguage(c.DefaultLanguage)
	if !ok {
		return fmt.Errorf("unsupported default_language %q", c.DefaultLanguage)
	}
	c.DefaultLanguage = lang.Code
	if _, err := domain.ParseCategory(c.DefaultCategory); err != nil {
		return fmt.Errorf("invalid default_category: %w", err)
	}

	switch c.SpeechBackend {
	case "", "none", "command", "publishers":
	default:
		return fmt.Errorf("unsupported speech_backend %q", c.SpeechBackend)
	}
	return nil
}

// Redacted returns a copy safe for logging.
func (c Config) Redacted() Config {
	c.NewsAPIKey = mask(c.NewsAPIKey)
	c.TranslateAPIKey = mask(c.TranslateAPIKey)
	return c
}

func mask(secret string) string {
	if len(secret) <= 4 {
		return "****"
	}
	return secret[:2] + strings.Repeat("*", len(secret)-4) + secret[len(secret)-2:]
}
