package config

import (
	"testing"
	"time"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("NEWS_API_KEY", "news-key")
	t.Setenv("TRANSLATE_API_KEY", "translate-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NewsTopic != "india" {
		t.Fatalf("NewsTopic = %q, want india", cfg.NewsTopic)
	}
	if cfg.DefaultLanguage != "hi" || cfg.DefaultCategory != "general" {
		t.Fatalf("unexpected defaults %q/%q", cfg.DefaultLanguage, cfg.DefaultCategory)
	}
	if cfg.HTTPTimeout != 0 {
		t.Fatalf("expected no http timeout by default, got %v", cfg.HTTPTimeout)
	}
	if cfg.PrefsStoreType != "bbolt" {
		t.Fatalf("PrefsStoreType = %q", cfg.PrefsStoreType)
	}
}

func TestLoadReadsEnvOverrides(t *testing.T) {
	t.Setenv("NEWS_API_KEY", "news-key")
	t.Setenv("TRANSLATE_API_KEY", "translate-key")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "7")
	t.Setenv("SPEECH_BACKEND", "Command")
	t.Setenv("DEFAULT_LANGUAGE", "ta")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPTimeout != 7*time.Second {
		t.Fatalf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.SpeechBackend != "command" {
		t.Fatalf("SpeechBackend = %q", cfg.SpeechBackend)
	}
	if cfg.DefaultLanguage != "ta" {
		t.Fatalf("DefaultLanguage = %q", cfg.DefaultLanguage)
	}
}

func TestLoadRequiresCredentials(t *testing.T) {
	t.Setenv("NEWS_API_KEY", "")
	t.Setenv("TRANSLATE_API_KEY", "translate-key")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when news_api_key is missing")
	}
}

func TestLoadRejectsUnknownSpeechBackend(t *testing.T) {
	t.Setenv("NEWS_API_KEY", "news-key")
	t.Setenv("TRANSLATE_API_KEY", "translate-key")
	t.Setenv("SPEECH_BACKEND", "carrier-pigeon")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unsupported speech backend")
	}
}

func TestRedactedMasksKeys(t *testing.T) {
	cfg := Config{NewsAPIKey: "abcdefgh", TranslateAPIKey: "xyz"}
	red := cfg.Redacted()
	if red.NewsAPIKey != "ab****gh" {
		t.Fatalf("NewsAPIKey = %q", red.NewsAPIKey)
	}
	if red.TranslateAPIKey != "****" {
		t.Fatalf("TranslateAPIKey = %q", red.TranslateAPIKey)
	}
	if cfg.NewsAPIKey != "abcdefgh" {
		t.Fatalf("Redacted must not modify the receiver")
	}
}

func TestLoadRejectsUnknownDefaults(t *testing.T) {
	t.Setenv("NEWS_API_KEY", "news-key")
	t.Setenv("TRANSLATE_API_KEY", "translate-key")
	t.Setenv("DEFAULT_LANGUAGE", "klingon")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unsupported default language")
	}

	t.Setenv("DEFAULT_LANGUAGE", "ZH-cn")
	t.Setenv("DEFAULT_CATEGORY", "weather")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown default category")
	}

	t.Setenv("DEFAULT_CATEGORY", "Sports")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultLanguage != "zh-CN" || cfg.DefaultCategory != "sports" {
		t.Fatalf("defaults not canonicalised: %q/%q", cfg.DefaultLanguage, cfg.DefaultCategory)
	}
}
