package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var ErrMissingAPIKey = errors.New("MISTRAL_API_KEY is required when insights are enabled")

type Config struct {
	Port         string
	DatabasePath string
	LogLevel     string

	// S3 archive of uploaded originals, disabled when S3Endpoint is empty
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3BucketName      string
	S3UseSSL          bool

	// LLM insights
	InsightsEnabled bool
	LLMAPIKey       string
	LLMModel        string
	LLMBaseURL      string
	LLMTemperature  float64
	LLMTimeout      time.Duration
	MinInsightText  int
	KeyPointCount   int

	// Upload limits
	MaxFileSizeMB int64

	// Analysis tuning
	ReadingSpeedWPM        int
	ReadabilityEasyBelow   float64
	ReadabilityMediumBelow float64
	TopWordCount           int
	LanguageReliableAbove  float64
	OCRLanguage            string
}

// OCRDisabled as OCR_LANGUAGE turns image text recognition off.
const OCRDisabled = "none"

func Load() (*Config, error) {
	return LoadWith()
}

// LoadWith reads the environment and applies overrides before validation,
// so callers can adjust settings without touching the process environment.
func LoadWith(overrides ...func(*Config)) (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DatabasePath:      getEnv("DATABASE_PATH", "data/metadata.db"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", "minioadmin"),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", "minioadmin"),
		S3BucketName:      getEnv("S3_BUCKET_NAME", "documents"),
		S3UseSSL:          getEnv("S3_USE_SSL", "false") == "true",
		InsightsEnabled:   getEnv("INSIGHTS_ENABLED", "true") == "true",
		LLMAPIKey:         getEnv("MISTRAL_API_KEY", ""),
		LLMModel:          getEnv("MISTRAL_MODEL", "mistral-large-latest"),
		LLMBaseURL:        getEnv("LLM_BASE_URL", "https://api.mistral.ai/v1"),
		LLMTemperature:    0.3,
		OCRLanguage:       getEnv("OCR_LANGUAGE", "eng"),
		MinInsightText:    100,
		KeyPointCount:     5,
		TopWordCount:      5,
	}

	var err error
	if cfg.LLMTimeout, err = getDuration("LLM_TIMEOUT", 90*time.Second); err != nil {
		return nil, err
	}
	if cfg.MaxFileSizeMB, err = getInt64("MAX_FILE_SIZE_MB", 300); err != nil {
		return nil, err
	}
	var wpm int64
	if wpm, err = getInt64("READING_SPEED_WPM", 200); err != nil {
		return nil, err
	}
	cfg.ReadingSpeedWPM = int(wpm)
	if cfg.ReadabilityEasyBelow, err = getFloat("READABILITY_EASY_BELOW", 15); err != nil {
		return nil, err
	}
	if cfg.ReadabilityMediumBelow, err = getFloat("READABILITY_MEDIUM_BELOW", 20); err != nil {
		return nil, err
	}
	if cfg.LanguageReliableAbove, err = getFloat("LANGUAGE_RELIABLE_ABOVE", 0.7); err != nil {
		return nil, err
	}

	for _, override := range overrides {
		override(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values once so later stages can trust them.
func (c *Config) Validate() error {
	if c.InsightsEnabled && c.LLMAPIKey == "" {
		return ErrMissingAPIKey
	}
	if c.MaxFileSizeMB <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE_MB must be positive, got %d", c.MaxFileSizeMB)
	}
	if c.ReadingSpeedWPM <= 0 {
		return fmt.Errorf("READING_SPEED_WPM must be positive, got %d", c.ReadingSpeedWPM)
	}
	if c.ReadabilityEasyBelow > c.ReadabilityMediumBelow {
		return fmt.Errorf("READABILITY_EASY_BELOW (%v) must not exceed READABILITY_MEDIUM_BELOW (%v)",
			c.ReadabilityEasyBelow, c.ReadabilityMediumBelow)
	}
	if c.LanguageReliableAbove < 0 || c.LanguageReliableAbove > 1 {
		return fmt.Errorf("LANGUAGE_RELIABLE_ABOVE must be within [0, 1], got %v", c.LanguageReliableAbove)
	}
	return nil
}

// MaxFileSize is the upload limit in bytes.
func (c *Config) MaxFileSize() int64 {
	return c.MaxFileSizeMB * 1024 * 1024
}

// OCRLanguages lists the Tesseract languages joined by "+" in OCRLanguage.
// It is empty when OCR is disabled.
func (c *Config) OCRLanguages() []string {
	value := strings.TrimSpace(c.OCRLanguage)
	if value == "" || strings.EqualFold(value, OCRDisabled) {
		return nil
	}

	var langs []string
	for _, lang := range strings.Split(value, "+") {
		if lang = strings.TrimSpace(lang); lang != "" {
			langs = append(langs, lang)
		}
	}
	return langs
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
