package config

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MISTRAL_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.MaxFileSize() != 300*1024*1024 {
		t.Errorf("MaxFileSize = %d", cfg.MaxFileSize())
	}
	if cfg.ReadingSpeedWPM != 200 || cfg.ReadabilityEasyBelow != 15 || cfg.ReadabilityMediumBelow != 20 {
		t.Errorf("analysis defaults = %d/%v/%v", cfg.ReadingSpeedWPM, cfg.ReadabilityEasyBelow, cfg.ReadabilityMediumBelow)
	}
	if cfg.LanguageReliableAbove != 0.7 {
		t.Errorf("LanguageReliableAbove = %v", cfg.LanguageReliableAbove)
	}
	if cfg.LLMModel != "mistral-large-latest" || cfg.LLMTimeout != 90*time.Second {
		t.Errorf("LLM defaults = %s/%s", cfg.LLMModel, cfg.LLMTimeout)
	}
}

func TestLoadMissingAPIKey(t *testing.T) {
	t.Setenv("MISTRAL_API_KEY", "")

	_, err := Load()
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("Load error = %v, want ErrMissingAPIKey", err)
	}
}

func TestLoadInsightsDisabledNeedsNoKey(t *testing.T) {
	t.Setenv("MISTRAL_API_KEY", "")
	t.Setenv("INSIGHTS_ENABLED", "false")

	if _, err := Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
}

func TestLoadWithOverrideSkipsAPIKey(t *testing.T) {
	t.Setenv("MISTRAL_API_KEY", "")
	t.Setenv("INSIGHTS_ENABLED", "true")

	cfg, err := LoadWith(func(c *Config) { c.InsightsEnabled = false })
	if err != nil {
		t.Fatalf("LoadWith returned error: %v", err)
	}
	if cfg.InsightsEnabled {
		t.Error("override not applied")
	}
}

func TestLoadWithOverrideIsValidated(t *testing.T) {
	t.Setenv("MISTRAL_API_KEY", "k")

	if _, err := LoadWith(func(c *Config) { c.MaxFileSizeMB = 0 }); err == nil {
		t.Error("expected validation error for overridden size limit")
	}
}

func TestOCRLanguages(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"eng", []string{"eng"}},
		{"eng+deu", []string{"eng", "deu"}},
		{" eng + fra ", []string{"eng", "fra"}},
		{"none", nil},
		{"NONE", nil},
		{"", nil},
	}
	for _, tt := range tests {
		cfg := &Config{OCRLanguage: tt.in}
		if got := cfg.OCRLanguages(); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("OCRLanguages(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MISTRAL_API_KEY", "k")
	t.Setenv("MAX_FILE_SIZE_MB", "10")
	t.Setenv("READABILITY_EASY_BELOW", "12.5")
	t.Setenv("LLM_TIMEOUT", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxFileSizeMB != 10 || cfg.ReadabilityEasyBelow != 12.5 || cfg.LLMTimeout != 30*time.Second {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := map[string]string{
		"MAX_FILE_SIZE_MB":         "lots",
		"READABILITY_MEDIUM_BELOW": "10",
		"LANGUAGE_RELIABLE_ABOVE":  "1.5",
		"LLM_TIMEOUT":              "soon",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv("MISTRAL_API_KEY", "k")
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", key, value)
			}
		})
	}
}
