package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"LOG_LEVEL", "GEMINI_API_KEY", "GEMINI_MODEL_IMAGE", "OUTPUT_DIR", "S3_BUCKET"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.GeminiModelImage != "gemini-2.0-flash-exp-image-generation" {
		t.Errorf("GeminiModelImage = %q, want default image model", cfg.GeminiModelImage)
	}
	if cfg.OutputDir != "images" {
		t.Errorf("OutputDir = %q, want images", cfg.OutputDir)
	}
	if cfg.S3Enabled() {
		t.Error("S3Enabled() = true without S3_BUCKET")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL_IMAGE", "gemini-3-pro-image-preview")
	t.Setenv("OUTPUT_DIR", "out")
	t.Setenv("S3_BUCKET", "banners")
	t.Setenv("S3_USE_SSL", "true")

	cfg := Load()

	if cfg.GeminiAPIKey != "test-key" {
		t.Errorf("GeminiAPIKey = %q, want test-key", cfg.GeminiAPIKey)
	}
	if cfg.GeminiModelImage != "gemini-3-pro-image-preview" {
		t.Errorf("GeminiModelImage = %q", cfg.GeminiModelImage)
	}
	if cfg.OutputDir != "out" {
		t.Errorf("OutputDir = %q, want out", cfg.OutputDir)
	}
	if !cfg.S3Enabled() {
		t.Error("S3Enabled() = false with S3_BUCKET set")
	}
	if !cfg.S3UseSSL {
		t.Error("S3UseSSL = false, want true")
	}
}

func TestValidate_MissingAPIKey(t *testing.T) {
	cfg := &Config{}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error for empty API key")
	}
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Validate() error = %v, want ErrMissingAPIKey", err)
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := &Config{GeminiAPIKey: "k"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("missing file is not an error", func(t *testing.T) {
		if err := LoadEnvFile(filepath.Join(t.TempDir(), "nope.env")); err != nil {
			t.Errorf("LoadEnvFile() = %v, want nil for missing file", err)
		}
	})

	t.Run("loads variables from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		if err := os.WriteFile(path, []byte("BANNERGEN_TEST_KEY=from-file\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("BANNERGEN_TEST_KEY", "")
		os.Unsetenv("BANNERGEN_TEST_KEY")

		if err := LoadEnvFile(path); err != nil {
			t.Fatalf("LoadEnvFile() = %v", err)
		}
		if got := os.Getenv("BANNERGEN_TEST_KEY"); got != "from-file" {
			t.Errorf("BANNERGEN_TEST_KEY = %q, want from-file", got)
		}
	})
}
