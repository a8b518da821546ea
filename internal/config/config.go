package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is the env file probed at startup when ENV_FILE is not set.
const DefaultEnvFile = "GEMINI_API_KEY.env"

// ErrMissingAPIKey indicates no Gemini API key was found in the environment
// or the env file.
var ErrMissingAPIKey = errors.New("missing GEMINI_API_KEY")

// Config holds application configuration
type Config struct {
	LogLevel string

	// Gemini API
	GeminiAPIKey      string
	GeminiAPIEndpoint string // if set, overrides default Gemini API base URL
	GeminiModelImage  string // image generation model

	// Output
	OutputDir string // directory for generated banners

	// S3 mirror (optional; enabled when S3_BUCKET is set)
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3UseSSL    bool
	S3PublicURL string
}

// LoadEnvFile loads environment variables from the given env file. A missing
// file is not an error: the variables may already be set in the process
// environment (e.g. in CI or a container).
func LoadEnvFile(path string) error {
	if path == "" {
		path = DefaultEnvFile
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to check env file %s: %w", path, err)
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("could not load %s: %w", path, err)
	}

	return nil
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),

		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiAPIEndpoint: getEnv("GEMINI_API_ENDPOINT", ""),
		GeminiModelImage:  getEnv("GEMINI_MODEL_IMAGE", "gemini-2.0-flash-exp-image-generation"),

		OutputDir: getEnv("OUTPUT_DIR", "images"),

		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3UseSSL:    getEnvBool("S3_USE_SSL", false),
		S3PublicURL: getEnv("S3_PUBLIC_URL", ""),
	}
}

// Validate checks that required settings are present. The API key is required
// before any other stage runs.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("%w: set it in %s or the environment", ErrMissingAPIKey, DefaultEnvFile)
	}
	return nil
}

// S3Enabled reports whether the optional S3 mirror is configured.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
