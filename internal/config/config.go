package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	Environment string
	ServiceName string
	Version     string
	LogLevel    string
	LogFormat   string

	LogDir string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	DBMaxConns    int
	DBMaxIdleTime time.Duration
	DBMaxLifetime time.Duration

	// API key protecting the HTTP surface
	APIKey string

	// Reverse proxies whose X-Forwarded-For headers are trusted
	TrustedProxies []string

	// Weather provider
	WeatherAPIKey  string
	WeatherBaseURL string
	WeatherTTL     time.Duration
	WeatherRefresh time.Duration

	// Reverse geocoding
	GeocodeBaseURL string
	GeocodeTimeout time.Duration

	// Language-model backend (chat assistant + plant analysis)
	LLMEndpoint string
	LLMAPIKey   string
	LLMModel    string

	// File storage
	UploadDir     string
	PublicBaseURL string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "dev"),
		ServiceName: getEnv("SERVICE_NAME", "agrocampo-api"),
		Version:     getEnv("VERSION", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),

		LogDir: getEnv("LOG_DIR", "logs"),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "agrocampo"),

		DBMaxConns:    getEnvAsInt("DB_MAX_CONNECTIONS", 25),
		DBMaxIdleTime: getEnvAsDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
		DBMaxLifetime: getEnvAsDuration("DB_MAX_LIFETIME", time.Hour),

		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),

		WeatherAPIKey:  getEnv("WEATHER_API_KEY", ""),
		WeatherBaseURL: getEnv("WEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		WeatherTTL:     getEnvAsDuration("WEATHER_TTL", 30*time.Minute),
		WeatherRefresh: getEnvAsDuration("WEATHER_REFRESH_INTERVAL", time.Hour),

		GeocodeBaseURL: getEnv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocodeTimeout: getEnvAsDuration("GEOCODE_TIMEOUT", 15*time.Second),

		LLMEndpoint: getEnv("LLM_ENDPOINT", "https://api.openai.com"),
		LLMAPIKey:   getEnv("LLM_API_KEY", ""),
		LLMModel:    getEnv("LLM_MODEL", "gpt-4o-mini"),

		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// splitList parses a comma-separated environment value into a slice
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvAsDuration retrieves a duration environment variable or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
