package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all process-wide settings. It is built once in main and passed
// into constructors; nothing else reads the environment after startup.
type Config struct {
	// Server
	Port string
	Env  string

	// Backend bases. BackendURL is the server-side path to the album backend
	// (internal service hostname), PublicAPIURL the one a browser or other
	// out-of-cluster client reaches it through.
	BackendURL   string
	PublicAPIURL string

	// CORS
	AllowedOrigins []string

	// Scratch directory for multipart uploads before they are forwarded.
	TmpDir string

	// Logging
	LogLevel string
}

// Load reads configuration from the environment, falling back to defaults.
func Load() *Config {
	// Load .env file in development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Port: getEnv("PORT", "3000"),
		Env:  getEnv("ENV", "development"),

		BackendURL:   getEnv("BACKEND_URL", "http://127.0.0.1:8000"),
		PublicAPIURL: getEnv("PUBLIC_API_URL", "http://localhost:8000"),

		AllowedOrigins: parseStringSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		TmpDir: getEnv("TMP_DIR", os.TempDir()),

		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseStringSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
