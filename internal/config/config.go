// Package config provides configuration management for the taxonomy services
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Database DatabaseConfig
	Log      LogConfig
	Console  ConsoleConfig
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

// AuthConfig holds operator authentication settings.
// An empty JWTSecret leaves the API open.
type AuthConfig struct {
	JWTSecret         string
	AccessExpiry      int
	AdminUsername     string
	AdminPasswordHash string
}

// Enabled reports whether mutating routes require a bearer token
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins   []string
	AllowCredentials bool
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Path     string
	Debug    bool
}

// LogConfig selects the slog handler
type LogConfig struct {
	Level  string
	Format string
}

// ConsoleConfig holds the settings of the terminal console
type ConsoleConfig struct {
	BackendURL string
	Token      string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; real env vars win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         GetEnv("PORT", "8001"),
			Mode:         GetEnv("GIN_MODE", "debug"),
			ReadTimeout:  GetInt("SERVER_READ_TIMEOUT", 30),
			WriteTimeout: GetInt("SERVER_WRITE_TIMEOUT", 30),
		},
		Auth: AuthConfig{
			JWTSecret:         os.Getenv("JWT_SECRET"),
			AccessExpiry:      GetInt("JWT_ACCESS_EXPIRY_HOURS", 24),
			AdminUsername:     GetEnv("ADMIN_USERNAME", "admin"),
			AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   splitString(GetEnv("CORS_ALLOWED_ORIGINS", "*")),
			AllowCredentials: GetBool("CORS_ALLOW_CREDENTIALS", false),
		},
		Database: DatabaseConfig{
			Driver:   GetEnv("DB_DRIVER", "postgres"),
			Host:     GetEnv("DB_HOST", "localhost"),
			Port:     os.Getenv("DB_PORT"),
			User:     GetEnv("DB_USER", "taxonomy"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     GetEnv("DB_NAME", "taxonomy"),
			SSLMode:  GetEnv("DB_SSLMODE", "disable"),
			Path:     GetEnv("DB_PATH", "taxonomy.db"),
			Debug:    GetBool("DB_DEBUG", false),
		},
		Log: LogConfig{
			Level:  GetEnv("LOG_LEVEL", "info"),
			Format: GetEnv("LOG_FORMAT", "text"),
		},
		Console: ConsoleConfig{
			BackendURL: GetEnv("BACKEND_URL", "http://localhost:8001"),
			Token:      os.Getenv("API_TOKEN"),
		},
	}
}

// NewLogger builds the process logger described by c
func (c LogConfig) NewLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// GetEnv returns the value of key or fallback when it is unset or empty
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetInt returns key parsed as int, or defaultValue
func GetInt(key string, defaultValue int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	if i, err := strconv.Atoi(val); err == nil {
		return i
	}
	return defaultValue
}

// GetBool returns key parsed as bool, or defaultValue
func GetBool(key string, defaultValue bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	return val == "true" || val == "1" || val == "yes"
}

// splitString splits a comma-separated string into a slice
func splitString(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
