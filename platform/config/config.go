// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides MongoDB connection settings.
type DatabaseConfig interface {
	GetMongoURL() string
	GetMongoDatabase() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// AuthServiceConfig provides settings needed by the auth service.
type AuthServiceConfig interface {
	JWTConfig
	GetJWTRefreshSecret() string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// TelemetryConfig provides settings for the SSE telemetry streamer.
type TelemetryConfig interface {
	GetTelemetryPollInterval() time.Duration
}

// RenderConfig provides settings consumed by the PDF renderer. The renderer
// receives this explicitly instead of reading process environment at render
// time, so one request cannot leak configuration into the next.
type RenderConfig interface {
	GetUploadsDir() string
	GetPublicDir() string
	GetFontsDir() string
	GetPhotosBaseURL() string
	GetPhotosHeaders() map[string]string
	IsPDFDebug() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env              string
	HTTPAddr         string
	MongoURL         string
	MongoDatabase    string
	JWTAccessSecret  string
	JWTRefreshSecret string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	CORSAllowAll     bool
	CORSOrigins      []string
	CORSAllowCreds   bool

	TelemetryPollInterval time.Duration

	UploadsDir    string
	PublicDir     string
	FontsDir      string
	PhotosBaseURL string
	PhotosHeaders map[string]string
	PDFDebug      bool
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetMongoURL() string      { return c.MongoURL }
func (c *Config) GetMongoDatabase() string { return c.MongoDatabase }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// AuthServiceConfig implementation
func (c *Config) GetJWTRefreshSecret() string       { return c.JWTRefreshSecret }
func (c *Config) GetAccessTokenTTL() time.Duration  { return c.AccessTokenTTL }
func (c *Config) GetRefreshTokenTTL() time.Duration { return c.RefreshTokenTTL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// TelemetryConfig implementation
func (c *Config) GetTelemetryPollInterval() time.Duration { return c.TelemetryPollInterval }

// RenderConfig implementation
func (c *Config) GetUploadsDir() string               { return c.UploadsDir }
func (c *Config) GetPublicDir() string                { return c.PublicDir }
func (c *Config) GetFontsDir() string                 { return c.FontsDir }
func (c *Config) GetPhotosBaseURL() string            { return c.PhotosBaseURL }
func (c *Config) GetPhotosHeaders() map[string]string { return c.PhotosHeaders }
func (c *Config) IsPDFDebug() bool                    { return c.PDFDebug }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		MongoURL:         getEnv("MONGO_URL", ""),
		MongoDatabase:    getEnv("MONGO_DB", "evmaint"),
		JWTAccessSecret:  getEnv("JWT_ACCESS_SECRET", ""),
		JWTRefreshSecret: getEnv("JWT_REFRESH_SECRET", ""),
		AccessTokenTTL:   mustDuration(getEnv("JWT_ACCESS_TTL", "15m")),
		RefreshTokenTTL:  mustDuration(getEnv("JWT_REFRESH_TTL", "720h")),
		CORSAllowAll:     corsAllowAll,
		CORSOrigins:      corsOrigins,
		CORSAllowCreds:   strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),

		TelemetryPollInterval: mustDuration(getEnv("TELEMETRY_POLL_INTERVAL", "2s")),

		UploadsDir:    getEnv("UPLOADS_DIR", "uploads"),
		PublicDir:     getEnv("PUBLIC_DIR", ""),
		FontsDir:      getEnv("FONTS_DIR", ""),
		PhotosBaseURL: firstNonEmpty(getEnv("PHOTOS_BASE_URL", ""), getEnv("APP_BASE_URL", "")),
		PhotosHeaders: parseHeaderPairs(getEnv("PHOTOS_HEADERS", "")),
		PDFDebug:      strings.EqualFold(getEnv("PDF_DEBUG", "false"), "true"),
	}

	if cfg.MongoURL == "" {
		return nil, fmt.Errorf("MONGO_URL is required")
	}
	if cfg.JWTAccessSecret == "" || cfg.JWTRefreshSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.TelemetryPollInterval <= 0 {
		return nil, fmt.Errorf("TELEMETRY_POLL_INTERVAL must be a positive duration")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// parseHeaderPairs parses pipe-separated "Key: Value" pairs, the format the
// photo HTTP fallback expects in PHOTOS_HEADERS.
func parseHeaderPairs(value string) map[string]string {
	headers := make(map[string]string)
	for _, pair := range strings.Split(value, "|") {
		key, val, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		if key != "" && val != "" {
			headers[key] = val
		}
	}
	return headers
}
