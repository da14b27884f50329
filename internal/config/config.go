package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Provider exposes read-only access to application configuration. Handlers
// and services depend on this interface so tests can substitute their own
// values without touching the process environment.
type Provider interface {
	GetAppBaseURL() string
	GetSessionSecret() string

	GetDBUrl() string
	GetDBNs() string
	GetDBDb() string
	GetDBUser() string
	GetDBPass() string
	GetDBQueryTimeout() time.Duration

	GetEmailProvider() string
	GetEmailAPIKey() string
	GetEmailSender() string

	GetStorageRoot() string
	GetMaxUploadBytes() int64
	GetAllowedUploadTypes() []string

	GetRatesPrimaryURL() string
	GetRatesFallbackURL() string
}

// Config holds all configuration for the application, loaded from the
// environment. It implements Provider.
type Config struct {
	AppBaseURL    string
	SessionSecret string

	DBUrl          string
	DBNs           string
	DBDb           string
	DBUser         string
	DBPass         string
	DBQueryTimeout time.Duration

	EmailProvider string
	EmailAPIKey   string
	EmailSender   string

	StorageRoot        string
	MaxUploadBytes     int64
	AllowedUploadTypes []string

	RatesPrimaryURL  string
	RatesFallbackURL string
}

// New loads configuration from environment variables.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		AppBaseURL:    getEnv("APP_BASE_URL", "http://localhost:8080"),
		SessionSecret: os.Getenv("SESSION_SECRET"),

		DBUrl:          os.Getenv("SURREAL_URL"),
		DBUser:         os.Getenv("SURREAL_USER"),
		DBPass:         os.Getenv("SURREAL_PASS"),
		DBNs:           os.Getenv("SURREAL_NS"),
		DBDb:           os.Getenv("SURREAL_DB"),
		DBQueryTimeout: getDuration("DB_QUERY_TIMEOUT", 5*time.Second),

		EmailProvider: getEnv("EMAIL_PROVIDER", "log"),
		EmailAPIKey:   os.Getenv("EMAIL_API_KEY"),
		EmailSender:   os.Getenv("EMAIL_SENDER"),

		StorageRoot:        getEnv("STORAGE_ROOT", "data/storage"),
		MaxUploadBytes:     getInt64("MAX_UPLOAD_BYTES", 5*1024*1024),
		AllowedUploadTypes: getList("ALLOWED_UPLOAD_TYPES", []string{"image/jpeg", "image/png", "image/gif", "application/pdf"}),

		RatesPrimaryURL:  getEnv("RATES_PRIMARY_URL", "https://cdn.jsdelivr.net/npm/@fawazahmed0/currency-api@latest/v1/currencies"),
		RatesFallbackURL: getEnv("RATES_FALLBACK_URL", "https://latest.currency-api.pages.dev/v1/currencies"),
	}

	if cfg.DBUrl == "" || cfg.DBNs == "" || cfg.DBDb == "" {
		log.Fatal("Required environment variables SURREAL_URL, SURREAL_NS, or SURREAL_DB are not set.")
	}
	if cfg.SessionSecret == "" {
		log.Fatal("Required environment variable SESSION_SECRET is not set.")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid duration for %s: %q, using default %s", key, v, fallback)
		return fallback
	}
	return d
}

func getInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("Invalid integer for %s: %q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func getList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) GetAppBaseURL() string            { return c.AppBaseURL }
func (c *Config) GetSessionSecret() string         { return c.SessionSecret }
func (c *Config) GetDBUrl() string                 { return c.DBUrl }
func (c *Config) GetDBNs() string                  { return c.DBNs }
func (c *Config) GetDBDb() string                  { return c.DBDb }
func (c *Config) GetDBUser() string                { return c.DBUser }
func (c *Config) GetDBPass() string                { return c.DBPass }
func (c *Config) GetDBQueryTimeout() time.Duration { return c.DBQueryTimeout }
func (c *Config) GetEmailProvider() string         { return c.EmailProvider }
func (c *Config) GetEmailAPIKey() string           { return c.EmailAPIKey }
func (c *Config) GetEmailSender() string           { return c.EmailSender }
func (c *Config) GetStorageRoot() string           { return c.StorageRoot }
func (c *Config) GetMaxUploadBytes() int64         { return c.MaxUploadBytes }
func (c *Config) GetAllowedUploadTypes() []string  { return c.AllowedUploadTypes }
func (c *Config) GetRatesPrimaryURL() string       { return c.RatesPrimaryURL }
func (c *Config) GetRatesFallbackURL() string      { return c.RatesFallbackURL }
