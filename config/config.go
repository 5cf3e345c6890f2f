package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	App      AppConfig
	Contact  ContactConfig
	Sitemap  SitemapConfig
	Firebase FirebaseConfig

	// Warnings collects problems that fell back to defaults. They are
	// logged once the logger exists.
	Warnings []string
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	// TrustedProxies are honored for X-Forwarded-For. Empty trusts none.
	TrustedProxies []string
}

// DatabaseConfig is disabled when neither DSN nor Host is set.
type DatabaseConfig struct {
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	Migrate  bool
}

// Enabled reports whether a database is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.DSN != "" || d.Host != ""
}

// RedisConfig is disabled when Addr is empty.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	SessionTTL time.Duration
}

type AppConfig struct {
	ServiceName string
	Environment string
	LogLevel    string
	Version     string
}

type ContactConfig struct {
	ForwardURL       string
	ForwardTimeout   time.Duration
	TokenURL         string
	ClientID         string
	ClientSecret     string
	Scopes           []string
	OutboundPerSec   float64
	InboundPerMinute float64
	InboundBurst     int
	RetentionDays    int
	CronSpec         string
	AdminAPIKey      string
}

// SitemapConfig enables publishing when S3Bucket is set.
type SitemapConfig struct {
	S3Bucket      string
	S3Region      string
	S3Prefix      string
	PublicBaseURL string
}

// FirebaseConfig enables token auth for admin routes when CredentialsPath is set.
type FirebaseConfig struct {
	CredentialsPath string
	ProjectID       string
	AdminClaim      string
}

func Load() (*Config, error) {
	var warnings []string
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		warnings = append(warnings, fmt.Sprintf("failed to load .env: %v", err))
	}

	l := &loader{}
	cfg := &Config{
		Server: ServerConfig{
			Port:            l.getEnv("PORT", "8080"),
			ReadTimeout:     l.getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    l.getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: l.getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CORSOrigins:     l.getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			TrustedProxies:  l.getEnvAsList("TRUSTED_PROXIES", nil),
		},
		Database: DatabaseConfig{
			DSN:      l.getEnv("DB_DSN", ""),
			Host:     l.getEnv("DB_HOST", ""),
			Port:     l.getEnvAsInt("DB_PORT", 5432),
			User:     l.getEnv("DB_USER", "postgres"),
			Password: l.getEnv("DB_PASSWORD", ""),
			Name:     l.getEnv("DB_NAME", "accessguide"),
			SSLMode:  l.getEnv("DB_SSLMODE", "disable"),
			MaxConns: l.getEnvAsInt("DB_MAX_CONNS", 10),
			Migrate:  l.getEnvAsBool("DB_MIGRATE", true),
		},
		Redis: RedisConfig{
			Addr:       l.getEnv("REDIS_ADDR", ""),
			Password:   l.getEnv("REDIS_PASSWORD", ""),
			DB:         l.getEnvAsInt("REDIS_DB", 0),
			SessionTTL: l.getEnvAsDuration("QUIZ_SESSION_TTL", 24*time.Hour),
		},
		App: AppConfig{
			ServiceName: l.getEnv("SERVICE_NAME", "accessguide-backend"),
			Environment: l.getEnv("APP_ENV", "development"),
			LogLevel:    l.getEnv("LOG_LEVEL", "info"),
			Version:     l.getEnv("APP_VERSION", "1.0.0"),
		},
		Contact: ContactConfig{
			ForwardURL:       l.getEnv("CONTACT_FORWARD_URL", ""),
			ForwardTimeout:   l.getEnvAsDuration("CONTACT_FORWARD_TIMEOUT", 10*time.Second),
			TokenURL:         l.getEnv("CONTACT_OAUTH_TOKEN_URL", ""),
			ClientID:         l.getEnv("CONTACT_OAUTH_CLIENT_ID", ""),
			ClientSecret:     l.getEnv("CONTACT_OAUTH_CLIENT_SECRET", ""),
			Scopes:           l.getEnvAsList("CONTACT_OAUTH_SCOPES", nil),
			OutboundPerSec:   l.getEnvAsFloat("CONTACT_FORWARD_RATE", 5),
			InboundPerMinute: l.getEnvAsFloat("CONTACT_RATE_PER_MINUTE", 5),
			InboundBurst:     l.getEnvAsInt("CONTACT_RATE_BURST", 3),
			RetentionDays:    l.getEnvAsInt("CONTACT_RETENTION_DAYS", 90),
			CronSpec:         l.getEnv("CONTACT_RETENTION_CRON", "0 0 3 * * *"),
			AdminAPIKey:      l.getEnv("ADMIN_API_KEY", ""),
		},
		Sitemap: SitemapConfig{
			S3Bucket:      l.getEnv("SITEMAP_S3_BUCKET", ""),
			S3Region:      l.getEnv("SITEMAP_S3_REGION", ""),
			S3Prefix:      l.getEnv("SITEMAP_S3_PREFIX", "sitemaps"),
			PublicBaseURL: l.getEnv("SITEMAP_PUBLIC_BASE_URL", ""),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: l.getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			ProjectID:       l.getEnv("FIREBASE_PROJECT_ID", ""),
			AdminClaim:      l.getEnv("FIREBASE_ADMIN_CLAIM", "admin"),
		},
	}

	cfg.Warnings = append(warnings, l.warnings...)
	if cfg.App.Environment != "production" && cfg.Firebase.CredentialsPath == "" && cfg.Contact.AdminAPIKey == "" {
		cfg.Warnings = append(cfg.Warnings, "no ADMIN_API_KEY or FIREBASE_CREDENTIALS_PATH; admin routes are disabled")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Server.Port)
	}
	if c.Contact.RetentionDays <= 0 {
		return fmt.Errorf("CONTACT_RETENTION_DAYS must be positive")
	}
	if c.Contact.TokenURL != "" && (c.Contact.ClientID == "" || c.Contact.ClientSecret == "") {
		return fmt.Errorf("CONTACT_OAUTH_CLIENT_ID and CONTACT_OAUTH_CLIENT_SECRET are required with CONTACT_OAUTH_TOKEN_URL")
	}
	if c.Sitemap.S3Bucket != "" && c.Sitemap.PublicBaseURL == "" && c.Sitemap.S3Region == "" {
		return fmt.Errorf("SITEMAP_S3_REGION or SITEMAP_PUBLIC_BASE_URL is required with SITEMAP_S3_BUCKET")
	}
	if c.App.Environment == "production" && c.Firebase.CredentialsPath == "" && c.Contact.AdminAPIKey == "" {
		return fmt.Errorf("ADMIN_API_KEY or FIREBASE_CREDENTIALS_PATH is required in production")
	}
	return nil
}

// DSNString returns the configured DSN, building one from parts when only
// DB_HOST is set.
func (d DatabaseConfig) DSNString() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// RetentionPeriod is CONTACT_RETENTION_DAYS as a duration.
func (c ContactConfig) RetentionPeriod() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

type loader struct {
	warnings []string
}

func (l *loader) warnf(format string, args ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func (l *loader) getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func (l *loader) getEnvAsInt(key string, defaultValue int) int {
	valueStr := l.getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		l.warnf("invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func (l *loader) getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := l.getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		l.warnf("invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func (l *loader) getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := l.getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		l.warnf("invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func (l *loader) getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := l.getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		l.warnf("invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func (l *loader) getEnvAsList(key string, defaultValue []string) []string {
	valueStr := l.getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
