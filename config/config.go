package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"skycast.app/errors"
)

// Config represents the application configuration structure
type Config struct {
	Server     ServerConfig    `split_words:"true"`
	Database   DatabaseConfig  `split_words:"true"`
	Weather    WeatherConfig   `split_words:"true"`
	Geocoder   GeocoderConfig  `split_words:"true"`
	Cache      CacheConfig     `split_words:"true"`
	Auth       AuthConfig      `split_words:"true"`
	Email      EmailConfig     `split_words:"true"`
	Storage    StorageConfig   `split_words:"true"`
	Scheduler  SchedulerConfig `split_words:"true"`
	AppBaseURL string          `envconfig:"APP_URL" default:"http://localhost:8080"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"skycast"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

// GetDSN returns a formatted database connection string
func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// WeatherConfig contains settings for the weather provider
type WeatherConfig struct {
	APIKey  string  `envconfig:"WEATHER_API_KEY" required:"true"`
	BaseURL string  `envconfig:"WEATHER_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	GeoURL  string  `envconfig:"WEATHER_GEO_URL" default:"https://api.openweathermap.org/geo/1.0"`
	RPS     float64 `envconfig:"WEATHER_RPS" default:"10"`
}

// GeocoderConfig contains settings for the fuzzy city-search geocoder
type GeocoderConfig struct {
	BaseURL string `envconfig:"GEOCODER_BASE_URL" default:"https://geocoding-api.open-meteo.com/v1"`
}

// CacheConfig contains settings for the weather bundle cache
type CacheConfig struct {
	Enabled   bool          `envconfig:"CACHE_ENABLED" default:"true"`
	TTL       time.Duration `envconfig:"CACHE_TTL" default:"10m"`
	RedisAddr string        `envconfig:"REDIS_ADDR" default:""`
	RedisDB   int           `envconfig:"REDIS_DB" default:"0"`
	RedisPass string        `envconfig:"REDIS_PASSWORD" default:""`
}

// AuthConfig contains session token settings
type AuthConfig struct {
	JWTSecret      string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL       time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"720h"`
	SecureCookies  bool          `envconfig:"AUTH_SECURE_COOKIES" default:"false"`
	GoogleClientID string        `envconfig:"GOOGLE_CLIENT_ID" default:""`
}

// EmailConfig contains email server and sending settings
type EmailConfig struct {
	SMTPHost     string `envconfig:"EMAIL_SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort     int    `envconfig:"EMAIL_SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"EMAIL_SMTP_USERNAME" required:"true"`
	SMTPPassword string `envconfig:"EMAIL_SMTP_PASSWORD" required:"true"`
	FromName     string `envconfig:"EMAIL_FROM_NAME" default:"SkyCast"`
	FromAddress  string `envconfig:"EMAIL_FROM_ADDRESS" default:"no-reply@skycast.app"`
}

// StorageConfig contains object storage settings for profile pictures
type StorageConfig struct {
	Endpoint  string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKey string `envconfig:"STORAGE_ACCESS_KEY" default:""`
	SecretKey string `envconfig:"STORAGE_SECRET_KEY" default:""`
	Bucket    string `envconfig:"STORAGE_BUCKET" default:"skycast-avatars"`
	UseSSL    bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
	PublicURL string `envconfig:"STORAGE_PUBLIC_URL" default:""`
}

// SchedulerConfig contains settings for the background cleanup job
type SchedulerConfig struct {
	ResetCleanupInterval int `envconfig:"RESET_CLEANUP_INTERVAL" default:"60"`
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Geocoder.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Email.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	if err := c.validateAppBaseURL(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAppBaseURL() error {
	if c.AppBaseURL == "" {
		return errors.NewConfigurationError("APP_URL cannot be empty", nil)
	}
	if !strings.HasPrefix(c.AppBaseURL, "http://") && !strings.HasPrefix(c.AppBaseURL, "https://") {
		return errors.NewConfigurationError("APP_URL must start with http:// or https://", nil)
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// ValidateSSLMode validates the SSL mode configuration
func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

// Validate checks database configuration
func (d *DatabaseConfig) Validate() error {
	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > 65535 {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	if err := d.ValidateSSLMode(); err != nil {
		return err
	}
	return nil
}

// Validate checks weather provider configuration
func (w *WeatherConfig) Validate() error {
	if w.APIKey == "" {
		return errors.NewConfigurationError("WEATHER_API_KEY is required", nil)
	}
	if w.BaseURL == "" {
		return errors.NewConfigurationError("WEATHER_BASE_URL cannot be empty", nil)
	}
	if !strings.HasPrefix(w.BaseURL, "http://") && !strings.HasPrefix(w.BaseURL, "https://") {
		return errors.NewConfigurationError("WEATHER_BASE_URL must start with http:// or https://", nil)
	}
	if w.GeoURL == "" {
		return errors.NewConfigurationError("WEATHER_GEO_URL cannot be empty", nil)
	}
	if w.RPS <= 0 {
		return errors.NewConfigurationError("WEATHER_RPS must be positive", nil)
	}
	return nil
}

// Validate checks geocoder configuration
func (g *GeocoderConfig) Validate() error {
	if g.BaseURL == "" {
		return errors.NewConfigurationError("GEOCODER_BASE_URL cannot be empty", nil)
	}
	if !strings.HasPrefix(g.BaseURL, "http://") && !strings.HasPrefix(g.BaseURL, "https://") {
		return errors.NewConfigurationError("GEOCODER_BASE_URL must start with http:// or https://", nil)
	}
	return nil
}

// Validate checks auth configuration
func (a *AuthConfig) Validate() error {
	if a.JWTSecret == "" {
		return errors.NewConfigurationError("JWT_SECRET is required", nil)
	}
	if len(a.JWTSecret) < 16 {
		return errors.NewConfigurationError("JWT_SECRET must be at least 16 characters", nil)
	}
	if a.TokenTTL < time.Minute {
		return errors.NewConfigurationError("AUTH_TOKEN_TTL must be at least 1 minute", nil)
	}
	return nil
}

// Validate checks email configuration
func (e *EmailConfig) Validate() error {
	if e.SMTPHost == "" {
		return errors.NewConfigurationError("EMAIL_SMTP_HOST cannot be empty", nil)
	}
	if e.SMTPPort < 1 || e.SMTPPort > 65535 {
		return errors.NewConfigurationError("EMAIL_SMTP_PORT must be between 1 and 65535", nil)
	}
	if e.SMTPUsername == "" {
		return errors.NewConfigurationError("EMAIL_SMTP_USERNAME is required", nil)
	}
	if e.SMTPPassword == "" {
		return errors.NewConfigurationError("EMAIL_SMTP_PASSWORD is required", nil)
	}
	if e.FromName == "" {
		return errors.NewConfigurationError("EMAIL_FROM_NAME cannot be empty", nil)
	}
	if e.FromAddress == "" {
		return errors.NewConfigurationError("EMAIL_FROM_ADDRESS cannot be empty", nil)
	}
	if !strings.Contains(e.FromAddress, "@") {
		return errors.NewConfigurationError("EMAIL_FROM_ADDRESS must be a valid email address", nil)
	}
	return nil
}

// Validate checks scheduler configuration
func (s *SchedulerConfig) Validate() error {
	if s.ResetCleanupInterval < 1 {
		return errors.NewConfigurationError("RESET_CLEANUP_INTERVAL must be at least 1 minute", nil)
	}
	if s.ResetCleanupInterval > 10080 {
		return errors.NewConfigurationError("RESET_CLEANUP_INTERVAL cannot exceed 10080 minutes (7 days)", nil)
	}
	return nil
}
