// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package app

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/skursatToklucu/ozanparquet/internal/router"
)

// EnvPrefix prefixes every environment override, e.g. OZANPARQUET_SERVER_PORT.
const EnvPrefix = "OZANPARQUET"

// Config holds all application configuration
type Config struct {
	Server        ServerConfig        `mapstructure:"server" yaml:"server"`
	Database      DatabaseConfig      `mapstructure:"database" yaml:"database"`
	Redis         RedisConfig         `mapstructure:"redis" yaml:"redis"`
	Auth          AuthConfig          `mapstructure:"auth" yaml:"auth"`
	Logging       LoggingConfig       `mapstructure:"logging" yaml:"logging"`
	Observability ObservabilityConfig `mapstructure:"observability" yaml:"observability"`
	Catalog       CatalogConfig       `mapstructure:"catalog" yaml:"catalog"`
	RateLimit     RateLimitConfig     `mapstructure:"rate_limit" yaml:"rate_limit"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`

	// BasePath is the prefix the site is served under ("/" or "/shop/").
	BasePath string `mapstructure:"base_path" yaml:"base_path"`
	// PublicURL is the site's own origin, used to keep same-origin links
	// inside the page navigation.
	PublicURL string `mapstructure:"public_url" yaml:"public_url"`

	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	MaxRequestSize  string        `mapstructure:"max_request_size" yaml:"max_request_size"`

	TLSCertFile string `mapstructure:"tls_cert_file" yaml:"tls_cert_file"`
	TLSKeyFile  string `mapstructure:"tls_key_file" yaml:"tls_key_file"`

	// CORSOrigins may call /api/v1 from another origin.
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL             string        `mapstructure:"url" yaml:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time" yaml:"conn_max_idle_time"`
	QueryTimeout    time.Duration `mapstructure:"query_timeout" yaml:"query_timeout"`
	MigrateOnStart  bool          `mapstructure:"migrate_on_start" yaml:"migrate_on_start"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL          string        `mapstructure:"url" yaml:"url"`
	KeyPrefix    string        `mapstructure:"key_prefix" yaml:"key_prefix"`
	PoolSize     int           `mapstructure:"pool_size" yaml:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns" yaml:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout" yaml:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
}

// AuthConfig holds admin sign-in configuration.
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl" yaml:"token_ttl"`
	// SessionTTL is the lifetime of the server-side session record.
	SessionTTL time.Duration `mapstructure:"session_ttl" yaml:"session_ttl"`
	// CheckTimeout bounds the wait for the session check on admin pages.
	CheckTimeout   time.Duration `mapstructure:"check_timeout" yaml:"check_timeout"`
	CookieSecure   bool          `mapstructure:"cookie_secure" yaml:"cookie_secure"`
	CookieSameSite string        `mapstructure:"cookie_samesite" yaml:"cookie_samesite"`
	// BootstrapEmail, when set, creates the first admin account on an
	// empty database with a generated password.
	BootstrapEmail string `mapstructure:"bootstrap_email" yaml:"bootstrap_email"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// ObservabilityConfig holds metrics and tracing configuration.
type ObservabilityConfig struct {
	MetricsEnabled bool   `mapstructure:"metrics_enabled" yaml:"metrics_enabled"`
	MetricsPath    string `mapstructure:"metrics_path" yaml:"metrics_path"`

	TracingEnabled  bool    `mapstructure:"tracing_enabled" yaml:"tracing_enabled"`
	TracingEndpoint string  `mapstructure:"tracing_endpoint" yaml:"tracing_endpoint"`
	TracingInsecure bool    `mapstructure:"tracing_insecure" yaml:"tracing_insecure"`
	SampleRatio     float64 `mapstructure:"sample_ratio" yaml:"sample_ratio"`
}

// CatalogConfig tunes the public catalog.
type CatalogConfig struct {
	CacheSize int           `mapstructure:"cache_size" yaml:"cache_size"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
	// ViewFlushSchedule is the cron spec for moving buffered product views
	// into PostgreSQL.
	ViewFlushSchedule string `mapstructure:"view_flush_schedule" yaml:"view_flush_schedule"`
}

// RateLimitConfig holds per-IP request limits.
type RateLimitConfig struct {
	APIPerMinute         int           `mapstructure:"api_per_minute" yaml:"api_per_minute"`
	SubmissionsPerMinute int           `mapstructure:"submissions_per_minute" yaml:"submissions_per_minute"`
	FormRequests         int           `mapstructure:"form_requests" yaml:"form_requests"`
	FormWindow           time.Duration `mapstructure:"form_window" yaml:"form_window"`
}

// LoadConfig reads configuration from cfgFile (or the default search path),
// then the environment. A missing default file is not an error.
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/ozanparquet")
		v.AddConfigPath("$HOME/.ozanparquet")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Prefixed names win over the unprefixed ones container platforms set.
	_ = v.BindEnv("database.url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("redis.url", EnvPrefix+"_REDIS_URL", "REDIS_URL")
	_ = v.BindEnv("auth.jwt_secret", EnvPrefix+"_AUTH_JWT_SECRET", "JWT_SECRET")
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Server.BasePath = router.NewBasePath(cfg.Server.BasePath).String()

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_path", "/")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "15s")
	v.SetDefault("server.request_timeout", "30s")
	v.SetDefault("server.max_request_size", "1MB")

	// Database
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.conn_max_idle_time", "5m")
	v.SetDefault("database.query_timeout", "10s")
	v.SetDefault("database.migrate_on_start", true)

	// Redis
	v.SetDefault("redis.key_prefix", "ozanparquet:")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")

	// Auth
	v.SetDefault("auth.token_ttl", "12h")
	v.SetDefault("auth.session_ttl", "12h")
	v.SetDefault("auth.check_timeout", "2s")
	v.SetDefault("auth.cookie_secure", true)
	v.SetDefault("auth.cookie_samesite", "lax")

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")

	// Observability
	v.SetDefault("observability.metrics_enabled", true)
	v.SetDefault("observability.metrics_path", "/metrics")
	v.SetDefault("observability.tracing_enabled", false)
	v.SetDefault("observability.tracing_endpoint", "localhost:4318")
	v.SetDefault("observability.tracing_insecure", true)
	v.SetDefault("observability.sample_ratio", 1.0)

	// Catalog
	v.SetDefault("catalog.cache_size", 16)
	v.SetDefault("catalog.cache_ttl", "5m")
	v.SetDefault("catalog.view_flush_schedule", "@every 1m")

	// Rate limits
	v.SetDefault("rate_limit.api_per_minute", 100)
	v.SetDefault("rate_limit.submissions_per_minute", 10)
	v.SetDefault("rate_limit.form_requests", 20)
	v.SetDefault("rate_limit.form_window", "1m")
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Database.URL == "" {
		errs = append(errs, fmt.Errorf("database.url is required"))
	}
	if c.Redis.URL == "" {
		errs = append(errs, fmt.Errorf("redis.url is required"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, fmt.Errorf("auth.jwt_secret is required"))
	} else if len(c.Auth.JWTSecret) < 32 {
		errs = append(errs, fmt.Errorf("auth.jwt_secret must be at least 32 characters"))
	}

	errs = append(errs, c.validatePorts()...)
	errs = append(errs, c.validateDurations()...)
	errs = append(errs, c.validateEnums()...)
	errs = append(errs, c.validateRelationships()...)

	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return fmt.Errorf("config validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// validatePorts checks that port values are in the valid range.
func (c *Config) validatePorts() []error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return []error{fmt.Errorf("server.port: %d is not a valid port (1-65535)", c.Server.Port)}
	}
	return nil
}

// validateDurations checks that duration values are not negative.
func (c *Config) validateDurations() []error {
	var errs []error
	checkNonNegative := func(name string, d time.Duration) {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%s must be non-negative, got %s", name, d))
		}
	}
	checkNonNegative("server.read_timeout", c.Server.ReadTimeout)
	checkNonNegative("server.write_timeout", c.Server.WriteTimeout)
	checkNonNegative("server.idle_timeout", c.Server.IdleTimeout)
	checkNonNegative("server.shutdown_timeout", c.Server.ShutdownTimeout)
	checkNonNegative("server.request_timeout", c.Server.RequestTimeout)
	checkNonNegative("database.conn_max_lifetime", c.Database.ConnMaxLifetime)
	checkNonNegative("database.conn_max_idle_time", c.Database.ConnMaxIdleTime)
	checkNonNegative("database.query_timeout", c.Database.QueryTimeout)
	checkNonNegative("redis.dial_timeout", c.Redis.DialTimeout)
	checkNonNegative("redis.read_timeout", c.Redis.ReadTimeout)
	checkNonNegative("redis.write_timeout", c.Redis.WriteTimeout)
	checkNonNegative("auth.token_ttl", c.Auth.TokenTTL)
	checkNonNegative("auth.session_ttl", c.Auth.SessionTTL)
	checkNonNegative("auth.check_timeout", c.Auth.CheckTimeout)
	checkNonNegative("catalog.cache_ttl", c.Catalog.CacheTTL)
	checkNonNegative("rate_limit.form_window", c.RateLimit.FormWindow)
	return errs
}

// validateEnums checks that enum-like string fields have valid values.
func (c *Config) validateEnums() []error {
	var errs []error
	if c.Logging.Level != "" {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[strings.ToLower(c.Logging.Level)] {
			errs = append(errs, fmt.Errorf("logging.level: %q is not valid (debug, info, warn, error)", c.Logging.Level))
		}
	}
	if c.Logging.Format != "" {
		validFormats := map[string]bool{"json": true, "text": true, "console": true}
		if !validFormats[strings.ToLower(c.Logging.Format)] {
			errs = append(errs, fmt.Errorf("logging.format: %q is not valid (json, text, console)", c.Logging.Format))
		}
	}
	if c.Auth.CookieSameSite != "" {
		validSS := map[string]bool{"strict": true, "lax": true, "none": true}
		if !validSS[strings.ToLower(c.Auth.CookieSameSite)] {
			errs = append(errs, fmt.Errorf("auth.cookie_samesite: %q is not valid (strict, lax, none)", c.Auth.CookieSameSite))
		}
	}
	if c.Catalog.ViewFlushSchedule != "" {
		if _, err := cron.ParseStandard(c.Catalog.ViewFlushSchedule); err != nil {
			errs = append(errs, fmt.Errorf("catalog.view_flush_schedule: %w", err))
		}
	}
	if c.Server.PublicURL != "" {
		u, err := url.Parse(c.Server.PublicURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("server.public_url: %q must be an absolute URL", c.Server.PublicURL))
		}
	}
	return errs
}

// validateRelationships checks cross-field constraints.
func (c *Config) validateRelationships() []error {
	var errs []error
	if c.Database.MaxIdleConns > 0 && c.Database.MaxOpenConns > 0 && c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = append(errs, fmt.Errorf("database.max_idle_conns (%d) must not exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns))
	}
	if c.Redis.MinIdleConns > 0 && c.Redis.PoolSize > 0 && c.Redis.MinIdleConns > c.Redis.PoolSize {
		errs = append(errs, fmt.Errorf("redis.min_idle_conns (%d) must not exceed redis.pool_size (%d)",
			c.Redis.MinIdleConns, c.Redis.PoolSize))
	}
	if (c.Server.TLSCertFile == "") != (c.Server.TLSKeyFile == "") {
		errs = append(errs, fmt.Errorf("server.tls_cert_file and server.tls_key_file must be set together"))
	}
	if strings.EqualFold(c.Auth.CookieSameSite, "none") && !c.Auth.CookieSecure {
		errs = append(errs, fmt.Errorf("auth.cookie_samesite=none requires auth.cookie_secure"))
	}
	if c.Auth.SessionTTL > 0 && c.Auth.TokenTTL > 0 && c.Auth.SessionTTL > c.Auth.TokenTTL {
		errs = append(errs, fmt.Errorf("auth.session_ttl (%s) must not exceed auth.token_ttl (%s)",
			c.Auth.SessionTTL, c.Auth.TokenTTL))
	}
	if c.RateLimit.APIPerMinute < 0 || c.RateLimit.SubmissionsPerMinute < 0 || c.RateLimit.FormRequests < 0 {
		errs = append(errs, fmt.Errorf("rate_limit values must be non-negative"))
	}
	if c.Observability.SampleRatio < 0 || c.Observability.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("observability.sample_ratio must be between 0 and 1"))
	}
	return errs
}

// WriteMasked writes the configuration as YAML with secrets masked.
func (c *Config) WriteMasked(w io.Writer) error {
	masked := *c
	masked.Database.URL = maskURL(c.Database.URL)
	masked.Redis.URL = maskURL(c.Redis.URL)
	if c.Auth.JWTSecret != "" {
		masked.Auth.JWTSecret = "***"
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(masked); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// parseSameSite converts a config string ("strict", "lax", "none") to http.SameSite.
// Returns http.SameSiteLaxMode for unrecognized values.
func parseSameSite(s string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// parseSize parses a human-readable size string (e.g., "100MB", "1GB") to bytes.
// Returns defaultBytes if the string is empty or unparseable.
func parseSize(s string, defaultBytes int64) int64 {
	if s == "" {
		return defaultBytes
	}
	s = strings.TrimSpace(strings.ToUpper(s))
	multiplier := int64(1)
	switch {
	case strings.HasSuffix(s, "GB"):
		multiplier = 1024 * 1024 * 1024
		s = strings.TrimSuffix(s, "GB")
	case strings.HasSuffix(s, "MB"):
		multiplier = 1024 * 1024
		s = strings.TrimSuffix(s, "MB")
	case strings.HasSuffix(s, "KB"):
		multiplier = 1024
		s = strings.TrimSuffix(s, "KB")
	case strings.HasSuffix(s, "B"):
		s = strings.TrimSuffix(s, "B")
	}
	var n int64
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d", &n); err != nil || n <= 0 {
		return defaultBytes
	}
	return n * multiplier
}

// maskURL hides the password of a connection URL.
func maskURL(raw string) string {
	if raw == "" {
		return "<not set>"
	}
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
