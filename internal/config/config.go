package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultHTTPAddr     = ":8080"
	defaultDatabaseURL  = "servicehub.db"
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultJWTTTL       = "168h"
	defaultCacheTTL     = "5m"
	defaultAMQPExchange = "servicehub.events"
	defaultLogLevel     = "info"
)

type Config struct {
	AppEnv             string
	HTTPAddr           string
	DatabaseURL        string
	JWTSecret          string
	JWTTTL             time.Duration
	RedisURL           string
	CacheTTL           time.Duration
	AMQPURL            string
	AMQPExchange       string
	LogLevel           string
	CORSAllowedOrigins []string
}

// Load reads configuration from the environment, after an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("HTTP_ADDR", defaultHTTPAddr)
	v.SetDefault("DATABASE_URL", defaultDatabaseURL)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_TTL", defaultJWTTTL)
	v.SetDefault("CACHE_TTL", defaultCacheTTL)
	v.SetDefault("AMQP_EXCHANGE", defaultAMQPExchange)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)

	cfg := &Config{
		AppEnv:       strings.ToLower(strings.TrimSpace(v.GetString("APP_ENV"))),
		HTTPAddr:     strings.TrimSpace(v.GetString("HTTP_ADDR")),
		DatabaseURL:  strings.TrimSpace(v.GetString("DATABASE_URL")),
		JWTSecret:    strings.TrimSpace(v.GetString("JWT_SECRET")),
		RedisURL:     strings.TrimSpace(v.GetString("REDIS_URL")),
		AMQPURL:      strings.TrimSpace(v.GetString("AMQP_URL")),
		AMQPExchange: strings.TrimSpace(v.GetString("AMQP_EXCHANGE")),
		LogLevel:     strings.TrimSpace(v.GetString("LOG_LEVEL")),
	}

	var err error
	if cfg.JWTTTL, err = parseDuration(v, "JWT_TTL"); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = parseDuration(v, "CACHE_TTL"); err != nil {
		return nil, err
	}

	for _, o := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProd reports whether the service runs in a production-like environment.
func (c *Config) IsProd() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be > 0")
	}
	if cfg.AMQPURL != "" && cfg.AMQPExchange == "" {
		return fmt.Errorf("AMQP_EXCHANGE must be set when AMQP_URL is set")
	}

	if isProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if !strings.HasPrefix(cfg.DatabaseURL, "postgres") {
			return fmt.Errorf("in prod/release DATABASE_URL must point to PostgreSQL")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDuration(v *viper.Viper, name string) (time.Duration, error) {
	value := strings.TrimSpace(v.GetString(name))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}
