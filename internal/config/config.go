package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the runtime configuration of the API server, the worker and the CLI.
type Config struct {
	Port        string
	AppURL      string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	RedisAddr         string
	AlertsWorker      bool
	AlertsConcurrency int

	PlunkAPIKey string
	PlunkFrom   string
	PlunkAPIURL string

	GoogleMapsAPIKey string

	SentryDSN         string
	SentryEnvironment string

	LogLevel       string
	LogDevelopment bool
}

var (
	ErrMissingDatabaseURL = errors.New("database.url is required (STRINGR_DATABASE_URL)")
	ErrMissingJWTSecret   = errors.New("jwt.secret is required (STRINGR_JWT_SECRET)")
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "8080")
	v.SetDefault("app.url", "http://localhost:3000")
	v.SetDefault("jwt.ttl", "72h")
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("alerts.worker", true)
	v.SetDefault("alerts.concurrency", 5)
	v.SetDefault("plunk.api_url", "https://api.useplunk.com/v1/send")
	v.SetDefault("sentry.environment", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// Load reads .env (if present), an optional yaml config file and STRINGR_*
// environment variables, in increasing order of precedence.
func Load(file string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	v.SetEnvPrefix("stringr")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:              v.GetString("http.port"),
		AppURL:            strings.TrimRight(v.GetString("app.url"), "/"),
		DatabaseURL:       v.GetString("database.url"),
		JWTSecret:         v.GetString("jwt.secret"),
		JWTTTL:            v.GetDuration("jwt.ttl"),
		RedisAddr:         v.GetString("redis.addr"),
		AlertsWorker:      v.GetBool("alerts.worker"),
		AlertsConcurrency: v.GetInt("alerts.concurrency"),
		PlunkAPIKey:       v.GetString("plunk.api_key"),
		PlunkFrom:         v.GetString("plunk.from"),
		PlunkAPIURL:       v.GetString("plunk.api_url"),
		GoogleMapsAPIKey:  v.GetString("google.maps_api_key"),
		SentryDSN:         v.GetString("sentry.dsn"),
		SentryEnvironment: v.GetString("sentry.environment"),
		LogLevel:          v.GetString("log.level"),
		LogDevelopment:    v.GetBool("log.development"),
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	if cfg.JWTTTL <= 0 {
		cfg.JWTTTL = 72 * time.Hour
	}
	if cfg.AlertsConcurrency <= 0 {
		cfg.AlertsConcurrency = 1
	}
	return cfg, nil
}
