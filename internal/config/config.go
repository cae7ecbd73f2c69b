package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v8"
)

type Config struct {
	// HTTP server
	Port     string `env:"PORT" envDefault:"3000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Persistence
	DataBackend  string `env:"DATA_BACKEND" envDefault:"json"`
	DataFile     string `env:"DATA_FILE" envDefault:"data.json"`
	SQLiteDBPath string `env:"SQLITE_DB_PATH" envDefault:"./data/finance.db"`

	// Static site
	SiteDir string `env:"SITE_DIR" envDefault:"dist"`

	// AMQP (eventing disabled when URL is empty)
	AMQPURL      string `env:"AMQP_URL"`
	AMQPExchange string `env:"AMQP_EXCHANGE" envDefault:"finance"`
	AMQPQueue    string `env:"AMQP_QUEUE" envDefault:"entry_events"`

	// Weather widget
	WeatherBaseURL   string        `env:"WEATHER_BASE_URL" envDefault:"https://api.open-meteo.com/v1/forecast"`
	WeatherLatitude  float64       `env:"WEATHER_LATITUDE" envDefault:"61.2181"`
	WeatherLongitude float64       `env:"WEATHER_LONGITUDE" envDefault:"-149.9003"`
	WeatherCacheTTL  time.Duration `env:"WEATHER_CACHE_TTL" envDefault:"30m"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	switch c.DataBackend {
	case "json":
		if c.DataFile == "" {
			errors = append(errors, "data file path cannot be empty when using json backend")
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of [json sqlite]", c.DataBackend))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.WeatherLatitude < -90 || c.WeatherLatitude > 90 {
		errors = append(errors, fmt.Sprintf("invalid latitude %v: must be between -90 and 90", c.WeatherLatitude))
	}
	if c.WeatherLongitude < -180 || c.WeatherLongitude > 180 {
		errors = append(errors, fmt.Sprintf("invalid longitude %v: must be between -180 and 180", c.WeatherLongitude))
	}
	if c.WeatherCacheTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid weather cache TTL %v: must be at least 1 minute", c.WeatherCacheTTL))
	} else if c.WeatherCacheTTL > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid weather cache TTL %v: must be at most 24 hours", c.WeatherCacheTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// SlogLevel maps the configured level name onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Addr returns the listen address; the bind address is all interfaces.
func (c *Config) Addr() string {
	return ":" + c.Port
}
