package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"
	_ "time/tzdata" // timezone database for minimal images

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the application.
// It includes the environment type, database configuration,
// listen addresses and presentation settings.
type Config struct {
	Env            string         `yaml:"env"`             // Env is the current environment: local, development, production.
	Database       PostgresConfig `yaml:"postgres"`        // Database holds the postgres database configuration
	HTTPAddr       string         `yaml:"http_addr"`       // HTTPAddr is the address the web application listens on.
	MonitoringPort int            `yaml:"monitoring_port"` // MonitoringPort serves /healthz and /metrics.
	DefaultLang    string         `yaml:"default_lang"`    // DefaultLang is used when the browser sends no supported language.
	Location       *time.Location `yaml:"timezone"`        // Location decides what "today" is for calendar fallbacks.
	AutoMigrate    bool           `yaml:"auto_migrate"`    // AutoMigrate creates missing tables on start.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
// URL takes precedence over the individual fields when set.
type PostgresConfig struct {
	URL      string `yaml:"url"`      // URL is a complete connection string.
	Host     string `yaml:"host"`     // Host is the database server address.
	Port     string `yaml:"port"`     // Port is the database server port.
	User     string `yaml:"user"`     // User is the database user.
	Password string `yaml:"password"` // Password is the database user's password.
	Name     string `yaml:"db_name"`  // Name is the name of the database.
}

// DSN returns the connection string for pgxpool.
func (p PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, p.Port),
		Path:     p.Name,
		RawQuery: "sslmode=disable",
	}
	return dsn.String()
}

// envBindings maps configuration keys to the environment variables that override them.
var envBindings = map[string]string{
	"env":               "SHIFTBOOK_ENV",
	"postgres.url":      "DATABASE_URL",
	"postgres.host":     "DB_HOST",
	"postgres.port":     "DB_PORT",
	"postgres.user":     "DB_USERNAME",
	"postgres.password": "DB_PASSWORD",
	"postgres.db_name":  "DB_NAME",
	"http_addr":         "HTTP_ADDR",
	"monitoring_port":   "MONITORING_PORT",
	"default_lang":      "DEFAULT_LANG",
	"timezone":          "TIMEZONE",
	"auto_migrate":      "AUTO_MIGRATE",
}

// ErrNoDatabase is returned when neither a connection string nor a database host is configured.
var ErrNoDatabase = errors.New("database is not configured: set DATABASE_URL or DB_HOST")

// Load reads the configuration. Values come, in increasing priority, from
// defaults, the YAML file named by CONFIG_PATH (optional), a .env file and
// the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("env", "production")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("monitoring_port", 9090) //nolint:mnd // default monitoring port
	v.SetDefault("default_lang", "ja")
	v.SetDefault("timezone", "Local")
	v.SetDefault("auto_migrate", false)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", configPath)
		}
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
	}

	location, err := time.LoadLocation(v.GetString("timezone"))
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}

	cfg := &Config{
		Env: v.GetString("env"),
		Database: PostgresConfig{
			URL:      v.GetString("postgres.url"),
			Host:     v.GetString("postgres.host"),
			Port:     v.GetString("postgres.port"),
			User:     v.GetString("postgres.user"),
			Password: v.GetString("postgres.password"),
			Name:     v.GetString("postgres.db_name"),
		},
		HTTPAddr:       v.GetString("http_addr"),
		MonitoringPort: v.GetInt("monitoring_port"),
		DefaultLang:    v.GetString("default_lang"),
		Location:       location,
		AutoMigrate:    v.GetBool("auto_migrate"),
	}

	if cfg.Database.URL == "" && cfg.Database.Host == "" {
		return nil, ErrNoDatabase
	}

	return cfg, nil
}
