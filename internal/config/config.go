// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// ServerConfig holds all server-related settings
type ServerConfig struct {
	Port            int
	Host            string
	MetricsEnabled  bool
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database configuration settings
type DatabaseConfig struct {
	Driver          string // "postgres" or "sqlite3"
	URI             string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

// FeedConfig holds settings for the outbound Reddit feed client
type FeedConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	BoardTTL  time.Duration
}

// Config holds the complete application configuration
type Config struct {
	Server         *ServerConfig
	Database       *DatabaseConfig
	Feed           *FeedConfig
	AllowedOrigins []string
	Debug          bool
	LogLevel       string
	LogFormat      string

	// HideStoreErrors keeps driver messages out of store error responses.
	HideStoreErrors bool
}

// DefaultConfig provides default server settings
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Port:            8080,
		Host:            "0.0.0.0",
		MetricsEnabled:  true,
		ShutdownTimeout: 10 * time.Second,
	}
}

// DefaultDatabaseConfig provides default database settings
func DefaultDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Driver:          "postgres",
		Host:            "localhost",
		Port:            5432,
		Name:            "postgres",
		SSLMode:         "require",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		AutoMigrate:     true,
	}
}

// DefaultFeedConfig provides default feed client settings
func DefaultFeedConfig() *FeedConfig {
	return &FeedConfig{
		BaseURL:   "https://www.reddit.com",
		Timeout:   10 * time.Second,
		UserAgent: "gator-threads/1.0",
		BoardTTL:  10 * time.Minute,
	}
}

// LoadConfig loads configuration from a .env file and environment variables
// and applies defaults.
func LoadConfig() (*Config, error) {
	loadDotEnv()

	v := viper.New()
	v.AutomaticEnv()
	SetDefaults(v)
	return Load(v)
}

// loadDotEnv tries the usual .env locations. Variables already present in the
// environment are never overwritten.
func loadDotEnv() {
	envLocations := []string{
		".env",          // Current directory
		"../../.env",    // Project root when running from cmd/api
		"../../../.env", // Even higher directory
		filepath.Join(os.Getenv("GOPATH"), "src/gator-threads/.env"),
	}

	for _, location := range envLocations {
		if err := godotenv.Load(location); err == nil {
			logrus.WithField("path", location).Debug("loaded environment file")
			return
		}
	}
}

// SetDefaults registers every key with its default so AutomaticEnv can
// resolve it.
func SetDefaults(v *viper.Viper) {
	server := DefaultConfig()
	v.SetDefault("host", server.Host)
	v.SetDefault("port", server.Port)
	v.SetDefault("metrics_enabled", server.MetricsEnabled)
	v.SetDefault("shutdown_timeout", server.ShutdownTimeout)

	db := DefaultDatabaseConfig()
	v.SetDefault("db_driver", db.Driver)
	v.SetDefault("database_url", "")
	v.SetDefault("db_host", db.Host)
	v.SetDefault("db_port", db.Port)
	v.SetDefault("db_user", "")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", db.Name)
	v.SetDefault("db_ssl_mode", db.SSLMode)
	v.SetDefault("db_max_open_conns", db.MaxOpenConns)
	v.SetDefault("db_max_idle_conns", db.MaxIdleConns)
	v.SetDefault("db_conn_max_lifetime", db.ConnMaxLifetime)
	v.SetDefault("db_auto_migrate", db.AutoMigrate)

	feed := DefaultFeedConfig()
	v.SetDefault("feed_base_url", feed.BaseURL)
	v.SetDefault("feed_timeout", feed.Timeout)
	v.SetDefault("feed_user_agent", feed.UserAgent)
	v.SetDefault("feed_board_ttl", feed.BoardTTL)

	v.SetDefault("allowed_origins", "*")
	v.SetDefault("debug", false)
	v.SetDefault("hide_store_errors", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// Load builds a Config from an already populated viper instance.
func Load(v *viper.Viper) (*Config, error) {
	serverConfig := &ServerConfig{
		Port:            v.GetInt("port"),
		Host:            v.GetString("host"),
		MetricsEnabled:  v.GetBool("metrics_enabled"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
	}

	dbConfig, err := loadDatabaseConfig(v)
	if err != nil {
		return nil, err
	}

	feedConfig := &FeedConfig{
		BaseURL:   strings.TrimRight(v.GetString("feed_base_url"), "/"),
		Timeout:   v.GetDuration("feed_timeout"),
		UserAgent: v.GetString("feed_user_agent"),
		BoardTTL:  v.GetDuration("feed_board_ttl"),
	}

	config := &Config{
		Server:         serverConfig,
		Database:       dbConfig,
		Feed:           feedConfig,
		AllowedOrigins: splitList(v.GetString("allowed_origins")),
		Debug:          v.GetBool("debug"),
		LogLevel:       v.GetString("log_level"),
		LogFormat:      v.GetString("log_format"),

		HideStoreErrors: v.GetBool("hide_store_errors"),
	}
	if len(config.AllowedOrigins) == 0 {
		config.AllowedOrigins = []string{"*"}
	}

	return config, nil
}

func loadDatabaseConfig(v *viper.Viper) (*DatabaseConfig, error) {
	dbConfig := &DatabaseConfig{
		Driver:          v.GetString("db_driver"),
		URI:             v.GetString("database_url"),
		Host:            v.GetString("db_host"),
		Port:            v.GetInt("db_port"),
		User:            v.GetString("db_user"),
		Password:        v.GetString("db_password"),
		Name:            v.GetString("db_name"),
		SSLMode:         v.GetString("db_ssl_mode"),
		MaxOpenConns:    v.GetInt("db_max_open_conns"),
		MaxIdleConns:    v.GetInt("db_max_idle_conns"),
		ConnMaxLifetime: v.GetDuration("db_conn_max_lifetime"),
		AutoMigrate:     v.GetBool("db_auto_migrate"),
	}

	switch dbConfig.Driver {
	case "postgres":
		// Prioritize DATABASE_URL if provided
		if dbConfig.URI != "" {
			dbConfig.SSLMode = getSSLModeFromURI(dbConfig.URI)
			return dbConfig, nil
		}

		if dbConfig.User == "" {
			return nil, fmt.Errorf("DB_USER environment variable is required when DB_DRIVER is postgres and DATABASE_URL is not set")
		}
		if dbConfig.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD environment variable is required when DB_DRIVER is postgres and DATABASE_URL is not set")
		}

		dsn := url.URL{
			Scheme:   "postgresql",
			User:     url.UserPassword(dbConfig.User, dbConfig.Password),
			Host:     fmt.Sprintf("%s:%d", dbConfig.Host, dbConfig.Port),
			Path:     "/" + dbConfig.Name,
			RawQuery: url.Values{"sslmode": []string{dbConfig.SSLMode}}.Encode(),
		}
		dbConfig.URI = dsn.String()

	case "sqlite3":
		if dbConfig.URI == "" {
			dbConfig.URI = "gator-threads.db"
		}
		// SQLite serializes writers; one connection avoids SQLITE_BUSY under load.
		dbConfig.MaxOpenConns = 1
		dbConfig.MaxIdleConns = 1

	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q: use postgres or sqlite3", dbConfig.Driver)
	}

	return dbConfig, nil
}

// Helper function to extract sslmode from a DSN, defaults to "require"
func getSSLModeFromURI(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "require"
	}
	if mode := parsed.Query().Get("sslmode"); mode != "" {
		return mode
	}
	return "require"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
