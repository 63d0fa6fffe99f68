package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Checkpoint backends
const (
	CheckpointPostgres = "postgres"
	CheckpointRedis    = "redis"
	CheckpointNone     = "none"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	// Database is the normalized target store.
	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	// Legacy is the MySQL database holding studentpersonaldetails.
	Legacy struct {
		Host         string `yaml:"host" env:"LEGACY_DB_HOST"`
		Port         string `yaml:"port" env:"LEGACY_DB_PORT"`
		User         string `yaml:"user" env:"LEGACY_DB_USER"`
		Password     string `yaml:"password" env:"LEGACY_DB_PASSWORD"`
		DBName       string `yaml:"dbname" env:"LEGACY_DB_NAME"`
		Table        string `yaml:"table" env:"LEGACY_TABLE"`
		MaxOpenConns int    `yaml:"max_open_conns" env:"LEGACY_DB_MAX_OPEN_CONNS"`
	} `yaml:"legacy"`

	Migration struct {
		BatchSize   int           `yaml:"batch_size" env:"MIGRATION_BATCH_SIZE"`
		Concurrency int           `yaml:"concurrency" env:"MIGRATION_CONCURRENCY"`
		RowTimeout  time.Duration `yaml:"row_timeout" env:"MIGRATION_ROW_TIMEOUT"`
		EmailDomain string        `yaml:"email_domain" env:"MIGRATION_EMAIL_DOMAIN"`
		Checkpoint  string        `yaml:"checkpoint" env:"MIGRATION_CHECKPOINT"`
		BcryptCost  int           `yaml:"bcrypt_cost" env:"MIGRATION_BCRYPT_COST"`
		StorageDir  string        `yaml:"storage_dir" env:"MIGRATION_STORAGE_DIR"`
	} `yaml:"migration"`

	Redis struct {
		Addr      string `yaml:"addr" env:"REDIS_ADDR"`
		Password  string `yaml:"password" env:"REDIS_PASSWORD"`
		DB        int    `yaml:"db" env:"REDIS_DB"`
		KeyPrefix string `yaml:"key_prefix" env:"REDIS_KEY_PREFIX"`
	} `yaml:"redis"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file, an optional .env file and
// environment variables, in increasing order of precedence.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := processStructFields(config, os.LookupEnv); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "academic_erp"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.Legacy.Host = "localhost"
	config.Legacy.Port = "3306"
	config.Legacy.User = "root"
	config.Legacy.DBName = "legacy"
	config.Legacy.Table = "studentpersonaldetails"
	config.Legacy.MaxOpenConns = 4

	config.Migration.BatchSize = 500
	config.Migration.Concurrency = 1
	config.Migration.RowTimeout = 30 * time.Second
	config.Migration.EmailDomain = "thebges.edu.in"
	config.Migration.Checkpoint = CheckpointPostgres
	config.Migration.BcryptCost = 10
	config.Migration.StorageDir = "storage"

	config.Redis.Addr = "localhost:6379"
	config.Redis.KeyPrefix = "erp:migration"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if config.Legacy.Host == "" {
		return fmt.Errorf("legacy database host is required")
	}
	if config.Legacy.Table == "" {
		return fmt.Errorf("legacy table is required")
	}
	if config.Migration.BatchSize <= 0 {
		return fmt.Errorf("migration batch size must be positive, got %d", config.Migration.BatchSize)
	}
	if config.Migration.Concurrency <= 0 {
		return fmt.Errorf("migration concurrency must be positive, got %d", config.Migration.Concurrency)
	}
	if config.Migration.RowTimeout < 0 {
		return fmt.Errorf("migration row timeout cannot be negative")
	}
	if strings.TrimSpace(config.Migration.EmailDomain) == "" {
		return fmt.Errorf("migration email domain is required")
	}
	switch config.Migration.Checkpoint {
	case CheckpointPostgres, CheckpointNone:
	case CheckpointRedis:
		if config.Redis.Addr == "" {
			return fmt.Errorf("redis address is required for the redis checkpoint backend")
		}
	default:
		return fmt.Errorf("unknown checkpoint backend %q", config.Migration.Checkpoint)
	}
	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid connection max lifetime: %w", err)
	}
	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		url.QueryEscape(c.Database.User),
		url.QueryEscape(c.Database.Password),
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// GetLegacyDSN returns the go-sql-driver/mysql DSN for the legacy database.
// Dates are left as text (no parseTime) because the legacy tables hold zero
// dates and free-form strings in date columns.
func (c *Config) GetLegacyDSN() string {
	cfg := mysql.NewConfig()
	cfg.User = c.Legacy.User
	cfg.Passwd = c.Legacy.Password
	cfg.Net = "tcp"
	cfg.Addr = c.Legacy.Host + ":" + c.Legacy.Port
	cfg.DBName = c.Legacy.DBName
	cfg.ParseTime = false
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}
