package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL"`

	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Hash     HashConfig
	Metrics  MetricsConfig
	AMQP     AMQPConfig
}

type ServerConfig struct {
	Port         string        `envconfig:"SERVER_PORT" default:"3939"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout  time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"60s"`
}

type DatabaseConfig struct {
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            int           `envconfig:"DB_PORT" default:"3306"`
	User            string        `envconfig:"DB_USER" default:"root"`
	Password        string        `envconfig:"DB_PASSWORD"`
	Name            string        `envconfig:"DB_NAME" default:"test-db2"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	AutoMigrate     bool          `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type SessionConfig struct {
	CookieName string        `envconfig:"SESSION_COOKIE_NAME" default:"dashboard_sid"`
	Secure     bool          `envconfig:"SESSION_COOKIE_SECURE" default:"false"`
	MaxAge     time.Duration `envconfig:"SESSION_MAX_AGE" default:"24h"`
	FlashTTL   time.Duration `envconfig:"SESSION_FLASH_TTL" default:"5m"`
}

type HashConfig struct {
	// bcrypt cost, out of range values fall back to bcrypt.DefaultCost
	Cost int `envconfig:"HASH_COST" default:"10"`
}

type MetricsConfig struct {
	// empty token leaves /metrics open
	Token string `envconfig:"METRICS_TOKEN"`
}

type AMQPConfig struct {
	Host     string `envconfig:"AMQP_HOST"`
	Port     int    `envconfig:"AMQP_PORT" default:"5672"`
	User     string `envconfig:"AMQP_USER" default:"guest"`
	Password string `envconfig:"AMQP_PASSWORD" default:"guest"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// .env is optional, real environment variables win
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// GetDSN returns the MySQL data source name for the configured database.
func (c *Config) GetDSN() string {
	dsn := mysql.NewConfig()
	dsn.User = c.Database.User
	dsn.Passwd = c.Database.Password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(c.Database.Host, strconv.Itoa(c.Database.Port))
	dsn.DBName = c.Database.Name
	dsn.ParseTime = true
	// rows matched rather than rows changed, so an unchanged update is not "not found"
	dsn.ClientFoundRows = true
	return dsn.FormatDSN()
}

// EventsEnabled reports whether a broker is configured.
func (c *Config) EventsEnabled() bool {
	return c.AMQP.Host != ""
}
