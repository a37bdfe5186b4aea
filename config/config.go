// Package config loads runtime settings and opens the clients they describe.
//
// Settings are layered: built-in defaults, then an optional YAML file, then
// variables from a .env file, then the process environment. Later layers win.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Flash    FlashConfig    `yaml:"flash"`
	Redis    RedisConfig    `yaml:"redis"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CookieSecret    string        `yaml:"cookie_secret"`
	SecureCookies   bool          `yaml:"secure_cookies"`
}

type DatabaseConfig struct {
	Driver          string        `yaml:"driver"`
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"sslmode"`
	DSN             string        `yaml:"dsn"`
	AutoMigrate     bool          `yaml:"auto_migrate"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	SlowThreshold   time.Duration `yaml:"slow_threshold"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type FlashConfig struct {
	Store  string        `yaml:"store"`
	Prefix string        `yaml:"prefix"`
	TTL    time.Duration `yaml:"ttl"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

type RabbitMQConfig struct {
	URL string `yaml:"url"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	FlashCookie = "cookie"
	FlashRedis  = "redis"

	DevCookieSecret = "fyyur-development-cookie-secret"
)

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ShutdownTimeout: 15 * time.Second,
			CookieSecret:    DevCookieSecret,
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Host:            "localhost",
			Port:            "5432",
			User:            "postgres",
			Name:            "fyyur",
			SSLMode:         "disable",
			AutoMigrate:     true,
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			SlowThreshold:   200 * time.Millisecond,
		},
		Log:   LogConfig{Level: "info"},
		Flash: FlashConfig{Store: FlashCookie, Prefix: "fyyur:flash", TTL: 10 * time.Minute},
		Redis: RedisConfig{Addr: "localhost:6379"},
	}
}

// Load builds the configuration from path (optional) and the environment.
// A missing .env file is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Server.Port = envStr("PORT", c.Server.Port)
	c.Server.CookieSecret = envStr("COOKIE_SECRET", c.Server.CookieSecret)
	c.Server.SecureCookies = envBool("SECURE_COOKIES", c.Server.SecureCookies)

	d := &c.Database
	d.Driver = strings.ToLower(envStr("DB_DRIVER", d.Driver))
	d.Host = envStr("DB_HOST", d.Host)
	d.Port = envStr("DB_PORT", d.Port)
	d.User = envStr("DB_USER", d.User)
	d.Password = envStr("DB_PASSWORD", d.Password)
	d.Name = envStr("DB_NAME", d.Name)
	d.SSLMode = envStr("DB_SSLMODE", d.SSLMode)
	d.DSN = envStr("DB_DSN", d.DSN)
	d.AutoMigrate = envBool("DB_AUTO_MIGRATE", d.AutoMigrate)

	c.Log.Level = strings.ToLower(envStr("LOG_LEVEL", c.Log.Level))
	c.Flash.Store = strings.ToLower(envStr("FLASH_STORE", c.Flash.Store))

	if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
		c.Redis.Addr = host + ":" + port
	}
	c.Redis.Addr = envStr("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = envStr("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.TLS = envBool("REDIS_TLS", c.Redis.TLS)

	c.RabbitMQ.URL = envStr("RABBITMQ_URL", envStr("AMQP_URL", c.RabbitMQ.URL))

	var err error
	if c.Server.ShutdownTimeout, err = envDur("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout); err != nil {
		return err
	}
	if c.Flash.TTL, err = envDur("FLASH_TTL", c.Flash.TTL); err != nil {
		return err
	}
	if d.MaxOpenConns, err = envInt("DB_MAX_OPEN_CONNS", d.MaxOpenConns); err != nil {
		return err
	}
	if d.MaxIdleConns, err = envInt("DB_MAX_IDLE_CONNS", d.MaxIdleConns); err != nil {
		return err
	}
	if c.Redis.DB, err = envInt("REDIS_DB", c.Redis.DB); err != nil {
		return err
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error

	if n, err := strconv.Atoi(c.Server.Port); err != nil || n <= 0 || n > 65535 {
		errs = append(errs, fmt.Errorf("server.port %q is not a valid port", c.Server.Port))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.DSN == "" && (c.Database.Host == "" || c.Database.Name == "") {
			errs = append(errs, errors.New("database.host and database.name are required for postgres"))
		}
	case DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("database.driver %q must be %q or %q", c.Database.Driver, DriverPostgres, DriverSQLite))
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		errs = append(errs, errors.New("database pool sizes must not be negative"))
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	switch c.Flash.Store {
	case FlashCookie:
		if c.Server.CookieSecret == "" {
			errs = append(errs, errors.New("server.cookie_secret is required for the cookie flash store"))
		}
	case FlashRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("redis.addr is required for the redis flash store"))
		}
	default:
		errs = append(errs, fmt.Errorf("flash.store %q must be %q or %q", c.Flash.Store, FlashCookie, FlashRedis))
	}

	return errors.Join(errs...)
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	switch strings.ToLower(os.Getenv(k)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return d, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return d, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}

func envDur(k string, d time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return d, nil
	}
	dur, err := time.ParseDuration(v)
	if err != nil {
		return d, fmt.Errorf("%s: %w", k, err)
	}
	return dur, nil
}
