package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Значения по умолчанию
const (
	DefaultHTTPPort        = 8080
	DefaultReadTimeout     = 15
	DefaultWriteTimeout    = 15
	DefaultIdleTimeout     = 60
	DefaultShutdownTimeout = 10

	DefaultDriver          = DriverPostgres
	DefaultMaxOpenConns    = 25
	DefaultMaxIdleConns    = 5
	DefaultConnMaxLifetime = 300

	DefaultLogLevel = "info"

	DefaultMetricsPath        = "/metrics"
	DefaultMetricsServiceName = "smc-home-booking"

	DefaultClientTimeout = 5

	DefaultNotificationsTopic = "appointments.events"

	DefaultLockBackend     = LockBackendNone
	DefaultLockTTL         = 10
	DefaultLockWaitTimeout = 5

	DefaultTimezone = "Europe/Moscow"
)

// Драйверы хранилища
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Бэкенды распределённой блокировки
const (
	LockBackendNone  = "none"
	LockBackendRedis = "redis"
)

// Префикс переменных окружения, переопределяющих config.toml
const envPrefix = "SMC_"

var (
	// ErrReadConfig ошибка чтения файла конфигурации
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig конфигурация содержит недопустимые значения
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig        `toml:"server"`
	Database       DatabaseConfig      `toml:"database"`
	Logs           LogsConfig          `toml:"logs"`
	Metrics        MetricsConfig       `toml:"metrics"`
	CatalogService ClientConfig        `toml:"catalog_service"`
	Notifications  NotificationsConfig `toml:"notifications"`
	Lock           LockConfig          `toml:"lock"`
	Scheduling     SchedulingConfig    `toml:"scheduling"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки хранилища
type DatabaseConfig struct {
	Driver          string `toml:"driver"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ClientConfig настройки HTTP клиента внешнего сервиса
type ClientConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// NotificationsConfig настройки отправки событий в Kafka.
// При пустом списке брокеров события только логируются.
type NotificationsConfig struct {
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

// LockConfig настройки распределённой блокировки дня практикующего
type LockConfig struct {
	Backend       string `toml:"backend"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	TTL           int    `toml:"ttl"`
	WaitTimeout   int    `toml:"wait_timeout"`
}

// SchedulingConfig настройки расписания
type SchedulingConfig struct {
	Timezone string `toml:"timezone"`
}

// Load читает конфигурацию из TOML файла, затем применяет .env и переменные окружения SMC_*
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	// .env необязателен
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, sslMode)
}

// Location часовой пояс расписания
func (s SchedulingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres", ErrInvalidConfig)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown database.driver %q", ErrInvalidConfig, c.Database.Driver)
	}

	if c.CatalogService.URL == "" {
		return fmt.Errorf("%w: catalog_service.url is required", ErrInvalidConfig)
	}

	switch c.Lock.Backend {
	case LockBackendNone:
	case LockBackendRedis:
		if c.Lock.RedisAddr == "" {
			return fmt.Errorf("%w: lock.redis_addr is required for redis backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown lock.backend %q", ErrInvalidConfig, c.Lock.Backend)
	}

	if _, err := c.Scheduling.Location(); err != nil {
		return fmt.Errorf("%w: scheduling.timezone: %v", ErrInvalidConfig, err)
	}

	return nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, DefaultHTTPPort)
	setDefault(&c.Server.ReadTimeout, DefaultReadTimeout)
	setDefault(&c.Server.WriteTimeout, DefaultWriteTimeout)
	setDefault(&c.Server.IdleTimeout, DefaultIdleTimeout)
	setDefault(&c.Server.ShutdownTimeout, DefaultShutdownTimeout)

	setDefault(&c.Database.Driver, DefaultDriver)
	setDefault(&c.Database.MaxOpenConns, DefaultMaxOpenConns)
	setDefault(&c.Database.MaxIdleConns, DefaultMaxIdleConns)
	setDefault(&c.Database.ConnMaxLifetime, DefaultConnMaxLifetime)

	setDefault(&c.Logs.Level, DefaultLogLevel)

	setDefault(&c.Metrics.Path, DefaultMetricsPath)
	setDefault(&c.Metrics.ServiceName, DefaultMetricsServiceName)

	setDefault(&c.CatalogService.Timeout, DefaultClientTimeout)

	setDefault(&c.Notifications.Topic, DefaultNotificationsTopic)

	setDefault(&c.Lock.Backend, DefaultLockBackend)
	setDefault(&c.Lock.TTL, DefaultLockTTL)
	setDefault(&c.Lock.WaitTimeout, DefaultLockWaitTimeout)

	setDefault(&c.Scheduling.Timezone, DefaultTimezone)
}

// applyEnv переопределяет секреты и адреса инфраструктуры из окружения
func (c *Config) applyEnv() error {
	if v, ok := lookupEnv("DB_DRIVER"); ok {
		c.Database.Driver = v
	}
	if v, ok := lookupEnv("DB_HOST"); ok {
		c.Database.Host = v
	}
	if v, ok := lookupEnv("DB_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sDB_PORT: %v", ErrInvalidConfig, envPrefix, err)
		}
		c.Database.Port = port
	}
	if v, ok := lookupEnv("DB_USER"); ok {
		c.Database.User = v
	}
	if v, ok := lookupEnv("DB_PASSWORD"); ok {
		c.Database.Password = v
	}
	if v, ok := lookupEnv("DB_NAME"); ok {
		c.Database.DBName = v
	}
	if v, ok := lookupEnv("CATALOG_SERVICE_URL"); ok {
		c.CatalogService.URL = v
	}
	if v, ok := lookupEnv("KAFKA_BROKERS"); ok {
		c.Notifications.Brokers = splitList(v)
	}
	if v, ok := lookupEnv("REDIS_ADDR"); ok {
		c.Lock.RedisAddr = v
	}
	if v, ok := lookupEnv("REDIS_PASSWORD"); ok {
		c.Lock.RedisPassword = v
	}
	if v, ok := lookupEnv("LOG_LEVEL"); ok {
		c.Logs.Level = v
	}
	return nil
}

func lookupEnv(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}
