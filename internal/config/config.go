package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server            ServerConfig            `toml:"server"`
	Database          DatabaseConfig          `toml:"database"`
	Storage           StorageConfig           `toml:"storage"`
	Logs              LogsConfig              `toml:"logs"`
	Metrics           MetricsConfig           `toml:"metrics"`
	Clinic            ClinicConfig            `toml:"clinic"`
	ProviderDirectory ProviderDirectoryConfig `toml:"provider_directory"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`

	CORSAllowedOrigins []string `toml:"cors_allowed_origins"` // пусто - CORS выключен
	RateLimitRPS       float64  `toml:"rate_limit_rps"`       // 0 - без ограничения
	RateLimitBurst     int      `toml:"rate_limit_burst"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}

// StorageConfig выбор реализации хранилища: postgres или memory
type StorageConfig struct {
	Driver string `toml:"driver"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// ClinicConfig рабочий день клиники
type ClinicConfig struct {
	DayStart            string `toml:"day_start"`
	DayEnd              string `toml:"day_end"`
	SlotDurationMinutes int    `toml:"slot_duration_minutes"`
	DefaultMaxCapacity  int    `toml:"default_max_capacity"`
}

// ClinicHours конфигурация в доменном виде
func (c ClinicConfig) ClinicHours() domain.ClinicHours {
	return domain.ClinicHours{
		DayStart:            types.TimeString(c.DayStart),
		DayEnd:              types.TimeString(c.DayEnd),
		SlotDurationMinutes: c.SlotDurationMinutes,
		DefaultMaxCapacity:  c.DefaultMaxCapacity,
	}
}

// ProviderDirectoryConfig справочник врачей. Если выключен, врачи не проверяются
type ProviderDirectoryConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
			RateLimitRPS:    5,
			RateLimitBurst:  10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "clinic_scheduler",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Storage: StorageConfig{Driver: StorageDriverPostgres},
		Logs: LogsConfig{
			File:  "logs/clinic-scheduler.log",
			Level: "info",
		},
		Metrics: MetricsConfig{
			ServiceName: "clinic_scheduler",
			Path:        "/metrics",
		},
		Clinic: ClinicConfig{
			DayStart:            domain.DefaultDayStart,
			DayEnd:              domain.DefaultDayEnd,
			SlotDurationMinutes: domain.DefaultSlotDurationMinutes,
			DefaultMaxCapacity:  domain.DefaultMaxCapacity,
		},
		ProviderDirectory: ProviderDirectoryConfig{Timeout: 5},
	}
}

// Load читает TOML файл поверх значений по умолчанию и валидирует результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535, got %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	if c.Server.RateLimitRPS < 0 {
		return fmt.Errorf("%w: server.rate_limit_rps must not be negative", ErrInvalidConfig)
	}
	if c.Server.RateLimitRPS > 0 && c.Server.RateLimitBurst <= 0 {
		return fmt.Errorf("%w: server.rate_limit_burst must be positive when rate limiting is enabled", ErrInvalidConfig)
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres storage", ErrInvalidConfig)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if err := c.Clinic.ClinicHours().Validate(); err != nil {
		return fmt.Errorf("%w: clinic: %v", ErrInvalidConfig, err)
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}

	if c.ProviderDirectory.Enabled {
		if c.ProviderDirectory.URL == "" {
			return fmt.Errorf("%w: provider_directory.url is required when the directory is enabled", ErrInvalidConfig)
		}
		if c.ProviderDirectory.Timeout <= 0 {
			return fmt.Errorf("%w: provider_directory.timeout must be positive", ErrInvalidConfig)
		}
	}

	return nil
}
