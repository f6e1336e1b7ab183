package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

const (
	// DriverPostgres хранилище PostgreSQL
	DriverPostgres = "postgres"
	// DriverMongo хранилище MongoDB
	DriverMongo = "mongo"
)

var (
	// ErrInvalidConfig возвращается при некорректной конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Storage  StorageConfig  `toml:"storage"`
	Database DatabaseConfig `toml:"database"`
	Mongo    MongoConfig    `toml:"mongo"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Schedule ScheduleConfig `toml:"schedule"`
	Pricing  PricingConfig  `toml:"pricing"`
	Payments PaymentsConfig `toml:"payments"`
	Admin    AdminConfig    `toml:"admin"`
	Reaper   ReaperConfig   `toml:"reaper"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
	// AllowedOrigins источники фронтенда для CORS
	AllowedOrigins []string `toml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

// StorageConfig выбор хранилища
type StorageConfig struct {
	Driver string `toml:"driver" env:"STORAGE_DRIVER"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" env:"DATABASE_HOST"`
	Port            int    `toml:"port" env:"DATABASE_PORT"`
	User            string `toml:"user" env:"DATABASE_USER"`
	Password        string `toml:"password" env:"DATABASE_PASSWORD"`
	DBName          string `toml:"dbname" env:"DATABASE_NAME"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// MongoConfig настройки MongoDB
type MongoConfig struct {
	URI            string `toml:"uri" env:"MONGO_URI"`
	Database       string `toml:"database" env:"MONGO_DATABASE"`
	ConnectTimeout int    `toml:"connect_timeout"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level" env:"LOG_LEVEL"`
	File  string `toml:"file"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ScheduleConfig политика расписания студии
type ScheduleConfig struct {
	OpeningTime       string `toml:"opening_time"`
	ClosingTime       string `toml:"closing_time"`
	StepMinutes       int    `toml:"step_minutes"`
	BufferMinutes     int    `toml:"buffer_minutes"`
	MinBookingMinutes int    `toml:"min_booking_minutes"`
	Timezone          string `toml:"timezone" env:"STUDIO_TIMEZONE"`
	MaxRangeDays      int    `toml:"max_range_days"`
}

// Location часовой пояс студии
func (c ScheduleConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// PricingConfig настройки цен
type PricingConfig struct {
	Currency       string `toml:"currency"`
	SurchargeCents int64  `toml:"surcharge_cents"`
}

// PaymentsConfig настройки Stripe
type PaymentsConfig struct {
	SecretKey         string `toml:"secret_key" env:"STRIPE_SECRET_KEY"`
	SuccessURL        string `toml:"success_url" env:"STRIPE_SUCCESS_URL"`
	CancelURL         string `toml:"cancel_url" env:"STRIPE_CANCEL_URL"`
	PendingTTLMinutes int    `toml:"pending_ttl_minutes"`
}

// PendingTTL время жизни неоплаченного бронирования
func (c PaymentsConfig) PendingTTL() time.Duration {
	return time.Duration(c.PendingTTLMinutes) * time.Minute
}

// AdminConfig учетная запись администратора и JWT
type AdminConfig struct {
	Username        string `toml:"username" env:"ADMIN_USERNAME"`
	PasswordHash    string `toml:"password_hash" env:"ADMIN_PASSWORD_HASH"`
	JWTSecret       string `toml:"jwt_secret" env:"JWT_SECRET"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes"`
	Issuer          string `toml:"issuer"`
}

// TokenTTL время жизни токена администратора
func (c AdminConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// ReaperConfig фоновая отмена протухших pending бронирований
type ReaperConfig struct {
	Enabled         bool `toml:"enabled"`
	IntervalSeconds int  `toml:"interval_seconds"`
	GraceMinutes    int  `toml:"grace_minutes"`
}

// Interval период запуска
func (c ReaperConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// Grace запас после TTL перед отменой
func (c ReaperConfig) Grace() time.Duration {
	return time.Duration(c.GraceMinutes) * time.Minute
}

// Load читает конфигурацию из TOML файла, затем применяет переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: stat %s: %w", path, err)
	}

	// Секреты и адреса могут приходить из окружения
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default значения по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
			AllowedOrigins:  []string{"http://localhost:3000"},
		},
		Storage: StorageConfig{Driver: DriverPostgres},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "studio_booking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Mongo: MongoConfig{
			URI:            "mongodb://localhost:27017/?replicaSet=rs0",
			Database:       "studio_booking",
			ConnectTimeout: 10,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "studio_booking",
		},
		Schedule: ScheduleConfig{
			OpeningTime:       domain.DefaultOpeningTime,
			ClosingTime:       domain.DefaultClosingTime,
			StepMinutes:       domain.DefaultStepMinutes,
			BufferMinutes:     domain.DefaultBufferMinutes,
			MinBookingMinutes: domain.DefaultMinBookingMinutes,
			MaxRangeDays:      62,
		},
		Pricing: PricingConfig{Currency: "usd"},
		Payments: PaymentsConfig{
			SuccessURL:        "http://localhost:3000/success?session_id={CHECKOUT_SESSION_ID}",
			CancelURL:         "http://localhost:3000/cancel",
			PendingTTLMinutes: domain.DefaultPendingTTLMinutes,
		},
		Admin: AdminConfig{
			Username:        "admin",
			TokenTTLMinutes: 12 * 60,
			Issuer:          "studio-booking",
		},
		Reaper: ReaperConfig{
			Enabled:         true,
			IntervalSeconds: 60,
			GraceMinutes:    5,
		},
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var problems []string

	switch c.Storage.Driver {
	case DriverPostgres, DriverMongo:
	default:
		problems = append(problems, fmt.Sprintf("storage.driver must be %q or %q", DriverPostgres, DriverMongo))
	}
	if c.Server.HTTPPort <= 0 {
		problems = append(problems, "server.http_port must be positive")
	}
	if c.Payments.PendingTTLMinutes < 30 {
		// Stripe не принимает expires_at раньше чем через 30 минут
		problems = append(problems, "payments.pending_ttl_minutes must be at least 30")
	}
	if c.Pricing.SurchargeCents < 0 {
		problems = append(problems, "pricing.surcharge_cents must not be negative")
	}
	if c.Schedule.MaxRangeDays <= 0 {
		problems = append(problems, "schedule.max_range_days must be positive")
	}
	if c.Reaper.Enabled && c.Reaper.IntervalSeconds <= 0 {
		problems = append(problems, "reaper.interval_seconds must be positive")
	}
	if c.Reaper.GraceMinutes < 0 {
		problems = append(problems, "reaper.grace_minutes must not be negative")
	}
	if _, err := c.Schedule.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("schedule.timezone: %v", err))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
