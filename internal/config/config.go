package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// Config конфигурация сервиса календаря
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Redis       RedisConfig       `toml:"redis"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	RateLimit   RateLimitConfig   `toml:"rate_limit"`
	Schedule    ScheduleDefaults  `toml:"schedule_defaults"`
	UserService UserServiceConfig `toml:"userservice"`
}

// ServerConfig настройки HTTP сервера. Таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"` // перекрывается DB_PASSWORD
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// RedisConfig настройки кэша бронирований
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"` // перекрывается REDIS_PASSWORD
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"` // секунды
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RateLimitConfig ограничение запросов на защищённые маршруты
type RateLimitConfig struct {
	Enabled   bool    `toml:"enabled"`
	RPS       float64 `toml:"rps"`
	Burst     int     `toml:"burst"`
	ClientTTL int     `toml:"client_ttl"` // секунды

	// TrustedProxies подсети прокси, которым можно верить в X-Forwarded-For
	TrustedProxies []string `toml:"trusted_proxies"`
}

// ScheduleDefaults расписание для организаций без сохранённых настроек
// и параметры построения сетки
type ScheduleDefaults struct {
	Timezone          string   `toml:"timezone"`
	SnapshotMaxAge    int      `toml:"snapshot_max_age"` // секунды, 0 - снимок месяца не устаревает
	StartHour         int      `toml:"start_hour"`
	EndHour           int      `toml:"end_hour"`
	SlotMinuteOffset  int      `toml:"slot_minute_offset"`
	WorkingDays       []string `toml:"working_days"`
	MaxEntriesPerSlot int      `toml:"max_entries_per_slot"`
	CancelLeadHours   int      `toml:"cancel_lead_hours"`
}

type UserServiceConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// Load читает .env (если есть), затем TOML-файл, затем применяет переменные окружения
func Load(path string) (*Config, error) {
	// 1. .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	// 2. Значения по умолчанию перекрываются файлом
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	// 3. Секреты из окружения
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Default конфигурация для локального запуска
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "slot_calendar",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			TTL:  60,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "slot-calendar",
		},
		RateLimit: RateLimitConfig{
			RPS:       5,
			Burst:     10,
			ClientTTL: 600,
		},
		Schedule: ScheduleDefaults{
			Timezone:          "UTC",
			SnapshotMaxAge:    300,
			StartHour:         domain.DefaultStartHour,
			EndHour:           domain.DefaultEndHour,
			SlotMinuteOffset:  domain.DefaultSlotMinuteOffset,
			WorkingDays:       domain.WeekdayStrings(domain.DefaultWorkingDays),
			MaxEntriesPerSlot: domain.DefaultMaxEntriesPerSlot,
			CancelLeadHours:   domain.DefaultCancelLeadHours,
		},
		UserService: UserServiceConfig{
			Timeout: 3,
		},
	}
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("DB_PASSWORD"); ok {
		c.Database.Password = v
	}
	if v, ok := os.LookupEnv("DB_HOST"); ok && v != "" {
		c.Database.Host = v
	}
	if v, ok := os.LookupEnv("DB_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DB_PORT %q: %w", v, err)
		}
		c.Database.Port = port
	}
	if v, ok := os.LookupEnv("REDIS_PASSWORD"); ok {
		c.Redis.Password = v
	}
	if v, ok := os.LookupEnv("REDIS_ADDR"); ok && v != "" {
		c.Redis.Addr = v
	}
	return nil
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d out of range", c.Server.HTTPPort)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}

	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("database.host and database.dbname are required")
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database pool sizes must be non-negative")
	}

	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required when redis is enabled")
		}
		if c.Redis.TTL <= 0 {
			return fmt.Errorf("redis.ttl must be positive")
		}
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("metrics.path is required when metrics are enabled")
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate_limit.rps and rate_limit.burst must be positive")
	}
	for _, cidr := range c.RateLimit.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return fmt.Errorf("invalid rate_limit.trusted_proxies entry %q: %w", cidr, err)
		}
	}

	if c.UserService.Enabled {
		if _, err := url.ParseRequestURI(c.UserService.URL); err != nil {
			return fmt.Errorf("invalid userservice.url: %w", err)
		}
	}

	if _, err := c.Schedule.Location(); err != nil {
		return err
	}
	if c.Schedule.SnapshotMaxAge < 0 {
		return fmt.Errorf("schedule_defaults.snapshot_max_age must be non-negative")
	}
	if _, err := c.Schedule.ScheduleConfig(0); err != nil {
		return err
	}
	return nil
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Location часовой пояс организаций
func (s ScheduleDefaults) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule_defaults.timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// ScheduleConfig расписание по умолчанию для организации
func (s ScheduleDefaults) ScheduleConfig(orgID int64) (domain.ScheduleConfig, error) {
	days, err := domain.NormalizeWorkingDays(s.WorkingDays)
	if err != nil {
		return domain.ScheduleConfig{}, fmt.Errorf("invalid schedule_defaults.working_days: %w", err)
	}

	cfg := domain.ScheduleConfig{
		OrgID:             orgID,
		StartHour:         s.StartHour,
		EndHour:           s.EndHour,
		SlotMinuteOffset:  s.SlotMinuteOffset,
		WorkingDays:       days,
		MaxEntriesPerSlot: s.MaxEntriesPerSlot,
		CancelLeadHours:   s.CancelLeadHours,
	}
	if err := cfg.Validate(); err != nil {
		return domain.ScheduleConfig{}, fmt.Errorf("invalid schedule_defaults: %w", err)
	}
	return cfg, nil
}

// SnapshotMaxAgeDuration время жизни снимка месяца в координаторе
func (s ScheduleDefaults) SnapshotMaxAgeDuration() time.Duration {
	return time.Duration(s.SnapshotMaxAge) * time.Second
}
