package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"atelier/internal/schedule"
)

type Config struct {
	Server struct {
		Port       int    `yaml:"port"`
		AdminToken string `yaml:"admin_token"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Backup struct {
		Enabled       bool   `yaml:"enabled"`
		IntervalHours int    `yaml:"interval_hours"`
		Path          string `yaml:"path"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"backup"`

	Redis struct {
		Address         string `yaml:"address"`
		Password        string `yaml:"password"`
		DB              int    `yaml:"db"`
		CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	} `yaml:"redis"`

	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   int64  `yaml:"chat_id"`
	} `yaml:"telegram"`

	Monitoring struct {
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`

	Schedule struct {
		SlotMinutes          int                       `yaml:"slot_minutes"`
		SoonThresholdMinutes int                       `yaml:"soon_threshold_minutes"`
		HorizonDays          int                       `yaml:"next_opening_horizon_days"`
		Vacations            []schedule.VacationPeriod `yaml:"vacations"`
	} `yaml:"schedule"`

	Booking struct {
		RatePerMinute float64 `yaml:"rate_per_minute"`
		Burst         int     `yaml:"burst"`
	} `yaml:"booking"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/atelier.db"
	}

	if err = os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ResolverOptions maps the schedule section onto resolver options; empty
// vacation list falls back to the built-in holiday calendar.
func (c *Config) ResolverOptions() schedule.Options {
	return schedule.Options{
		Vacations:     c.Schedule.Vacations,
		SoonThreshold: float64(c.Schedule.SoonThresholdMinutes) / 60,
		HorizonDays:   c.Schedule.HorizonDays,
	}
}

func (c *Config) SlotMinutes() int {
	if c.Schedule.SlotMinutes <= 0 {
		return 30
	}
	return c.Schedule.SlotMinutes
}

func (c *Config) BookingRate() float64 {
	if c.Booking.RatePerMinute <= 0 {
		return 10
	}
	return c.Booking.RatePerMinute
}

func (c *Config) BookingBurst() int {
	if c.Booking.Burst <= 0 {
		return 5
	}
	return c.Booking.Burst
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Redis.CacheTTLSeconds) * time.Second
}
