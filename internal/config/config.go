// Package config loads the service configuration from a YAML file with
// environment variable overrides on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Scrape    ScrapeConfig    `yaml:"scrape"`
	Mail      MailConfig      `yaml:"mail"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// RedisConfig is optional: an empty URL disables the cycle lock and
// last-run bookkeeping, which is fine for single-instance deployments.
type RedisConfig struct {
	URL string `yaml:"url"`
}

type SchedulerConfig struct {
	IntervalHours int           `yaml:"interval_hours"`
	RetryCooldown time.Duration `yaml:"retry_cooldown"`
}

type ScrapeConfig struct {
	QueriesPerUser   int           `yaml:"queries_per_user"`
	LocationsPerUser int           `yaml:"locations_per_user"`
	JobsPerQuery     int           `yaml:"jobs_per_query"`
	ComboDelay       time.Duration `yaml:"combo_delay"`
}

// MailConfig is optional: an empty host disables alert digests.
type MailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func defaults() *Config {
	return &Config{
		Scheduler: SchedulerConfig{
			IntervalHours: 1,
			RetryCooldown: time.Minute,
		},
		Scrape: ScrapeConfig{
			QueriesPerUser:   3,
			LocationsPerUser: 3,
			JobsPerQuery:     5,
			ComboDelay:       2 * time.Second,
		},
		Mail: MailConfig{
			Port: 587,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the config file at path (optional), applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Database.DSN, "DATABASE_URL")
	setString(&cfg.Redis.URL, "REDIS_URL")
	setInt(&cfg.Scheduler.IntervalHours, "SCRAPE_INTERVAL_HOURS")
	setString(&cfg.Mail.Host, "SMTP_HOST")
	setInt(&cfg.Mail.Port, "SMTP_PORT")
	setString(&cfg.Mail.Username, "SMTP_USERNAME")
	setString(&cfg.Mail.Password, "SMTP_PASSWORD")
	setString(&cfg.Mail.From, "SMTP_FROM")
	setString(&cfg.Logging.Level, "LOG_LEVEL")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func (c *Config) validate() error {
	if c.Database.DSN == "" {
		return errors.New("database dsn is required (config database.dsn or DATABASE_URL)")
	}
	if c.Scheduler.IntervalHours <= 0 {
		return errors.New("scheduler interval must be positive")
	}
	if c.Mail.Host != "" && c.Mail.From == "" {
		return errors.New("mail.from is required when mail.host is set")
	}
	return nil
}

// AlertsEnabled reports whether the config carries enough to send mail.
func (c *Config) AlertsEnabled() bool {
	return c.Mail.Host != ""
}
