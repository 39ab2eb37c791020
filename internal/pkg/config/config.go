package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Scrape   ScrapeConfig   `yaml:"scrape"`
	Backfill BackfillConfig `yaml:"backfill"`
	Postgres PostgresConfig `yaml:"postgres"`
	Telegram TelegramConfig `yaml:"telegram"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type HTTPConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
}

type ScrapeConfig struct {
	ScoreboardURL string            `yaml:"scoreboard_url"`
	OddsURL       string            `yaml:"odds_url"`
	UserAgent     string            `yaml:"user_agent"`
	Timeout       time.Duration     `yaml:"timeout"`
	Headers       map[string]string `yaml:"headers"`
	Markets       []string          `yaml:"markets"` // spread, moneyline, total
	Retries       int               `yaml:"retries"` // attempts beyond the first
	RetryBackoff  time.Duration     `yaml:"retry_backoff"`
}

type BackfillConfig struct {
	Seasons []int         `yaml:"seasons"`
	Delay   time.Duration `yaml:"delay"` // politeness pause between week requests
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"` // empty disables the archive
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
}

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	config.applyDefaults()

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":3000"
	}
	if c.HTTP.ReadHeaderTimeout <= 0 {
		c.HTTP.ReadHeaderTimeout = 10 * time.Second
	}
	if c.HTTP.RequestTimeout <= 0 {
		c.HTTP.RequestTimeout = 60 * time.Second
	}
	if c.Scrape.ScoreboardURL == "" {
		c.Scrape.ScoreboardURL = "https://odds.bookmakersreview.com/nfl/"
	}
	if c.Scrape.OddsURL == "" {
		c.Scrape.OddsURL = "https://ms.production-us-east-1.bookmakersreview.com/ms-odds-v2/odds-v2-service"
	}
	if c.Scrape.Timeout <= 0 {
		c.Scrape.Timeout = 30 * time.Second
	}
	if len(c.Scrape.Markets) == 0 {
		c.Scrape.Markets = []string{"spread", "moneyline"}
	}
	if c.Scrape.RetryBackoff <= 0 {
		c.Scrape.RetryBackoff = 2 * time.Second
	}
	if c.Backfill.Delay <= 0 {
		c.Backfill.Delay = 2500 * time.Millisecond
	}
}

// EnvOverrides pulls secrets from the environment so they can stay out of the
// config file (the binaries load .env first).
func (c *Config) EnvOverrides() {
	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		c.Postgres.DSN = dsn
	}
	if tok := os.Getenv("TELEGRAM_BOT_TOKEN"); tok != "" {
		c.Telegram.BotToken = tok
	}
}
