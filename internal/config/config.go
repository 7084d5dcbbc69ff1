package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level moneytrack.yaml configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Currency CurrencyConfig `yaml:"currency"`
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
	Telegram TelegramConfig `yaml:"telegram,omitempty"`
	Git      GitConfig      `yaml:"git"`
}

// StorageConfig selects and configures the key/value substrate.
type StorageConfig struct {
	Driver     string `yaml:"driver"`                // memory, file, sqlite, redis, postgres, headless
	Path       string `yaml:"path,omitempty"`        // file directory or sqlite database
	DSN        string `yaml:"dsn,omitempty"`         // postgres connection string
	RedisAddr  string `yaml:"redis_addr,omitempty"`  // host:port
	RedisPass  string `yaml:"redis_pass,omitempty"`
	ReadPolicy string `yaml:"read_policy,omitempty"` // fallback or quarantine
}

// CurrencyConfig controls conversion and display.
type CurrencyConfig struct {
	Reference    string `yaml:"reference"`     // currency net worth is reported in
	RateFallback string `yaml:"rate_fallback"` // one or none
}

// LogConfig is translated into a logx.LogConf.
type LogConfig struct {
	Mode     string `yaml:"mode"`     // console or file
	Level    string `yaml:"level"`    // debug, info, error, severe
	Encoding string `yaml:"encoding"` // plain or json
	Path     string `yaml:"path,omitempty"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// TelegramConfig enables weekly check-in notifications.
type TelegramConfig struct {
	Token  string `yaml:"token,omitempty"`
	ChatID int64  `yaml:"chat_id,omitempty"`
}

// Enabled reports whether Telegram notifications are configured.
func (t TelegramConfig) Enabled() bool {
	return t.Token != "" && t.ChatID != 0
}

// GitConfig sets the identity snapshots are committed as.
type GitConfig struct {
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a moneytrack.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger stored
// under dataDir. An empty dataDir selects the in-memory substrate.
func Default(dataDir string) *Config {
	storage := StorageConfig{Driver: "memory", ReadPolicy: "fallback"}
	if dataDir != "" {
		storage = StorageConfig{Driver: "file", Path: dataDir, ReadPolicy: "fallback"}
	}
	return &Config{
		Storage: storage,
		Currency: CurrencyConfig{
			Reference:    "THB",
			RateFallback: "one",
		},
		Log: LogConfig{
			Mode:     "console",
			Level:    "error",
			Encoding: "plain",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Git: GitConfig{
			AuthorName:  "moneytrack",
			AuthorEmail: "moneytrack@localhost",
		},
	}
}
