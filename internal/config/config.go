// Package config loads the bot configuration from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Config holds all bot configuration.
type Config struct {
	Discord   DiscordConfig   `yaml:"discord"`
	Storage   StorageConfig   `yaml:"storage"`
	Reply     ReplyConfig     `yaml:"reply"`
	Limits    LimitsConfig    `yaml:"limits"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// DiscordConfig identifies the bot and the guild its commands are declared in.
type DiscordConfig struct {
	Token         string `yaml:"token"`
	ApplicationID string `yaml:"application_id"`
	GuildID       string `yaml:"guild_id"` // empty declares global commands
}

// StorageConfig locates the two record files.
type StorageConfig struct {
	DataDir     string `yaml:"data_dir"`
	CatalogFile string `yaml:"catalog_file"`
	LedgerFile  string `yaml:"ledger_file"`
}

// ReplyConfig bounds reply size for the platform's message limit.
type ReplyConfig struct {
	MaxRunes         int    `yaml:"max_runes"`
	TruncationMarker string `yaml:"truncation_marker"`
}

// LimitsConfig throttles commands per user. Zero disables throttling.
type LimitsConfig struct {
	CommandsPerSecond float64 `yaml:"commands_per_second"`
	Burst             int     `yaml:"burst"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// MetricsConfig configures the Prometheus endpoint. Empty Addr disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// TelemetryConfig configures JSONL command events.
type TelemetryConfig struct {
	Enabled   bool   `yaml:"enabled"`
	EventsDir string `yaml:"events_dir"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			DataDir:     ".",
			CatalogFile: "masterItems.json",
			LedgerFile:  "warehouse.json",
		},
		Reply: ReplyConfig{
			MaxRunes:         1900,
			TruncationMarker: "...",
		},
		Limits: LimitsConfig{
			CommandsPerSecond: 0.5,
			Burst:             5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Telemetry: TelemetryConfig{
			EventsDir: ".gudang",
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides lets the environment win over the file. The Discord
// variable names match the ones existing deployments already export.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DISCORD_BOT_TOKEN"); v != "" {
		c.Discord.Token = v
	}
	if v := os.Getenv("CLIENT_ID"); v != "" {
		c.Discord.ApplicationID = v
	}
	if v := os.Getenv("GUILD_ID"); v != "" {
		c.Discord.GuildID = v
	}
	if v := os.Getenv("GUDANG_DATA_DIR"); v != "" {
		c.Storage.DataDir = v
	}
	if v := os.Getenv("GUDANG_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("GUDANG_METRICS_ADDR"); v != "" {
		c.Metrics.Addr = v
	}
	if v := os.Getenv("GUDANG_OBSERVE_JSON"); v != "" {
		c.Telemetry.Enabled = v == "1"
	}
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	var errs []error
	if c.Reply.MaxRunes <= utf8.RuneCountInString(c.Reply.TruncationMarker) {
		errs = append(errs, fmt.Errorf("reply.max_runes (%d) must exceed the truncation marker length", c.Reply.MaxRunes))
	}
	if c.Limits.CommandsPerSecond < 0 || c.Limits.Burst < 0 {
		errs = append(errs, errors.New("limits must not be negative"))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q: want json or console", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// ValidateDiscord checks the settings needed to talk to Discord.
func (c *Config) ValidateDiscord() error {
	var errs []error
	if c.Discord.Token == "" {
		errs = append(errs, errors.New("discord token is required (DISCORD_BOT_TOKEN)"))
	}
	if c.Discord.ApplicationID == "" {
		errs = append(errs, errors.New("discord application id is required (CLIENT_ID)"))
	}
	return errors.Join(errs...)
}
