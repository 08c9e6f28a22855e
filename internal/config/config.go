package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values
const (
	DefaultOutputDir          = "downloads"
	DefaultMaxUploadMiB       = 2000 // Telegram bot API hard limit
	DefaultSessionTTLMin      = 30
	DefaultPollTimeoutSec     = 10
	DefaultEditIntervalSec    = 2
	DefaultConfigFile         = "config.yaml"
	TokenEnvVar               = "BOT_TOKEN"
	bytesPerMiB         int64 = 1024 * 1024
)

// Config holds the bot configuration loaded from YAML
type Config struct {
	Telegram struct {
		Token          string `yaml:"token"`
		PollTimeoutSec int    `yaml:"poll_timeout_sec"`
	} `yaml:"telegram"`
	Download struct {
		OutputDir       string `yaml:"output_dir"`
		MaxUploadMiB    int64  `yaml:"max_upload_mib"`
		SessionTTLMin   int    `yaml:"session_ttl_min"`
		EditIntervalSec int    `yaml:"progress_edit_interval_sec"`
	} `yaml:"download"`
}

// Load reads the YAML config at path, applies defaults, and validates it.
// A missing file is not an error as long as the token is present in the
// BOT_TOKEN environment variable.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Fall through to defaults and the env token
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg.applyDefaults()

	if cfg.Telegram.Token == "" {
		cfg.Telegram.Token = os.Getenv(TokenEnvVar)
	}
	if cfg.Telegram.Token == "" {
		return nil, fmt.Errorf("telegram token not configured: set telegram.token in %s or the %s environment variable", path, TokenEnvVar)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Telegram.PollTimeoutSec <= 0 {
		c.Telegram.PollTimeoutSec = DefaultPollTimeoutSec
	}
	if c.Download.OutputDir == "" {
		c.Download.OutputDir = DefaultOutputDir
	}
	if c.Download.MaxUploadMiB <= 0 {
		c.Download.MaxUploadMiB = DefaultMaxUploadMiB
	}
	if c.Download.SessionTTLMin <= 0 {
		c.Download.SessionTTLMin = DefaultSessionTTLMin
	}
	if c.Download.EditIntervalSec <= 0 {
		c.Download.EditIntervalSec = DefaultEditIntervalSec
	}
}

// MaxUploadBytes returns the upload size limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return c.Download.MaxUploadMiB * bytesPerMiB
}

// SessionTTL returns the session expiry as a duration
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Download.SessionTTLMin) * time.Minute
}

// EditInterval returns the minimum delay between progress message edits
func (c *Config) EditInterval() time.Duration {
	return time.Duration(c.Download.EditIntervalSec) * time.Second
}

// PollTimeout returns the long-poll timeout for the Telegram poller
func (c *Config) PollTimeout() time.Duration {
	return time.Duration(c.Telegram.PollTimeoutSec) * time.Second
}
