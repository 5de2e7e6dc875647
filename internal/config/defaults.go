package config

import "time"

const (
	DefaultPath = "config.toml"

	defaultPollInterval = 30 * time.Second
	defaultDebounce     = 2 * time.Second
)

func applyDefaults(c *Config) {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}

	if c.Watch.Mode == "" {
		c.Watch.Mode = "off"
	}
	if c.Watch.PollInterval == 0 {
		c.Watch.PollInterval = defaultPollInterval
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = defaultDebounce
	}
}
