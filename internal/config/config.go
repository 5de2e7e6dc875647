package config

import (
	"time"
	_ "time/tzdata" // timezone names must resolve on hosts without zoneinfo

	"github.com/raoulx24/retainer/internal/retention"
)

type Config struct {
	Retention retention.Policy `yaml:"retention" toml:"retention"`
	Paths     []PathConfig     `yaml:"paths" toml:"paths"`
	Logging   LoggingConfig    `yaml:"logging" toml:"logging"`
	Schedule  ScheduleConfig   `yaml:"schedule" toml:"schedule"`
	Watch     WatchConfig      `yaml:"watch" toml:"watch"`
	Metrics   MetricsConfig    `yaml:"metrics" toml:"metrics"`
	History   HistoryConfig    `yaml:"history" toml:"history"`
}

// PathConfig is one directory to prune.
type PathConfig struct {
	Path        string            `yaml:"path" toml:"path"`
	FilePattern string            `yaml:"file-pattern" toml:"file-pattern"`
	Timezone    string            `yaml:"timezone" toml:"timezone"` // "UTC" (default), "Local" or an IANA name
	Retention   *retention.Policy `yaml:"retention" toml:"retention"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`   // "debug", "info", "warn", "error"
	Format string `yaml:"format" toml:"format"` // "text", "json"
	Output string `yaml:"output" toml:"output"` // "stderr", "stdout" or a file path
}

type ScheduleConfig struct {
	Cron string `yaml:"cron" toml:"cron"` // standard 5-field expression or descriptor such as "@daily"
}

type WatchConfig struct {
	Mode         string        `yaml:"mode" toml:"mode"`                   // "off", "auto", "poll", "fsnotify"
	PollInterval time.Duration `yaml:"poll-interval" toml:"poll-interval"` // e.g. 30s
	Debounce     time.Duration `yaml:"debounce" toml:"debounce"`           // e.g. 2s
}

type MetricsConfig struct {
	Listen string `yaml:"listen" toml:"listen"` // e.g. ":9120"; empty disables the endpoint
}

type HistoryConfig struct {
	Path string `yaml:"path" toml:"path"` // SQLite file; empty disables the journal
}

// Policy returns the path override, or global when the path has none.
func (p PathConfig) Policy(global retention.Policy) retention.Policy {
	if p.Retention != nil {
		return *p.Retention
	}
	return global
}

// Location resolves the timezone filenames of this path are written in.
func (p PathConfig) Location() (*time.Location, error) {
	switch p.Timezone {
	case "", "UTC":
		return time.UTC, nil
	case "Local":
		return time.Local, nil
	}
	return time.LoadLocation(p.Timezone)
}
