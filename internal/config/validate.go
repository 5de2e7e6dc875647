package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/raoulx24/retainer/internal/logging"
	"github.com/raoulx24/retainer/internal/pattern"
)

var watchModes = map[string]bool{"off": true, "auto": true, "poll": true, "fsnotify": true}

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() []error {
	var errs []error

	if err := c.Retention.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("retention: %w", err))
	}

	if len(c.Paths) == 0 {
		errs = append(errs, fmt.Errorf("paths: at least one path is required"))
	}

	for i, p := range c.Paths {
		field := fmt.Sprintf("paths[%d]", i)
		if p.Path == "" {
			errs = append(errs, fmt.Errorf("%s.path is required", field))
		}
		if p.FilePattern == "" {
			errs = append(errs, fmt.Errorf("%s.file-pattern is required", field))
		} else if _, err := pattern.Compile(p.FilePattern); err != nil {
			errs = append(errs, fmt.Errorf("%s.file-pattern: %w", field, err))
		}
		if _, err := p.Location(); err != nil {
			errs = append(errs, fmt.Errorf("%s.timezone: %w", field, err))
		}
		if p.Retention != nil {
			if err := p.Retention.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("%s.retention: %w", field, err))
			}
		}
	}

	if !logging.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("invalid logging.level: %s (expected: debug, info, warn, error)", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid logging.format: %s (expected: json, text)", c.Logging.Format))
	}

	if !watchModes[c.Watch.Mode] {
		errs = append(errs, fmt.Errorf("invalid watch.mode: %s (expected: off, auto, poll, fsnotify)", c.Watch.Mode))
	}
	if c.Watch.PollInterval < 0 || c.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("watch durations must not be negative"))
	}

	if c.Schedule.Cron != "" {
		if _, err := cron.ParseStandard(c.Schedule.Cron); err != nil {
			errs = append(errs, fmt.Errorf("invalid schedule.cron %q: %w", c.Schedule.Cron, err))
		}
	}

	return errs
}
