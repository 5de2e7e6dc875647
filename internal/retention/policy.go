// Package retention decides which archive entries survive a time-bucketed
// retention policy.
package retention

import (
	"fmt"
	"strings"
)

// Policy holds one optional quota per granularity. A nil quota is unset; a
// policy with every quota unset keeps everything.
type Policy struct {
	KeepLast    *int `yaml:"keep-last" toml:"keep-last"`
	KeepHourly  *int `yaml:"keep-hourly" toml:"keep-hourly"`
	KeepDaily   *int `yaml:"keep-daily" toml:"keep-daily"`
	KeepWeekly  *int `yaml:"keep-weekly" toml:"keep-weekly"`
	KeepMonthly *int `yaml:"keep-monthly" toml:"keep-monthly"`
	KeepYearly  *int `yaml:"keep-yearly" toml:"keep-yearly"`
}

// IsIdentity reports whether no quota is set.
func (p Policy) IsIdentity() bool {
	return p.KeepLast == nil && p.KeepHourly == nil && p.KeepDaily == nil &&
		p.KeepWeekly == nil && p.KeepMonthly == nil && p.KeepYearly == nil
}

// Quota returns the configured quota for g, or nil.
func (p Policy) Quota(g Granularity) *int {
	switch g {
	case Hourly:
		return p.KeepHourly
	case Daily:
		return p.KeepDaily
	case Weekly:
		return p.KeepWeekly
	case Monthly:
		return p.KeepMonthly
	case Yearly:
		return p.KeepYearly
	}
	return nil
}

// Validate rejects negative quotas.
func (p Policy) Validate() error {
	var bad []string
	check := func(name string, q *int) {
		if q != nil && *q < 0 {
			bad = append(bad, fmt.Sprintf("%s=%d", name, *q))
		}
	}
	check("keep-last", p.KeepLast)
	for _, g := range Granularities {
		check("keep-"+g.String(), p.Quota(g))
	}
	if len(bad) > 0 {
		return fmt.Errorf("negative retention quota: %s", strings.Join(bad, ", "))
	}
	return nil
}

// String renders the set quotas, e.g. "last=3 daily=7".
func (p Policy) String() string {
	if p.IsIdentity() {
		return "keep-all"
	}
	var parts []string
	if p.KeepLast != nil {
		parts = append(parts, fmt.Sprintf("last=%d", *p.KeepLast))
	}
	for _, g := range Granularities {
		if q := p.Quota(g); q != nil {
			parts = append(parts, fmt.Sprintf("%s=%d", g, *q))
		}
	}
	return strings.Join(parts, " ")
}

// Int is a helper for building policies in code.
func Int(n int) *int { return &n }
