package retention

import "time"

// Granularity is a bucketing period.
type Granularity int

const (
	Hourly Granularity = iota
	Daily
	Weekly
	Monthly
	Yearly
)

// Granularities lists the bucketed periods in evaluation order.
var Granularities = []Granularity{Hourly, Daily, Weekly, Monthly, Yearly}

func (g Granularity) String() string {
	switch g {
	case Hourly:
		return "hourly"
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	}
	return "unknown"
}

// Key identifies the bucket t falls into, using t's own location.
type Key [4]int

// Key returns the bucket of t at this granularity.
//
// Monthly buckets carry the month number only, so the same month of two
// different years share a bucket. Weekly buckets combine the ISO week with
// the ISO week-year.
func (g Granularity) Key(t time.Time) Key {
	switch g {
	case Hourly:
		return Key{t.Year(), int(t.Month()), t.Day(), t.Hour()}
	case Daily:
		return Key{t.Year(), int(t.Month()), t.Day()}
	case Weekly:
		y, w := t.ISOWeek()
		return Key{y, w}
	case Monthly:
		return Key{int(t.Month())}
	case Yearly:
		return Key{t.Year()}
	}
	return Key{}
}
