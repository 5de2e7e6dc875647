// Package pattern compiles filename templates such as
// "db-{year}-{month}-{day}.sql.gz" into matchers and extracts the
// timestamp a filename carries.
package pattern

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wasilibs/go-re2"
	"golang.org/x/text/unicode/norm"
)

const (
	defaultYear  = 2022
	defaultMonth = 1
	defaultDay   = 1
)

var monthAbbr = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// Matcher is a compiled template. It is safe for concurrent use.
type Matcher struct {
	template string
	re       *re2.Regexp
	fields   []field // fields[i] feeds capture group i+1
}

// Compile turns template into a Matcher. The same template always yields an
// equivalent matcher.
func Compile(template string) (*Matcher, error) {
	var (
		expr   strings.Builder
		fields []field
	)

	for _, t := range tokenize(template) {
		if !t.placeholder {
			expr.WriteString(re2.QuoteMeta(t.text))
			continue
		}
		expr.WriteString("(" + t.expr + ")")
		fields = append(fields, t.field)
	}

	re, err := re2.Compile(expr.String())
	if err != nil {
		return nil, &Error{Template: template, Expr: expr.String(), Err: err}
	}

	return &Matcher{template: template, re: re, fields: fields}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(template string) *Matcher {
	m, err := Compile(template)
	if err != nil {
		panic(err)
	}
	return m
}

// Template returns the template the matcher was compiled from.
func (m *Matcher) Template() string { return m.template }

// String returns the compiled expression.
func (m *Matcher) String() string { return m.re.String() }

// captures holds the raw text of the last participating group per field.
type captures struct {
	values map[field]string
}

func (c captures) number(f field, def int) int {
	s, ok := c.values[f]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func (c captures) month() int {
	if _, ok := c.values[fieldMonth]; ok {
		return c.number(fieldMonth, defaultMonth)
	}
	if m, ok := monthAbbr[strings.ToLower(c.values[fieldMonthAbbr])]; ok {
		return int(m)
	}
	return defaultMonth
}

// Extract applies the matcher to filename and builds the timestamp it names.
// Missing components default to 2022-01-01 00:00:00. The wall clock is
// interpreted in loc (UTC when nil) unless the template captured a {TZ}
// offset, which then takes precedence.
func (m *Matcher) Extract(filename string, loc *time.Location) (time.Time, error) {
	name := norm.NFC.String(filename)

	idx := m.re.FindStringSubmatchIndex(name)
	if idx == nil {
		return time.Time{}, fmt.Errorf("%w: %q against %q", ErrNoMatch, filename, m.template)
	}

	c := captures{values: make(map[field]string, len(m.fields))}
	for i, f := range m.fields {
		start, end := idx[2*(i+1)], idx[2*(i+1)+1]
		if start < 0 {
			continue
		}
		c.values[f] = name[start:end]
	}

	if tz, ok := c.values[fieldTZ]; ok {
		off, err := parseOffset(tz)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q: %v", ErrNoMatch, filename, err)
		}
		loc = off
	}
	if loc == nil {
		loc = time.UTC
	}

	return build(
		c.number(fieldYear, defaultYear), c.month(), c.number(fieldDay, defaultDay),
		c.number(fieldHour, 0), c.number(fieldMinutes, 0), c.number(fieldSeconds, 0),
		loc,
	)
}

// build constructs the instant, refusing components time.Date would
// otherwise normalise into a different day.
func build(year, month, day, hour, minute, second int, loc *time.Location) (time.Time, error) {
	bad := month < 1 || month > 12 ||
		day < 1 || day > daysIn(year, time.Month(month)) ||
		hour > 23 || minute > 59 || second > 59
	if bad {
		return time.Time{}, &CalendarError{year, month, day, hour, minute, second}
	}
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, loc), nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// parseOffset reads "Z" or "+hh:mm" / "-hh:mm".
func parseOffset(s string) (*time.Location, error) {
	if s == "Z" {
		return time.UTC, nil
	}
	if len(s) != 6 {
		return nil, fmt.Errorf("malformed offset %q", s)
	}
	h, err := strconv.Atoi(s[1:3])
	if err != nil {
		return nil, err
	}
	mm, err := strconv.Atoi(s[4:6])
	if err != nil {
		return nil, err
	}
	if h > 23 || mm > 59 {
		return nil, fmt.Errorf("offset %q out of range", s)
	}
	secs := h*3600 + mm*60
	if s[0] == '-' {
		secs = -secs
	}
	return time.FixedZone(s, secs), nil
}
