package pattern

import (
	"errors"
	"fmt"
)

// ErrNoMatch is returned by Extract when a filename does not satisfy the matcher.
var ErrNoMatch = errors.New("filename does not match file pattern")

// Error reports a template that could not be compiled into a matcher.
type Error struct {
	Template string
	Expr     string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid file pattern %q (expression %q): %v", e.Template, e.Expr, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// CalendarError reports extracted components that do not form a real
// date and time, such as February 31st or hour 24.
type CalendarError struct {
	Year, Month, Day     int
	Hour, Minute, Second int
}

func (e *CalendarError) Error() string {
	return fmt.Sprintf("impossible date %04d-%02d-%02d %02d:%02d:%02d",
		e.Year, e.Month, e.Day, e.Hour, e.Minute, e.Second)
}

// IsParseFailure reports whether err means a single filename could not be
// turned into a timestamp. Such failures exclude the file but never abort a run.
func IsParseFailure(err error) bool {
	if errors.Is(err, ErrNoMatch) {
		return true
	}
	var ce *CalendarError
	return errors.As(err, &ce)
}
