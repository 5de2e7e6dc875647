package snapshot

import "time"

// Extractor turns a filename into a timestamp.
type Extractor interface {
	Extract(filename string, loc *time.Location) (time.Time, error)
}

// Failure is a filename that could not be turned into an Entry.
type Failure struct {
	Name string
	Err  error
}

// Parse runs ex over names and splits them into parseable entries and
// failures, both in input order.
func Parse(names []string, ex Extractor, loc *time.Location) ([]Entry, []Failure) {
	entries := make([]Entry, 0, len(names))
	var failures []Failure

	for _, name := range names {
		ts, err := ex.Extract(name, loc)
		if err != nil {
			failures = append(failures, Failure{Name: name, Err: err})
			continue
		}
		entries = append(entries, Entry{Name: name, Timestamp: ts})
	}

	return entries, failures
}
