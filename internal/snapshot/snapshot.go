// Package snapshot models the archive files a retention pass works on: a
// filename paired with the instant its name encodes.
package snapshot

import (
	"slices"
	"time"
)

// Entry is a single archive file with the timestamp extracted from its name.
// Two entries are distinct by Name even when their timestamps collide.
type Entry struct {
	Name      string
	Timestamp time.Time
}

// Names returns the entry names in order.
func Names(entries []Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// SortNewestFirst orders entries most recent first. Entries with equal
// timestamps end up in the reverse of their incoming order: a stable
// ascending sort followed by a reversal.
func SortNewestFirst(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	slices.Reverse(entries)
}
