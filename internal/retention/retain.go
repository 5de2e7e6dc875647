package retention

import "github.com/raoulx24/retainer/internal/snapshot"

// sweep is the state threaded through the retention steps. rest is the
// cursor: entries not yet classified, most recent first.
type sweep struct {
	keep []snapshot.Entry
	drop []snapshot.Entry
	rest []snapshot.Entry
}

// Retain partitions entries, which must be sorted most recent first, into
// the ones p keeps and the ones it drops.
//
// Steps run in the fixed order last, hourly, daily, weekly, monthly, yearly
// over a single shared cursor. An entry dropped by one step is never
// reconsidered by a later one. Whatever is left on the cursor at the end is
// dropped.
func Retain(entries []snapshot.Entry, p Policy) (keep, drop []snapshot.Entry) {
	if p.IsIdentity() {
		return entries, nil
	}

	s := sweep{rest: entries}
	if p.KeepLast != nil {
		s = s.last(*p.KeepLast)
	}
	for _, g := range Granularities {
		if q := p.Quota(g); q != nil {
			s = s.bucket(g, *q)
		}
	}

	return s.keep, append(s.drop, s.rest...)
}

// last moves the first n entries to keep unconditionally.
func (s sweep) last(n int) sweep {
	n = min(max(n, 0), len(s.rest))
	s.keep = append(s.keep, s.rest[:n]...)
	s.rest = s.rest[n:]
	return s
}

// bucket keeps the first entry of each not yet seen bucket until quota new
// buckets were claimed. Buckets of entries already kept count as seen.
func (s sweep) bucket(g Granularity, quota int) sweep {
	seen := make(map[Key]struct{}, len(s.keep)+min(quota, len(s.rest)))
	for _, e := range s.keep {
		seen[g.Key(e.Timestamp)] = struct{}{}
	}

	for quota > 0 && len(s.rest) > 0 {
		e := s.rest[0]
		s.rest = s.rest[1:]

		k := g.Key(e.Timestamp)
		if _, ok := seen[k]; ok {
			s.drop = append(s.drop, e)
			continue
		}
		seen[k] = struct{}{}
		s.keep = append(s.keep, e)
		quota--
	}

	return s
}
