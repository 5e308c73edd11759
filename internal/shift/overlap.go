package shift

// Entry is a logged time span as seen by the overlap check.
type Entry struct {
	ID    int64
	Owner Owner
	Date  string // YYYY-MM-DD
	Start string // HH:MM[:SS]
	End   string // HH:MM[:SS]
}

// Range returns the entry span in minutes since midnight. ok is false when a
// time does not parse or the end is not after the start.
func (e Entry) Range() (start, end int, ok bool) {
	return sameDayRange(e.Start, e.End)
}

// Candidate is an entry about to be submitted. ExcludeID is the id of the
// entry being edited, or 0 for a new entry.
type Candidate struct {
	Owner     Owner
	Date      string
	Start     string
	End       string
	ExcludeID int64
}

// Overlaps reports whether the half-open ranges [aStart,aEnd) and
// [bStart,bEnd) intersect. Touching ranges do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return max(aStart, bStart) < min(aEnd, bEnd)
}

// FindOverlap returns the first entry, in slice order, that belongs to the
// candidate's owner on the candidate's date and overlaps its range.
// entries may hold any owners and dates. An invalid candidate range never
// conflicts, and stored entries with invalid ranges are ignored.
func FindOverlap(entries []Entry, c Candidate) (Entry, bool) {
	cs, ce, ok := sameDayRange(c.Start, c.End)
	if !ok {
		return Entry{}, false
	}

	for _, e := range entries {
		if e.Date != c.Date {
			continue
		}
		if c.ExcludeID != 0 && e.ID == c.ExcludeID {
			continue
		}
		if !SameOwner(e.Owner, c.Owner) {
			continue
		}
		es, ee, ok := e.Range()
		if !ok {
			continue
		}
		if Overlaps(cs, ce, es, ee) {
			return e, true
		}
	}
	return Entry{}, false
}

func sameDayRange(start, end string) (int, int, bool) {
	a, ok := ParseTimeOfDay(start)
	if !ok {
		return 0, 0, false
	}
	b, ok := ParseTimeOfDay(end)
	if !ok {
		return 0, 0, false
	}
	s, e := a.Minutes(), b.Minutes()
	if e <= s {
		return 0, 0, false
	}
	return s, e, true
}
