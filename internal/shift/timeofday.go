// Package shift classifies clock-time ranges: durations, out-of-shift
// ("extra hours") detection and overlap between entries of the same owner.
//
// Every function is pure. Parsers report unparseable input with a false
// second return value instead of an error, and dependent computations fall
// back to a neutral result (zero hours, ExtraNotApplicable, no overlap).
package shift

import "fmt"

// MinutesPerDay is added to an end time that does not come after its start
// when a range is allowed to cross midnight.
const MinutesPerDay = 24 * 60

// TimeOfDay is a wall-clock time with minute resolution.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Minutes returns the minutes since midnight, in [0, 1439].
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// String formats t as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS". Each component must be exactly
// two digits. Seconds are accepted but ignored.
func ParseTimeOfDay(s string) (TimeOfDay, bool) {
	switch len(s) {
	case 5:
	case 8:
		if s[5] != ':' {
			return TimeOfDay{}, false
		}
		if _, ok := twoDigits(s[6:8]); !ok {
			return TimeOfDay{}, false
		}
	default:
		return TimeOfDay{}, false
	}
	if s[2] != ':' {
		return TimeOfDay{}, false
	}
	h, ok := twoDigits(s[0:2])
	if !ok || h > 23 {
		return TimeOfDay{}, false
	}
	m, ok := twoDigits(s[3:5])
	if !ok || m > 59 {
		return TimeOfDay{}, false
	}
	return TimeOfDay{Hour: h, Minute: m}, true
}

func twoDigits(s string) (int, bool) {
	if len(s) != 2 {
		return 0, false
	}
	d0, d1 := s[0], s[1]
	if d0 < '0' || d0 > '9' || d1 < '0' || d1 > '9' {
		return 0, false
	}
	return int(d0-'0')*10 + int(d1-'0'), true
}

// ShiftRange is a configured daily work window. End <= Start means the
// window crosses midnight.
type ShiftRange struct {
	Start TimeOfDay
	End   TimeOfDay
}

// CrossesMidnight reports whether the window ends on the next day.
func (r ShiftRange) CrossesMidnight() bool {
	return r.End.Minutes() <= r.Start.Minutes()
}

// Bounds returns the window in minutes, with the end pushed to the next day
// when the window crosses midnight.
func (r ShiftRange) Bounds() (start, end int) {
	start, end = r.Start.Minutes(), r.End.Minutes()
	if end <= start {
		end += MinutesPerDay
	}
	return start, end
}

func (r ShiftRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// ParseShiftRange parses exactly "HH:MM-HH:MM".
func ParseShiftRange(s string) (ShiftRange, bool) {
	if len(s) != 11 || s[5] != '-' {
		return ShiftRange{}, false
	}
	start, ok := ParseTimeOfDay(s[:5])
	if !ok {
		return ShiftRange{}, false
	}
	end, ok := ParseTimeOfDay(s[6:])
	if !ok {
		return ShiftRange{}, false
	}
	return ShiftRange{Start: start, End: end}, true
}
