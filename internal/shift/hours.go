package shift

import "math"

// ExtraHours is the out-of-shift classification of an entry.
type ExtraHours string

const (
	ExtraYes           ExtraHours = "Yes"
	ExtraNo            ExtraHours = "No"
	ExtraNotApplicable ExtraHours = "Not applicable"
)

// DurationHours returns end-start in hours rounded to two decimals.
// A single entry must start and end on the same clock day: an end that is not
// after the start yields 0, as does any unparseable time.
func DurationHours(start, end string) float64 {
	a, ok := ParseTimeOfDay(start)
	if !ok {
		return 0
	}
	b, ok := ParseTimeOfDay(end)
	if !ok {
		return 0
	}
	mins := b.Minutes() - a.Minutes()
	if mins <= 0 {
		return 0
	}
	return RoundHours(float64(mins) / 60)
}

// RoundHours rounds h to two decimals.
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

// ClassifyExtraHours reports whether the entry start-end falls outside the
// shift window. Both the entry and the shift may cross midnight; an entry
// that starts before the shift start or ends after the shift end is outside.
func ClassifyExtraHours(start, end, shift string) ExtraHours {
	a, ok := ParseTimeOfDay(start)
	if !ok {
		return ExtraNotApplicable
	}
	b, ok := ParseTimeOfDay(end)
	if !ok {
		return ExtraNotApplicable
	}
	r, ok := ParseShiftRange(shift)
	if !ok {
		return ExtraNotApplicable
	}

	entryStart, entryEnd := a.Minutes(), b.Minutes()
	if entryEnd <= entryStart {
		entryEnd += MinutesPerDay
	}
	shiftStart, shiftEnd := r.Bounds()

	if entryStart < shiftStart || entryEnd > shiftEnd {
		return ExtraYes
	}
	return ExtraNo
}
