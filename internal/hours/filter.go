package hours

import (
	"time"

	"github.com/Tiliavir/cora-hours/internal/model"
	"github.com/Tiliavir/cora-hours/internal/timecalc"
)

// Filter narrows an entry list. Empty fields match everything; set fields
// must match exactly.
type Filter struct {
	Date       string
	Client     string
	Task       string
	Consultant string
	From, To   time.Time
}

// Apply returns the matching entries, in order.
func (f Filter) Apply(entries []model.Entry) []model.Entry {
	var out []model.Entry
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// Match reports whether e passes the filter.
func (f Filter) Match(e model.Entry) bool {
	if f.Date != "" && e.DateKey() != timecalc.DateKey(f.Date) {
		return false
	}
	if f.Client != "" && e.Client != f.Client {
		return false
	}
	if f.Task != "" && e.Task != f.Task {
		return false
	}
	if f.Consultant != "" && e.Consultant != f.Consultant {
		return false
	}
	if !f.From.IsZero() && !f.To.IsZero() && !timecalc.InRange(e.Date, f.From, f.To) {
		return false
	}
	return true
}
