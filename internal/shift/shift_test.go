package shift_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/cora-hours/internal/shift"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in     string
		want   shift.TimeOfDay
		wantOK bool
	}{
		{"23:59", shift.TimeOfDay{Hour: 23, Minute: 59}, true},
		{"00:00", shift.TimeOfDay{}, true},
		{"08:30:15", shift.TimeOfDay{Hour: 8, Minute: 30}, true},
		{"08:30:99", shift.TimeOfDay{Hour: 8, Minute: 30}, true},
		{"24:00", shift.TimeOfDay{}, false},
		{"12:60", shift.TimeOfDay{}, false},
		{"9:5", shift.TimeOfDay{}, false},
		{"9:05", shift.TimeOfDay{}, false},
		{"0900", shift.TimeOfDay{}, false},
		{"ab:cd", shift.TimeOfDay{}, false},
		{"08:30:", shift.TimeOfDay{}, false},
		{"08:30-15", shift.TimeOfDay{}, false},
		{"", shift.TimeOfDay{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := shift.ParseTimeOfDay(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDayMinutes(t *testing.T) {
	assert.Equal(t, 0, shift.TimeOfDay{}.Minutes())
	assert.Equal(t, 1439, shift.TimeOfDay{Hour: 23, Minute: 59}.Minutes())
	assert.Equal(t, "07:05", shift.TimeOfDay{Hour: 7, Minute: 5}.String())
}

func TestParseShiftRange(t *testing.T) {
	r, ok := shift.ParseShiftRange("08:00-18:00")
	require.True(t, ok)
	assert.Equal(t, shift.TimeOfDay{Hour: 8}, r.Start)
	assert.Equal(t, shift.TimeOfDay{Hour: 18}, r.End)
	assert.False(t, r.CrossesMidnight())

	r, ok = shift.ParseShiftRange("22:00-06:00")
	require.True(t, ok)
	assert.True(t, r.CrossesMidnight())
	start, end := r.Bounds()
	assert.Equal(t, 22*60, start)
	assert.Equal(t, 30*60, end)
	assert.Equal(t, "22:00-06:00", r.String())

	for _, bad := range []string{"bad-shift", "08:00 - 18:00", "08:00-18:00x", "8:00-18:00", "08:00-24:00", "08:00:00-18:00", ""} {
		_, ok := shift.ParseShiftRange(bad)
		assert.False(t, ok, bad)
	}
}

func TestDurationHours(t *testing.T) {
	tests := []struct {
		start, end string
		want       float64
	}{
		{"08:00", "09:30", 1.5},
		{"08:00", "08:20", 0.33},
		{"08:00:00", "17:00:00", 9},
		{"09:00", "08:00", 0},
		{"09:00", "09:00", 0},
		{"23:00", "01:00", 0},
		{"bad", "09:00", 0},
		{"08:00", "", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, shift.DurationHours(tt.start, tt.end), "%s-%s", tt.start, tt.end)
	}
}

func TestClassifyExtraHours(t *testing.T) {
	tests := []struct {
		name               string
		start, end, window string
		want               shift.ExtraHours
	}{
		{"inside overnight shift", "22:00", "02:00", "22:00-06:00", shift.ExtraNo},
		{"starts before shift", "21:00", "23:00", "22:00-06:00", shift.ExtraYes},
		{"bad shift", "08:00", "09:00", "bad-shift", shift.ExtraNotApplicable},
		{"bad start", "8:00", "09:00", "08:00-18:00", shift.ExtraNotApplicable},
		{"inside day shift", "08:00", "18:00", "08:00-18:00", shift.ExtraNo},
		{"ends after day shift", "17:00", "18:30", "08:00-18:00", shift.ExtraYes},
		{"crosses midnight past day shift", "17:00", "01:00", "08:00-18:00", shift.ExtraYes},
		{"early morning against overnight shift", "01:00", "03:00", "22:00-06:00", shift.ExtraYes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shift.ClassifyExtraHours(tt.start, tt.end, tt.window))
		})
	}
}

func TestDurationAndExtraHoursDisagreeAcrossMidnight(t *testing.T) {
	assert.Equal(t, 0.0, shift.DurationHours("22:00", "02:00"))
	assert.Equal(t, shift.ExtraNo, shift.ClassifyExtraHours("22:00", "02:00", "22:00-06:00"))
}

func TestPureFunctionsAreIdempotent(t *testing.T) {
	for n := 0; n < 3; n++ {
		assert.Equal(t, 1.5, shift.DurationHours("08:00", "09:30"))
		assert.Equal(t, shift.ExtraYes, shift.ClassifyExtraHours("21:00", "23:00", "22:00-06:00"))
		_, ok := shift.ParseTimeOfDay("24:00")
		assert.False(t, ok)
	}
}
