package hours_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/cora-hours/internal/hours"
	"github.com/Tiliavir/cora-hours/internal/model"
	"github.com/Tiliavir/cora-hours/internal/shift"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, hours.StatusOK, hours.StatusOf(9, 9))
	assert.Equal(t, hours.StatusOK, hours.StatusOf(10.5, 9))
	assert.Equal(t, hours.StatusWarn, hours.StatusOf(8.99, 9))
	assert.Equal(t, hours.StatusNone, hours.StatusOf(0, 9))
}

func TestDailyTotals(t *testing.T) {
	entries := []model.Entry{
		{ID: 1, Date: "2024-01-11", Hours: 4.5},
		{ID: 2, Date: "2024-01-10T00:00:00", Hours: 5, ExtraHours: "Yes"},
		{ID: 3, Date: "2024-01-10", Hours: 4},
		{ID: 4, Date: "", Hours: 3},
	}
	days := hours.DailyTotals(entries, 9)
	require.Len(t, days, 2)

	assert.Equal(t, hours.DayTotal{Date: "2024-01-10", Hours: 9, Entries: 2, Extra: 1, Status: hours.StatusOK}, days[0])
	assert.True(t, days[0].Complete())
	assert.Equal(t, "2024-01-11", days[1].Date)
	assert.Equal(t, hours.StatusWarn, days[1].Status)
	assert.False(t, days[1].Complete())
}

func TestMonthCalendar(t *testing.T) {
	totals := []hours.DayTotal{
		{Date: "2024-02-01", Hours: 9, Status: hours.StatusOK},
		{Date: "2024-02-02", Hours: 3.25, Status: hours.StatusWarn},
		{Date: "2024-03-01", Hours: 9, Status: hours.StatusOK},
	}
	cal := hours.MonthCalendar(time.Date(2024, 2, 14, 10, 0, 0, 0, time.UTC), totals)

	assert.Equal(t, 3, cal.Offset, "1 Feb 2024 is a Thursday")
	require.Len(t, cal.Days, 29)
	assert.Equal(t, hours.StatusOK, cal.Days[0].Status)
	assert.Equal(t, hours.StatusWarn, cal.Days[1].Status)
	assert.Equal(t, hours.StatusNone, cal.Days[2].Status)
	assert.Equal(t, "2024-02-29", cal.Days[28].Date)
	assert.Equal(t, 12.25, cal.Total)

	monday := hours.MonthCalendar(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), nil)
	assert.Equal(t, 0, monday.Offset)
	sunday := hours.MonthCalendar(time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC), nil)
	assert.Equal(t, 6, sunday.Offset)
}

func TestWeekTotals(t *testing.T) {
	days := []hours.DayTotal{
		{Date: "2024-01-05", Hours: 9, Status: hours.StatusOK},
		{Date: "2024-01-08", Hours: 8.5, Extra: 1, Status: hours.StatusWarn},
		{Date: "2024-01-09", Hours: 9.25, Status: hours.StatusOK},
	}
	weeks := hours.WeekTotals(days)
	require.Len(t, weeks, 2)
	assert.Equal(t, hours.WeekTotal{Label: "2024-W01", Hours: 9, Days: 1, Complete: 1}, weeks[0])
	assert.Equal(t, hours.WeekTotal{Label: "2024-W02", Hours: 17.75, Days: 2, Complete: 1, Extra: 1}, weeks[1])
}

func TestOwnedByAndGroupByOwner(t *testing.T) {
	entries := []model.Entry{
		{ID: 1, ConsultantID: 5, Username: "ana"},
		{ID: 2, ConsultantID: 6, Username: "juan"},
		{ID: 3, Username: "ANA"},
		{ID: 4, ConsultantID: 5},
	}

	mine := hours.OwnedBy(entries, shift.NewOwner(5, "ana", ""))
	ids := make([]int64, 0, len(mine))
	for _, e := range mine {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []int64{1, 3, 4}, ids)

	groups := hours.GroupByOwner(entries)
	require.Len(t, groups, 2)
	assert.Equal(t, "ana", groups[0].Login)
	assert.Len(t, groups[0].Entries, 3)
	assert.Equal(t, "juan", groups[1].Login)
}

func TestTargetFor(t *testing.T) {
	reduced := []string{"Maria.Lopez", " pedro "}
	assert.Equal(t, 8.0, hours.TargetFor("maria.lopez", reduced, 0, 0))
	assert.Equal(t, 8.0, hours.TargetFor("PEDRO", reduced, 9, 8))
	assert.Equal(t, 9.0, hours.TargetFor("ana", reduced, 0, 0))
	assert.Equal(t, 7.5, hours.TargetFor("ana", nil, 7.5, 6))
	assert.Equal(t, 9.0, hours.TargetFor("", reduced, 0, 0))
}

func TestSessionRoles(t *testing.T) {
	assert.True(t, hours.Session{Role: "admin_basis"}.IsAdmin())
	assert.False(t, hours.Session{Role: "CONSULTOR"}.IsAdmin())
	assert.Equal(t, hours.DefaultDailyTarget, hours.Session{}.Target())
	assert.Equal(t, 8.0, hours.Session{DailyTarget: 8}.Target())
}

func TestFilter(t *testing.T) {
	entries := []model.Entry{
		{ID: 1, Date: "2024-01-10", Client: "ACME", Task: "Soporte", Consultant: "Ana"},
		{ID: 2, Date: "2024-01-10T00:00:00", Client: "Globex", Task: "Soporte", Consultant: "Juan"},
		{ID: 3, Date: "2024-01-15", Client: "ACME", Task: "Reunion", Consultant: "Ana"},
	}

	tests := []struct {
		name   string
		filter hours.Filter
		want   []int64
	}{
		{"empty", hours.Filter{}, []int64{1, 2, 3}},
		{"date", hours.Filter{Date: "2024-01-10"}, []int64{1, 2}},
		{"client", hours.Filter{Client: "ACME"}, []int64{1, 3}},
		{"task and consultant", hours.Filter{Task: "Soporte", Consultant: "Juan"}, []int64{2}},
		{
			"range",
			hours.Filter{
				From: time.Date(2024, 1, 14, 0, 0, 0, 0, time.Local),
				To:   time.Date(2024, 1, 20, 23, 59, 59, 0, time.Local),
			},
			[]int64{3},
		},
		{"no match", hours.Filter{Client: "Initech"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int64
			for _, e := range tt.filter.Apply(entries) {
				got = append(got, e.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
