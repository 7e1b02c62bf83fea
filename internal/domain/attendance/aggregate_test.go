package attendance

import (
	"testing"
	"time"

	"workforce/backend/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(day, hour, min int) time.Time {
	return time.Date(2025, time.June, day, hour, min, 0, 0, time.UTC)
}

func tp(t time.Time) *time.Time { return &t }

func TestSummarizeBucketsByTag(t *testing.T) {
	now := ts(10, 12, 0)
	sessions := []Session{
		{ComeTime: ts(2, 9, 0), LeaveTime: tp(ts(2, 17, 0)), Tag: entity.TagMorning},
		{ComeTime: ts(2, 18, 0), LeaveTime: tp(ts(2, 20, 0)), Tag: entity.TagOvertime},
	}

	s := Summarize(sessions, 2025, time.June, now)

	var day *DaySummary
	for i := range s.Days {
		if s.Days[i].Date.Day() == 2 {
			day = &s.Days[i]
		}
	}
	require.NotNil(t, day)

	assert.Equal(t, 480, day.RegularMinutes)
	assert.Equal(t, 120, day.OvertimeMinutes)
	assert.Equal(t, day.RegularMinutes+day.OvertimeMinutes, day.TotalMinutes)
	require.NotNil(t, day.LastLeave)
	assert.Equal(t, ts(2, 20, 0), *day.LastLeave)
	assert.Len(t, day.Events, 4)
	assert.Equal(t, "IN", day.Events[0].Kind)
}

func TestSummarizeOpenSessionAccruesAgainstNow(t *testing.T) {
	sessions := []Session{
		{ComeTime: ts(10, 9, 0), Tag: entity.TagSecond},
	}

	early := Summarize(sessions, 2025, time.June, ts(10, 10, 0))
	later := Summarize(sessions, 2025, time.June, ts(10, 11, 30))

	assert.Equal(t, 60, early.Days[0].RegularMinutes)
	assert.Equal(t, 150, later.Days[0].RegularMinutes)
}

func TestSummarizeStoredDurationWins(t *testing.T) {
	stored := 42
	sessions := []Session{
		{ComeTime: ts(3, 9, 0), LeaveTime: tp(ts(3, 17, 0)), DurationMinutes: &stored},
	}

	s := Summarize(sessions, 2025, time.June, ts(10, 12, 0))
	assert.Equal(t, 42, s.TotalMinutes)
}

func TestSummarizeIdempotent(t *testing.T) {
	now := ts(10, 12, 0)
	sessions := []Session{
		{ComeTime: ts(2, 9, 0), LeaveTime: tp(ts(2, 17, 0)), Tag: entity.TagMorning},
		{ComeTime: ts(4, 9, 30), LeaveTime: tp(ts(4, 18, 0)), Tag: entity.TagMorning, Status: entity.StatusLate},
	}

	first := Summarize(sessions, 2025, time.June, now)
	second := Summarize(sessions, 2025, time.June, now)
	assert.Equal(t, first, second)
}

func TestAbsenceFillCurrentMonth(t *testing.T) {
	// June 2025: the 6th is a Friday. With no sessions and today = the 10th,
	// exactly days 1-10 minus the Friday are synthesized, none beyond.
	now := ts(10, 12, 0)

	s := Summarize(nil, 2025, time.June, now)

	require.Len(t, s.Days, 9)
	for _, d := range s.Days {
		assert.Equal(t, entity.StatusAbsent, d.Status)
		assert.Zero(t, d.TotalMinutes)
		assert.NotEqual(t, time.Friday, d.Date.Weekday())
		assert.LessOrEqual(t, d.Date.Day(), 10)
	}
}

func TestAbsenceFillPastMonthCoversWholeMonth(t *testing.T) {
	now := ts(10, 12, 0)

	s := Summarize(nil, 2025, time.May, now)

	// May 2025 has 31 days and 5 Fridays.
	assert.Len(t, s.Days, 26)
}

func TestAbsenceFillFutureMonthIsEmpty(t *testing.T) {
	s := Summarize(nil, 2025, time.July, ts(10, 12, 0))
	assert.Empty(t, s.Days)
}

func TestDaysOrderedDescending(t *testing.T) {
	now := ts(10, 12, 0)
	sessions := []Session{
		{ComeTime: ts(2, 9, 0), LeaveTime: tp(ts(2, 17, 0))},
		{ComeTime: ts(9, 9, 0), LeaveTime: tp(ts(9, 17, 0))},
	}

	s := Summarize(sessions, 2025, time.June, now)
	for i := 1; i < len(s.Days); i++ {
		assert.True(t, s.Days[i-1].Date.After(s.Days[i].Date))
	}
}

func TestRankOrdersByTotalMinutesDescending(t *testing.T) {
	list := []EmployeeSummary{
		{EmployeeID: "E1", Summary: Summary{TotalMinutes: 100}},
		{EmployeeID: "E2", Summary: Summary{TotalMinutes: 300}},
		{EmployeeID: "E3", Summary: Summary{TotalMinutes: 200}},
	}

	Rank(list)

	assert.Equal(t, "E2", list[0].EmployeeID)
	assert.Equal(t, "E3", list[1].EmployeeID)
	assert.Equal(t, "E1", list[2].EmployeeID)
}

func TestElapsedClampsMorningAtCutoff(t *testing.T) {
	come := ts(5, 8, 30)

	minutes, expired := Elapsed(entity.TagMorning, come, ts(5, 18, 0))
	assert.True(t, expired)
	assert.Equal(t, 510, minutes) // 08:30 -> 17:00

	minutes, expired = Elapsed(entity.TagMorning, come, ts(5, 12, 0))
	assert.False(t, expired)
	assert.Equal(t, 210, minutes)
}

func TestElapsedDoesNotClampOtherShifts(t *testing.T) {
	come := ts(5, 13, 0)
	minutes, expired := Elapsed(entity.TagSecond, come, ts(5, 19, 0))
	assert.False(t, expired)
	assert.Equal(t, 360, minutes)
}

func TestLastLocationFromLatestSession(t *testing.T) {
	lat1, lng1 := 35.0, 139.0
	lat2, lng2 := 36.0, 140.0
	sessions := []Session{
		{ComeTime: ts(2, 9, 0), LeaveTime: tp(ts(2, 17, 0)), Latitude: &lat1, Longitude: &lng1},
		{ComeTime: ts(9, 9, 0), Latitude: &lat2, Longitude: &lng2},
	}

	s := Summarize(sessions, 2025, time.June, ts(10, 12, 0))
	require.NotNil(t, s.LastLocation)
	assert.Equal(t, 36.0, s.LastLocation.Latitude)
}
