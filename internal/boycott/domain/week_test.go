package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "wednesday maps to its monday",
			now:  time.Date(2026, 2, 25, 15, 30, 0, 0, time.UTC),
			want: time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday maps to itself at midnight",
			now:  time.Date(2026, 2, 23, 23, 59, 59, 0, time.UTC),
			want: time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday maps back six days",
			now:  time.Date(2026, 3, 1, 1, 0, 0, 0, time.UTC),
			want: time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday midnight exactly",
			now:  time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekStart(tt.now)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, time.Monday, got.Weekday())
			assert.Equal(t, 0, got.Hour())
		})
	}
}

func TestWeekEndIsExactlySevenDaysAfterStart(t *testing.T) {
	for day := 0; day < 21; day++ {
		now := time.Date(2026, 2, 1, 9, 15, 0, 0, time.UTC).AddDate(0, 0, day)
		start := WeekStart(now)
		end := WeekEnd(now)
		assert.Equal(t, 7*24*time.Hour, end.Sub(start), "day offset %d", day)
		assert.Equal(t, time.Monday, end.Weekday())
	}
}

func TestWeekIDKnownValues(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{
			name: "mid february",
			date: time.Date(2026, 2, 25, 12, 0, 0, 0, time.UTC),
			want: "2026-W09",
		},
		{
			name: "new year day belongs to previous ISO year",
			date: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
			want: "2020-W53",
		},
		{
			name: "long year keeps week 53",
			date: time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC),
			want: "2020-W53",
		},
		{
			name: "first monday of the year",
			date: time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC),
			want: "2021-W01",
		},
		{
			name: "single digit week is zero padded",
			date: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			want: "2026-W03",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekID(tt.date))
		})
	}
}

func TestWeekIDFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{4}-W\d{2}$`)
	date := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 500; i++ {
		id := WeekID(date)
		require.Regexp(t, pattern, id)
		date = date.AddDate(0, 0, 5)
	}
}

func TestWeekIDIsTimezoneStable(t *testing.T) {
	// Same instant, different wall clocks: the grouping key must agree.
	instant := time.Date(2026, 2, 25, 23, 30, 0, 0, time.UTC)
	tokyo := time.FixedZone("UTC+9", 9*3600)
	assert.Equal(t, WeekID(instant), WeekID(instant.In(tokyo)))
}

func TestPreviousWeekID(t *testing.T) {
	now := time.Date(2026, 2, 25, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-W08", PreviousWeekID(now))

	// Across a year boundary.
	jan := time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2020-W53", PreviousWeekID(jan))
}

func TestWeekLabel(t *testing.T) {
	now := time.Date(2026, 2, 25, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "Week of Feb 23, 2026", WeekLabel(now))
}

func TestIsCurrentWeek(t *testing.T) {
	now := time.Date(2026, 2, 25, 12, 0, 0, 0, time.UTC)

	assert.True(t, IsCurrentWeek(now, now))
	assert.True(t, IsCurrentWeek(time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, IsCurrentWeek(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, IsCurrentWeek(time.Date(2026, 2, 22, 23, 59, 0, 0, time.UTC), now))
}
