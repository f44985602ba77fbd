package domain

import (
	"fmt"
	"time"
)

// Week math. Two different calendars are in play on purpose: WeekStart and
// WeekEnd are user-facing boundaries and use the local calendar, while
// WeekID is the storage grouping key and uses UTC so that every process
// agrees on the key regardless of its timezone.

// WeekStart returns the most recent Monday at local midnight at or before now.
func WeekStart(now time.Time) time.Time {
	isoDay := isoWeekday(now)
	monday := now.AddDate(0, 0, 1-isoDay)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, now.Location())
}

// WeekEnd returns the Monday at local midnight of the following week.
func WeekEnd(now time.Time) time.Time {
	return WeekStart(now).AddDate(0, 0, 7)
}

// WeekID returns the ISO-8601 week token "YYYY-Www" for the given instant.
// Per ISO 8601 the week belongs to the year of its Thursday, so the date is
// shifted to the Thursday of its week before the week number is computed.
// Week 53 is legitimate in long ISO years and is never clamped.
func WeekID(date time.Time) string {
	d := date.UTC()
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)

	thursday := d.AddDate(0, 0, 4-isoWeekday(d))
	yearStart := time.Date(thursday.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	daysSinceJan1 := int(thursday.Sub(yearStart) / (24 * time.Hour))
	weekNum := (daysSinceJan1 + 7) / 7 // ceil((daysSinceJan1 + 1) / 7)

	return fmt.Sprintf("%d-W%02d", thursday.Year(), weekNum)
}

// PreviousWeekID returns the week token of the week before the given instant.
func PreviousWeekID(now time.Time) string {
	return WeekID(now.AddDate(0, 0, -7))
}

// WeekLabel returns a human-readable label for the week, e.g. "Week of Feb 23, 2026".
func WeekLabel(now time.Time) string {
	return "Week of " + WeekStart(now).Format("Jan 2, 2006")
}

// IsCurrentWeek reports whether t falls within [WeekStart(now), WeekEnd(now)).
func IsCurrentWeek(t, now time.Time) bool {
	return !t.Before(WeekStart(now)) && t.Before(WeekEnd(now))
}

// isoWeekday maps time.Weekday to ISO numbering (Monday=1 .. Sunday=7).
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
