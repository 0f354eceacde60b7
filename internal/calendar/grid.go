package calendar

import "time"

// DaysPerWeek is the number of columns in the grid.
const DaysPerWeek = 7

// mondayOffset is how many days t lies after the Monday of its week.
func mondayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % DaysPerWeek
}

// MonthDates lays out the cursor's month as complete Monday-first weeks.
// The first row starts on the Monday on or before the 1st, the last row
// ends on the Sunday on or after the last day; padding days belong to the
// adjacent months.
func MonthDates(c Cursor) [][]time.Time {
	first := c.First()
	last := c.Last()

	start := first.AddDate(0, 0, -mondayOffset(first))
	end := last.AddDate(0, 0, DaysPerWeek-1-mondayOffset(last))

	var weeks [][]time.Time
	for day := start; !day.After(end); {
		week := make([]time.Time, 0, DaysPerWeek)
		for i := 0; i < DaysPerWeek; i++ {
			week = append(week, day)
			day = day.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}
