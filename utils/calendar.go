package utils

import "time"

// CalendarDay is one cell of the month grid.
type CalendarDay struct {
	Date    string `json:"date"` // "2006-01-02"
	Day     int    `json:"day"`
	InMonth bool   `json:"inMonth"` // false for the padding days of adjacent months
}

// MonthGrid returns the calendar cells for a month as whole weeks starting
// on Monday, padded with adjacent-month days on both ends.
func MonthGrid(year int, month time.Month) [][]CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	// Walk back to Monday.
	start := first
	for start.Weekday() != time.Monday {
		start = start.AddDate(0, 0, -1)
	}

	next := first.AddDate(0, 1, 0)

	var weeks [][]CalendarDay
	for cur := start; cur.Before(next); {
		week := make([]CalendarDay, 0, 7)
		for i := 0; i < 7; i++ {
			week = append(week, CalendarDay{
				Date:    cur.Format("2006-01-02"),
				Day:     cur.Day(),
				InMonth: cur.Month() == month,
			})
			cur = cur.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}
