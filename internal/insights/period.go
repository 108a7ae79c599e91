package insights

import (
	"slices"

	"mindmetrics/internal/calendar"
	"mindmetrics/internal/dailylog"
)

// Periods are the window sizes the dashboard offers, counted in logs.
var Periods = []int{3, 7, 14, 30}

func ValidPeriod(n int) bool {
	return slices.Contains(Periods, n)
}

// SelectPeriod returns the n most recently dated logs, newest first. Logs
// sharing a date keep their input order. The input slice is not modified.
func SelectPeriod(logs []dailylog.DailyLog, n int) []dailylog.DailyLog {
	if n <= 0 || len(logs) == 0 {
		return []dailylog.DailyLog{}
	}

	sorted := slices.Clone(logs)
	slices.SortStableFunc(sorted, func(a, b dailylog.DailyLog) int {
		return b.Date.Compare(a.Date.Time)
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// PeriodRange is the span covered by a newest-first selection.
func PeriodRange(selected []dailylog.DailyLog) (start, end calendar.Date, ok bool) {
	if len(selected) == 0 {
		return calendar.Date{}, calendar.Date{}, false
	}
	return selected[len(selected)-1].Date, selected[0].Date, true
}
