package insights

import (
	"time"

	"mindmetrics/internal/calendar"
	"mindmetrics/internal/dailylog"
	"mindmetrics/internal/goal"
)

func f64(v float64) *float64 { return &v }

func day(d int) calendar.Date {
	return calendar.NewDate(2024, time.May, d)
}

func logOn(d, stress, focus int) dailylog.DailyLog {
	return dailylog.DailyLog{
		ID:          "log-" + day(d).String(),
		UserID:      "user-1",
		Date:        day(d),
		Mood:        dailylog.MoodCalm,
		StressLevel: stress,
		FocusLevel:  focus,
	}
}

func activeGoal(metric string, target float64, start, end int) goal.Goal {
	return goal.Goal{
		ID:           "goal-" + metric,
		UserID:       "user-1",
		Title:        metric + " goal",
		TargetMetric: metric,
		TargetValue:  target,
		StartDate:    day(start),
		EndDate:      day(end),
		Status:       goal.StatusActive,
	}
}
