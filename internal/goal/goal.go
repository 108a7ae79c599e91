package goal

import (
	"time"

	"mindmetrics/internal/calendar"
	"mindmetrics/internal/dailylog"
)

type Status string

const (
	StatusActive    Status = "Active"
	StatusPaused    Status = "Paused"
	StatusCompleted Status = "Completed"
)

// DefaultMetric is used when a goal is created without a target metric.
const DefaultMetric = "Water Cups"

type Goal struct {
	ID           string           `json:"_id" db:"id"`
	UserID       dailylog.OwnerID `json:"userId" db:"user_id"`
	Title        string           `json:"title" db:"title"`
	Description  string           `json:"description" db:"description"`
	TargetMetric string           `json:"targetMetric" db:"target_metric"`
	TargetValue  float64          `json:"targetValue" db:"target_value"`
	StartDate    calendar.Date    `json:"startDate" db:"start_date"`
	EndDate      calendar.Date    `json:"endDate" db:"end_date"`
	Status       Status           `json:"status" db:"status"`
	CreatedAt    time.Time        `json:"createdAt,omitempty" db:"created_at"`
}

// Overlaps reports whether the goal's date range intersects [start, end].
func (g *Goal) Overlaps(start, end calendar.Date) bool {
	return !g.StartDate.After(end) && !g.EndDate.Before(start)
}
