package insights

import "mindmetrics/internal/dailylog"

type ChartPoint struct {
	Date   string `json:"date"`
	Stress int    `json:"stress"`
	Focus  int    `json:"focus"`
}

// BuildChart turns a newest-first selection into an oldest-first series.
func BuildChart(selected []dailylog.DailyLog) []ChartPoint {
	points := make([]ChartPoint, len(selected))
	for i := range selected {
		l := &selected[i]
		points[len(selected)-1-i] = ChartPoint{
			Date:   l.Date.MDY(),
			Stress: l.StressLevel,
			Focus:  l.FocusLevel,
		}
	}
	return points
}
