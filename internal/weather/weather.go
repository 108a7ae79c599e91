package weather

import "mindmetrics/internal/dailylog"

// Current is the weather at a log's location.
type Current struct {
	Location  string  `json:"location"`
	Temp      float64 `json:"temp"`
	Condition string  `json:"condition"`
	Icon      string  `json:"icon"`
}

// LatestContext pairs the user's most recent log with the weather at its location.
type LatestContext struct {
	LatestLog *dailylog.DailyLog `json:"latestLog"`
	Weather   *Current           `json:"weather"`
}
