package insights

import (
	"strconv"

	"mindmetrics/internal/dailylog"
	"mindmetrics/internal/goal"
	"mindmetrics/internal/weather"
)

type Input struct {
	Logs   []dailylog.DailyLog
	Goals  []goal.Goal
	Period int
	Rules  Rules
}

// Result is everything the dashboard view renders for one period.
type Result struct {
	Period           int                         `json:"period"`
	NoData           bool                        `json:"noData"`
	StressAvg        float64                     `json:"stressAvg"`
	FocusAvg         float64                     `json:"focusAvg"`
	StressAvgDisplay string                      `json:"stressAvgDisplay"`
	FocusAvgDisplay  string                      `json:"focusAvgDisplay"`
	FieldAverages    map[dailylog.Field]*float64 `json:"fieldAverages"`
	ChartSeries      []ChartPoint                `json:"chartSeries"`
	SelectedLogs     []dailylog.DailyLog         `json:"selectedLogs"`
	EvaluatedGoals   []EvaluatedGoal             `json:"evaluatedGoals"`
	Recommendations  []string                    `json:"recommendations"`
	MoodShare        MoodShare                   `json:"moodShare"`
	Weather          *weather.Current            `json:"weather"`
	LatestLog        *dailylog.DailyLog          `json:"latestLog"`
	WeatherMessage   *string                     `json:"weatherMessage"`

	// DroppedGoals counts active goals skipped for an unknown metric label.
	DroppedGoals int `json:"-"`
}

func emptyResult(period int) Result {
	return Result{
		Period:           period,
		NoData:           true,
		StressAvgDisplay: formatAvg(0),
		FocusAvgDisplay:  formatAvg(0),
		FieldAverages:    map[dailylog.Field]*float64{},
		ChartSeries:      []ChartPoint{},
		SelectedLogs:     []dailylog.DailyLog{},
		EvaluatedGoals:   []EvaluatedGoal{},
		Recommendations:  []string{},
	}
}

// Build runs the log/goal part of the dashboard. Weather is attached
// separately with AttachWeather since it arrives on its own schedule.
func Build(in Input) Result {
	if len(in.Logs) == 0 {
		return emptyResult(in.Period)
	}

	selected := SelectPeriod(in.Logs, in.Period)
	avgs := Aggregate(selected, in.Rules.Fields())

	res := Result{
		Period:           in.Period,
		StressAvg:        avgs.StressAvg,
		FocusAvg:         avgs.FocusAvg,
		StressAvgDisplay: formatAvg(avgs.StressAvg),
		FocusAvgDisplay:  formatAvg(avgs.FocusAvg),
		FieldAverages:    avgs.Fields,
		ChartSeries:      BuildChart(selected),
		SelectedLogs:     selected,
		EvaluatedGoals:   []EvaluatedGoal{},
		MoodShare:        MoodShares(selected, in.Rules),
	}

	if start, end, ok := PeriodRange(selected); ok {
		res.EvaluatedGoals, res.DroppedGoals = EvaluateGoals(in.Goals, avgs, start, end, in.Rules)
	}

	res.Recommendations = Recommend(avgs, in.Rules)
	if msg, ok := MoodInsight(selected, in.Rules); ok {
		res.Recommendations = append(res.Recommendations, msg)
	}
	return res
}

// AttachWeather fills the weather slice of the result. A nil context or a
// context without weather leaves the "no weather data" state.
func AttachWeather(res *Result, latest *weather.LatestContext, rules Rules, pick Picker) {
	if latest == nil {
		return
	}
	res.LatestLog = latest.LatestLog
	if latest.Weather == nil {
		return
	}
	res.Weather = latest.Weather
	msg := WeatherInsight(latest.Weather.Condition, rules, pick)
	res.WeatherMessage = &msg
}

func formatAvg(v float64) string {
	return strconv.FormatFloat(Round1(v), 'f', 1, 64)
}
