package insights

import (
	"math"

	"mindmetrics/internal/dailylog"
)

// Averages are the period means. StressAvg and FocusAvg are 0 for an empty
// period rather than undefined. A nil entry in Fields means no log in the
// period reported that field.
type Averages struct {
	StressAvg float64                     `json:"stressAvg"`
	FocusAvg  float64                     `json:"focusAvg"`
	Fields    map[dailylog.Field]*float64 `json:"fieldAverages"`
}

// Field returns the average for f, or false when there is not enough data.
func (a Averages) Field(f dailylog.Field) (float64, bool) {
	switch f {
	case dailylog.FieldStressLevel:
		return a.StressAvg, true
	case dailylog.FieldFocusLevel:
		return a.FocusAvg, true
	}
	v := a.Fields[f]
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Aggregate computes the period means over logs for stress, focus and each of fields.
func Aggregate(logs []dailylog.DailyLog, fields []dailylog.Field) Averages {
	var stress, focus float64
	for i := range logs {
		stress += float64(logs[i].StressLevel)
		focus += float64(logs[i].FocusLevel)
	}
	count := float64(max(len(logs), 1))

	avgs := Averages{
		StressAvg: stress / count,
		FocusAvg:  focus / count,
		Fields:    make(map[dailylog.Field]*float64, len(fields)),
	}

	for _, f := range fields {
		var sum float64
		var n int
		for i := range logs {
			v, ok := logs[i].Metric(f)
			if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			sum += v
			n++
		}
		if n == 0 {
			avgs.Fields[f] = nil
			continue
		}
		mean := sum / float64(n)
		avgs.Fields[f] = &mean
	}
	return avgs
}

// Round1 rounds to one decimal place for display.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
