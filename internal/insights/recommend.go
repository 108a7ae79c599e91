package insights

import "mindmetrics/internal/dailylog"

// Recommend applies the recommendation rules in order. Rules whose average
// is missing never fire.
func Recommend(avgs Averages, rules Rules) []string {
	recs := make([]string, 0, len(rules.Recommendations))
	for _, r := range rules.Recommendations {
		v, ok := avgs.Field(r.Field)
		if !ok {
			continue
		}
		if r.fires(v) {
			recs = append(recs, r.Message)
		}
	}
	return recs
}

// MoodShare is the percentage of logs in each mood bucket.
type MoodShare struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
}

func MoodShares(logs []dailylog.DailyLog, rules Rules) MoodShare {
	if len(logs) == 0 {
		return MoodShare{}
	}
	var pos, neg int
	for i := range logs {
		switch {
		case rules.PositiveMoods[logs[i].Mood]:
			pos++
		case rules.NegativeMoods[logs[i].Mood]:
			neg++
		}
	}
	total := float64(len(logs))
	return MoodShare{
		Positive: float64(pos) / total * 100,
		Negative: float64(neg) / total * 100,
	}
}

// MoodInsight returns the mood message when one bucket holds a majority.
func MoodInsight(logs []dailylog.DailyLog, rules Rules) (string, bool) {
	share := MoodShares(logs, rules)
	switch {
	case share.Negative > 50:
		return rules.NegativeMoodMessage, true
	case share.Positive > 50:
		return rules.PositiveMoodMessage, true
	}
	return "", false
}
