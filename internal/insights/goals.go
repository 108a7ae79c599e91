package insights

import (
	"mindmetrics/internal/calendar"
	"mindmetrics/internal/goal"
)

// EvaluatedGoal is a goal annotated for one period. Value and Met are both
// nil when the period has no data for the goal's metric.
type EvaluatedGoal struct {
	goal.Goal
	Value *float64 `json:"value"`
	Met   *bool    `json:"met"`
}

// Outcome is "met", "not_met" or "insufficient_data".
func (e EvaluatedGoal) Outcome() string {
	switch {
	case e.Met == nil:
		return "insufficient_data"
	case *e.Met:
		return "met"
	default:
		return "not_met"
	}
}

// ActiveGoals keeps Active goals whose range overlaps [start, end], in input order.
func ActiveGoals(goals []goal.Goal, start, end calendar.Date) []goal.Goal {
	active := make([]goal.Goal, 0, len(goals))
	for _, g := range goals {
		if g.Status != goal.StatusActive {
			continue
		}
		if !g.Overlaps(start, end) {
			continue
		}
		active = append(active, g)
	}
	return active
}

// EvaluateGoals scores the active goals of the period against the averages.
// Goals whose metric label is not in the rule table are left out; the
// second return value counts them.
func EvaluateGoals(goals []goal.Goal, avgs Averages, start, end calendar.Date, rules Rules) ([]EvaluatedGoal, int) {
	active := ActiveGoals(goals, start, end)
	evaluated := make([]EvaluatedGoal, 0, len(active))
	dropped := 0

	for _, g := range active {
		rule, ok := rules.Metrics[g.TargetMetric]
		if !ok {
			dropped++
			continue
		}

		avg, ok := avgs.Field(rule.Field)
		if !ok {
			evaluated = append(evaluated, EvaluatedGoal{Goal: g})
			continue
		}

		value := Round1(avg)
		met := rule.Met(avg, g.TargetValue)
		evaluated = append(evaluated, EvaluatedGoal{Goal: g, Value: &value, Met: &met})
	}
	return evaluated, dropped
}
