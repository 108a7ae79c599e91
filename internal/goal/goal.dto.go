package goal

import "mindmetrics/internal/calendar"

type Input struct {
	Title        string        `json:"title" validate:"required,max=100"`
	Description  string        `json:"description" validate:"required,max=1000"`
	TargetMetric string        `json:"targetMetric" validate:"omitempty,goalmetric"`
	TargetValue  float64       `json:"targetValue" validate:"gte=0"`
	StartDate    calendar.Date `json:"startDate" validate:"required"`
	EndDate      calendar.Date `json:"endDate" validate:"required"`
	Status       Status        `json:"status" validate:"omitempty,oneof=Active Paused Completed"`
}

// WithDefaults fills the status and metric a new goal gets when left blank.
func (in Input) WithDefaults() Input {
	if in.Status == "" {
		in.Status = StatusActive
	}
	if in.TargetMetric == "" {
		in.TargetMetric = DefaultMetric
	}
	return in
}

func (in *Input) Apply(g *Goal) {
	g.Title = in.Title
	g.Description = in.Description
	g.TargetMetric = in.TargetMetric
	g.TargetValue = in.TargetValue
	g.StartDate = in.StartDate
	g.EndDate = in.EndDate
	g.Status = in.Status
}
