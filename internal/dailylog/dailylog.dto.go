package dailylog

import "mindmetrics/internal/calendar"

// Input is the create/update payload. The owner comes from the token, never the body.
type Input struct {
	Date          calendar.Date `json:"date" validate:"required"`
	Mood          Mood          `json:"mood" validate:"required,oneof=Happy Calm Confident Excited Motivated Sad Frustrated Stressed Anxious Emotional Angry Depressed"`
	StressLevel   int           `json:"stressLevel" validate:"min=1,max=5"`
	FocusLevel    int           `json:"focusLevel" validate:"min=1,max=5"`
	SleepHours    *float64      `json:"sleepHours,omitempty" validate:"omitempty,min=0,max=24"`
	ExerciseMin   *float64      `json:"exerciseMin,omitempty" validate:"omitempty,min=0,max=240,step5"`
	MeditationMin *float64      `json:"meditationMin,omitempty" validate:"omitempty,min=0,max=120,step5"`
	WaterCups     *float64      `json:"waterCups,omitempty" validate:"omitempty,min=0"`
	DietScore     *float64      `json:"dietScore,omitempty" validate:"omitempty,min=1,max=5"`
	ScreenHours   *float64      `json:"screenHours,omitempty" validate:"omitempty,min=0,max=24"`
	WorkHours     *float64      `json:"workHours,omitempty" validate:"omitempty,min=0,max=24"`
	HobbyMin      *float64      `json:"hobbyMin,omitempty" validate:"omitempty,min=0,max=240,step5"`
	Location      string        `json:"location" validate:"max=120"`
	Weather       string        `json:"weather" validate:"max=120"`
	Notes         string        `json:"notes" validate:"max=2000"`
}

// CreateResponse wraps a created log with the same-day advisory, if any.
type CreateResponse struct {
	Log     *DailyLog `json:"dailyLog"`
	Warning string    `json:"warning,omitempty"`
}

const DuplicateDayWarning = "A daily log already exists for this date"

// Apply copies the payload onto l, keeping identity and ownership.
func (in *Input) Apply(l *DailyLog) {
	l.Date = in.Date
	l.Mood = in.Mood
	l.StressLevel = in.StressLevel
	l.FocusLevel = in.FocusLevel
	l.SleepHours = in.SleepHours
	l.ExerciseMin = in.ExerciseMin
	l.MeditationMin = in.MeditationMin
	l.WaterCups = in.WaterCups
	l.DietScore = in.DietScore
	l.ScreenHours = in.ScreenHours
	l.WorkHours = in.WorkHours
	l.HobbyMin = in.HobbyMin
	l.Location = in.Location
	l.Weather = in.Weather
	l.Notes = in.Notes
}
