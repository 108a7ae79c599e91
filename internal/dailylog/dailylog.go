package dailylog

import (
	"bytes"
	"encoding/json"
	"time"

	"mindmetrics/internal/calendar"
)

type Mood string

const (
	MoodHappy      Mood = "Happy"
	MoodCalm       Mood = "Calm"
	MoodConfident  Mood = "Confident"
	MoodExcited    Mood = "Excited"
	MoodMotivated  Mood = "Motivated"
	MoodSad        Mood = "Sad"
	MoodFrustrated Mood = "Frustrated"
	MoodStressed   Mood = "Stressed"
	MoodAnxious    Mood = "Anxious"
	MoodEmotional  Mood = "Emotional"
	MoodAngry      Mood = "Angry"
	MoodDepressed  Mood = "Depressed"
)

// Moods lists every mood in the order the log form offers them.
var Moods = []Mood{
	MoodHappy, MoodCalm, MoodConfident, MoodExcited, MoodMotivated,
	MoodSad, MoodFrustrated, MoodStressed, MoodAnxious, MoodEmotional, MoodAngry, MoodDepressed,
}

// Field names a numeric habit metric of a DailyLog.
type Field string

const (
	FieldStressLevel   Field = "stressLevel"
	FieldFocusLevel    Field = "focusLevel"
	FieldSleepHours    Field = "sleepHours"
	FieldExerciseMin   Field = "exerciseMin"
	FieldMeditationMin Field = "meditationMin"
	FieldWaterCups     Field = "waterCups"
	FieldDietScore     Field = "dietScore"
	FieldHobbyMin      Field = "hobbyMin"
	FieldWorkHours     Field = "workHours"
	FieldScreenHours   Field = "screenHours"
)

// OwnerID is the owning user's id. The upstream API sends either the raw id
// or a populated user object; both decode to the id.
type OwnerID string

func (o *OwnerID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*o = ""
		return nil
	}
	if len(data) > 0 && data[0] == '{' {
		var populated struct {
			ID string `json:"_id"`
		}
		if err := json.Unmarshal(data, &populated); err != nil {
			return err
		}
		*o = OwnerID(populated.ID)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*o = OwnerID(s)
	return nil
}

type DailyLog struct {
	ID            string        `json:"_id" db:"id"`
	UserID        OwnerID       `json:"userId" db:"user_id"`
	Date          calendar.Date `json:"date" db:"date"`
	Mood          Mood          `json:"mood" db:"mood"`
	StressLevel   int           `json:"stressLevel" db:"stress_level"`
	FocusLevel    int           `json:"focusLevel" db:"focus_level"`
	SleepHours    *float64      `json:"sleepHours,omitempty" db:"sleep_hours"`
	ExerciseMin   *float64      `json:"exerciseMin,omitempty" db:"exercise_min"`
	MeditationMin *float64      `json:"meditationMin,omitempty" db:"meditation_min"`
	WaterCups     *float64      `json:"waterCups,omitempty" db:"water_cups"`
	DietScore     *float64      `json:"dietScore,omitempty" db:"diet_score"`
	ScreenHours   *float64      `json:"screenHours,omitempty" db:"screen_hours"`
	WorkHours     *float64      `json:"workHours,omitempty" db:"work_hours"`
	HobbyMin      *float64      `json:"hobbyMin,omitempty" db:"hobby_min"`
	Location      string        `json:"location" db:"location"`
	Weather       string        `json:"weather" db:"weather"`
	Notes         string        `json:"notes" db:"notes"`
	CreatedAt     time.Time     `json:"createdAt,omitempty" db:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt,omitempty" db:"updated_at"`
}

// Metric returns the value of a numeric field and whether the log carries it.
func (l *DailyLog) Metric(f Field) (float64, bool) {
	var v *float64
	switch f {
	case FieldStressLevel:
		return float64(l.StressLevel), true
	case FieldFocusLevel:
		return float64(l.FocusLevel), true
	case FieldSleepHours:
		v = l.SleepHours
	case FieldExerciseMin:
		v = l.ExerciseMin
	case FieldMeditationMin:
		v = l.MeditationMin
	case FieldWaterCups:
		v = l.WaterCups
	case FieldDietScore:
		v = l.DietScore
	case FieldScreenHours:
		v = l.ScreenHours
	case FieldWorkHours:
		v = l.WorkHours
	case FieldHobbyMin:
		v = l.HobbyMin
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}
