// Package insights turns a user's daily logs and goals into the dashboard:
// period selection, averages, goal evaluation, recommendations and the
// stress/focus chart. Everything here is a pure function of its inputs; the
// lookup tables live in Rules so callers and tests can swap them.
package insights

import "mindmetrics/internal/dailylog"

// Direction says which side of the target counts as success.
type Direction string

const (
	AtLeast Direction = "gte"
	AtMost  Direction = "lte"
)

// MetricRule binds a goal metric label to the log field it reads.
type MetricRule struct {
	Field     dailylog.Field
	Direction Direction
}

// Met compares an average against a goal target.
func (r MetricRule) Met(avg, target float64) bool {
	if r.Direction == AtMost {
		return avg <= target
	}
	return avg >= target
}

type Comparison string

const (
	Above Comparison = "gt"
	Below Comparison = "lt"
)

// RecommendationRule fires Message when the average of Field crosses Threshold.
type RecommendationRule struct {
	Field     dailylog.Field
	When      Comparison
	Threshold float64
	Message   string
}

func (r RecommendationRule) fires(v float64) bool {
	if r.When == Above {
		return v > r.Threshold
	}
	return v < r.Threshold
}

type WeatherCategory string

const (
	WeatherGood    WeatherCategory = "good"
	WeatherNeutral WeatherCategory = "neutral"
	WeatherRain    WeatherCategory = "rain"
	WeatherSnow    WeatherCategory = "snow"
	WeatherExtreme WeatherCategory = "extreme"
)

// WeatherCategories is the lookup order for condition classification.
var WeatherCategories = []WeatherCategory{WeatherGood, WeatherNeutral, WeatherRain, WeatherSnow, WeatherExtreme}

type Rules struct {
	// Metrics is keyed by the goal's targetMetric label.
	Metrics map[string]MetricRule

	Recommendations []RecommendationRule

	PositiveMoods map[dailylog.Mood]bool
	NegativeMoods map[dailylog.Mood]bool

	PositiveMoodMessage string
	NegativeMoodMessage string

	// WeatherConditions holds lower-case condition strings per category.
	WeatherConditions map[WeatherCategory][]string
	WeatherMessages   map[WeatherCategory][]string
	UnusualWeather    string
}

// Fields returns the distinct log fields referenced by the metric table,
// in a fixed order.
func (r Rules) Fields() []dailylog.Field {
	order := []dailylog.Field{
		dailylog.FieldSleepHours, dailylog.FieldExerciseMin, dailylog.FieldMeditationMin,
		dailylog.FieldWaterCups, dailylog.FieldDietScore, dailylog.FieldHobbyMin,
		dailylog.FieldWorkHours, dailylog.FieldScreenHours,
	}
	used := make(map[dailylog.Field]bool, len(r.Metrics))
	for _, m := range r.Metrics {
		used[m.Field] = true
	}

	fields := make([]dailylog.Field, 0, len(used))
	for _, f := range order {
		if used[f] {
			fields = append(fields, f)
			delete(used, f)
		}
	}
	// fields outside the known order, e.g. from a test fixture
	for _, m := range r.Metrics {
		if used[m.Field] {
			fields = append(fields, m.Field)
			delete(used, m.Field)
		}
	}
	return fields
}

// DefaultRules is the production rule set.
func DefaultRules() Rules {
	return Rules{
		Metrics: map[string]MetricRule{
			"Sleep Hours":        {Field: dailylog.FieldSleepHours, Direction: AtLeast},
			"Exercise Minutes":   {Field: dailylog.FieldExerciseMin, Direction: AtLeast},
			"Meditation Minutes": {Field: dailylog.FieldMeditationMin, Direction: AtLeast},
			"Water Cups":         {Field: dailylog.FieldWaterCups, Direction: AtLeast},
			"Diet Score":         {Field: dailylog.FieldDietScore, Direction: AtLeast},
			"Hobby Minutes":      {Field: dailylog.FieldHobbyMin, Direction: AtLeast},
			"Work Hours":         {Field: dailylog.FieldWorkHours, Direction: AtMost},
			"Screen Minutes":     {Field: dailylog.FieldScreenHours, Direction: AtMost},
		},
		Recommendations: []RecommendationRule{
			{dailylog.FieldStressLevel, Above, 3.5, "Your stress has been high lately. Try short breathing breaks or a walk outside."},
			{dailylog.FieldFocusLevel, Below, 3, "Focus has been low. Consider blocking distraction-free time for deep work."},
			{dailylog.FieldSleepHours, Below, 7, "You're averaging under 7 hours of sleep. Aim for a consistent bedtime."},
			{dailylog.FieldExerciseMin, Below, 20, "Try to fit in at least 20 minutes of movement each day."},
			{dailylog.FieldWaterCups, Below, 6, "Stay hydrated: aim for at least 6 cups of water a day."},
			{dailylog.FieldScreenHours, Above, 4, "Screen time is high. Schedule screen-free breaks to rest your eyes."},
			{dailylog.FieldWorkHours, Above, 9, "You're working long hours. Protect some time to recharge."},
			{dailylog.FieldDietScore, Below, 3, "Your diet score is low. Add a serving of fruit or vegetables to your meals."},
			{dailylog.FieldHobbyMin, Below, 15, "Make some room for hobbies, even 15 minutes helps you unwind."},
			{dailylog.FieldMeditationMin, Below, 10, "A few minutes of meditation each day can lower stress. Try 10 minutes."},
		},
		PositiveMoods: map[dailylog.Mood]bool{
			dailylog.MoodHappy: true, dailylog.MoodCalm: true, dailylog.MoodConfident: true,
			dailylog.MoodExcited: true, dailylog.MoodMotivated: true,
		},
		NegativeMoods: map[dailylog.Mood]bool{
			dailylog.MoodSad: true, dailylog.MoodFrustrated: true, dailylog.MoodStressed: true,
			dailylog.MoodAnxious: true, dailylog.MoodEmotional: true, dailylog.MoodAngry: true,
			dailylog.MoodDepressed: true,
		},
		PositiveMoodMessage: "You've been in a positive mood most days. Keep doing what works for you!",
		NegativeMoodMessage: "Your mood has been low on most days. Consider reaching out to someone you trust or scheduling something you enjoy.",
		WeatherConditions: map[WeatherCategory][]string{
			WeatherGood:    {"sunny", "clear", "partly cloudy"},
			WeatherNeutral: {"cloudy", "overcast", "mist", "fog", "freezing fog"},
			WeatherRain: {
				"patchy rain possible", "patchy light drizzle", "light drizzle", "patchy light rain",
				"light rain", "moderate rain at times", "moderate rain", "heavy rain at times",
				"heavy rain", "light rain shower", "moderate or heavy rain shower", "torrential rain shower",
			},
			WeatherSnow: {
				"patchy snow possible", "patchy sleet possible", "blowing snow", "light sleet",
				"patchy light snow", "light snow", "patchy moderate snow", "moderate snow",
				"patchy heavy snow", "heavy snow", "light snow showers", "moderate or heavy snow showers",
			},
			WeatherExtreme: {
				"blizzard", "thundery outbreaks possible", "patchy light rain with thunder",
				"moderate or heavy rain with thunder", "patchy light snow with thunder",
				"moderate or heavy snow with thunder", "ice pellets", "freezing drizzle",
			},
		},
		WeatherMessages: map[WeatherCategory][]string{
			WeatherGood: {
				"It's a nice day out. A short walk could lift your mood.",
				"Good weather today. Try taking a break outside.",
				"Sunshine helps your energy. Get some daylight if you can.",
			},
			WeatherNeutral: {
				"Mild weather today. A good day for steady focus.",
				"Grey skies outside. Plan something cozy to look forward to.",
			},
			WeatherRain: {
				"Rainy weather today. A good day for indoor exercise or stretching.",
				"It's raining. Perfect time for a calm indoor hobby.",
				"Wet weather outside. Keep a warm drink close and take it easy.",
			},
			WeatherSnow: {
				"Snow outside. Dress warm and stay active indoors.",
				"Snowy day. Take care on the roads and keep moving.",
			},
			WeatherExtreme: {
				"Severe weather today. Stay safe and keep plans indoors.",
				"Stormy conditions outside. Postpone outdoor activities.",
			},
		},
		UnusualWeather: "The weather is unusual today. Take care and plan accordingly.",
	}
}
