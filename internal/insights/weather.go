package insights

import (
	"math/rand"
	"slices"
	"strings"
)

// Picker chooses an index in [0, n). n is always at least 1.
type Picker func(n int) int

// RandomPicker picks uniformly at random.
func RandomPicker(n int) int {
	return rand.Intn(n)
}

// FirstPicker always picks the first message.
func FirstPicker(int) int { return 0 }

// ClassifyWeather maps a condition string to its category. Matching is
// exact after trimming and lower-casing.
func ClassifyWeather(condition string, rules Rules) (WeatherCategory, bool) {
	c := strings.ToLower(strings.TrimSpace(condition))
	if c == "" {
		return "", false
	}
	for _, cat := range WeatherCategories {
		if slices.Contains(rules.WeatherConditions[cat], c) {
			return cat, true
		}
	}
	return "", false
}

// WeatherInsight returns advisory text for the condition.
func WeatherInsight(condition string, rules Rules, pick Picker) string {
	cat, ok := ClassifyWeather(condition, rules)
	if !ok {
		return rules.UnusualWeather
	}
	pool := rules.WeatherMessages[cat]
	if len(pool) == 0 {
		return rules.UnusualWeather
	}
	if pick == nil {
		pick = RandomPicker
	}
	i := pick(len(pool))
	if i < 0 || i >= len(pool) {
		i = 0
	}
	return pool[i]
}
