package handlers

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"mindmetrics/internal/calendar"
	"mindmetrics/internal/goal"
	"mindmetrics/internal/insights"
)

// NewValidator builds the validator for log and goal payloads. Field names
// in errors are the json names the client sent.
func NewValidator(rules insights.Rules) (*validator.Validate, error) {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// a zero date reads as empty so "required" works on it
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		d, ok := v.Interface().(calendar.Date)
		if !ok || d.IsZero() {
			return ""
		}
		return d.String()
	}, calendar.Date{})

	if err := validate.RegisterValidation("step5", StepFiveValidator); err != nil {
		return nil, fmt.Errorf("register step5 validation: %w", err)
	}
	err := validate.RegisterValidation("goalmetric", func(fl validator.FieldLevel) bool {
		_, ok := rules.Metrics[fl.Field().String()]
		return ok
	})
	if err != nil {
		return nil, fmt.Errorf("register goalmetric validation: %w", err)
	}
	validate.RegisterStructValidation(goalRangeValidator, goal.Input{})

	return validate, nil
}

// StepFiveValidator accepts whole multiples of five.
var StepFiveValidator = func(fl validator.FieldLevel) bool {
	var v float64
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		v = fl.Field().Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v = float64(fl.Field().Int())
	default:
		return false
	}
	return math.Mod(v, 5) == 0
}

func goalRangeValidator(sl validator.StructLevel) {
	in, ok := sl.Current().Interface().(goal.Input)
	if !ok || in.StartDate.IsZero() || in.EndDate.IsZero() {
		return
	}
	if in.EndDate.Before(in.StartDate) {
		sl.ReportError(in.EndDate, "endDate", "EndDate", "gtefield", "startDate")
	}
}
