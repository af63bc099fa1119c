// Package validator checks forecasts and scenario parameters before calculation.
// Validation never mutates its input; it reports every problem it finds.
package validator

import (
	"fmt"
	"math"
	"regexp"

	"agent-staffing/errors"
	"agent-staffing/models"
)

var timeLabel = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidateForecast reports structural and range problems in a forecast.
// An empty result means the forecast is valid.
func ValidateForecast(points []models.ForecastPoint) errors.ValidationErrors {
	var errs errors.ValidationErrors
	if len(points) == 0 {
		return append(errs, errors.ValidationError{Field: "forecast", Message: "forecast must contain at least one interval"})
	}

	seen := make(map[string]int, len(points))
	for i, p := range points {
		field := fmt.Sprintf("forecast[%d]", i)
		if !timeLabel.MatchString(p.Time) {
			errs = append(errs, errors.ValidationError{
				Field:   field + ".time",
				Message: fmt.Sprintf("time %q must use 24-hour HH:MM format", p.Time),
			})
		} else if first, dup := seen[p.Time]; dup {
			errs = append(errs, errors.ValidationError{
				Field:   field + ".time",
				Message: fmt.Sprintf("duplicate interval %s (first seen at forecast[%d])", p.Time, first),
			})
		} else {
			seen[p.Time] = i
		}
		if !finite(p.Calls) {
			errs = append(errs, errors.ValidationError{
				Field:   field + ".calls",
				Message: fmt.Sprintf("calls must be a finite number (got %v)", p.Calls),
			})
		} else if p.Calls < 0 {
			errs = append(errs, errors.ValidationError{
				Field:   field + ".calls",
				Message: fmt.Sprintf("calls must be non-negative (got %v)", p.Calls),
			})
		}
		if p.AHT != nil && !finite(*p.AHT) {
			errs = append(errs, errors.ValidationError{
				Field:   field + ".aht",
				Message: fmt.Sprintf("aht must be a finite number (got %v)", *p.AHT),
			})
		} else if p.AHT != nil && *p.AHT <= 0 {
			errs = append(errs, errors.ValidationError{
				Field:   field + ".aht",
				Message: fmt.Sprintf("aht must be greater than 0 (got %v)", *p.AHT),
			})
		}
	}
	return errs
}

// ValidateServiceParameters checks the scenario-wide service targets.
func ValidateServiceParameters(params models.ServiceParameters) errors.ValidationErrors {
	var errs errors.ValidationErrors
	if !finite(params.DefaultAHT) || params.DefaultAHT <= 0 {
		errs = append(errs, errors.ValidationError{Field: "service.default_aht", Message: "must be greater than 0"})
	}
	if !(params.ServiceLevel > 0 && params.ServiceLevel <= 100) {
		errs = append(errs, errors.ValidationError{Field: "service.service_level", Message: "must be in (0, 100]"})
	}
	if !finite(params.TargetAnswerTime) || params.TargetAnswerTime < 0 {
		errs = append(errs, errors.ValidationError{Field: "service.target_answer_time", Message: "must be non-negative"})
	}
	if !(params.AbandonmentRate >= 0 && params.AbandonmentRate <= 100) {
		errs = append(errs, errors.ValidationError{Field: "service.abandonment_rate", Message: "must be in [0, 100]"})
	}
	return errs
}

// ValidateShrinkage checks that every shrinkage component is a percentage.
// The total may exceed the cap; it is clamped at calculation time.
func ValidateShrinkage(cfg models.ShrinkageConfig) errors.ValidationErrors {
	var errs errors.ValidationErrors
	named := []struct {
		field string
		value float64
	}{
		{"shrinkage.breaks", cfg.Breaks},
		{"shrinkage.training", cfg.Training},
		{"shrinkage.meetings", cfg.Meetings},
		{"shrinkage.absenteeism", cfg.Absenteeism},
		{"shrinkage.other", cfg.Other},
	}
	for _, n := range named {
		if !percentage(n.value) {
			errs = append(errs, errors.ValidationError{Field: n.field, Message: "must be in [0, 100]"})
		}
	}
	for i, f := range cfg.Custom {
		field := fmt.Sprintf("shrinkage.custom[%d]", i)
		if f.Name == "" {
			errs = append(errs, errors.ValidationError{Field: field + ".name", Message: "must not be empty"})
		}
		if !percentage(f.Percentage) {
			errs = append(errs, errors.ValidationError{Field: field + ".percentage", Message: "must be in [0, 100]"})
		}
	}
	return errs
}

// ValidateScenario combines the service parameter and shrinkage checks.
func ValidateScenario(params models.ServiceParameters, cfg models.ShrinkageConfig) errors.ValidationErrors {
	return append(ValidateServiceParameters(params), ValidateShrinkage(cfg)...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// percentage also rejects NaN, which fails every comparison.
func percentage(v float64) bool {
	return v >= 0 && v <= 100
}
