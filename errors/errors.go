package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return stderrors.As(err, target) }

// ParseError wraps a specific error with context about where it occurred.
type ParseError struct {
	Line   int
	Record []string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %v (record: %v)", e.Line, e.Err, e.Record)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError describes a single invalid field in a forecast or scenario.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every problem found in one validation pass.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	return strings.Join(errs.Messages(), "\n")
}

// Messages returns the human-readable form of each validation problem.
func (errs ValidationErrors) Messages() []string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return msgs
}

// Err returns nil for an empty list so callers can use the usual err != nil check.
func (errs ValidationErrors) Err() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Define specific error types for better error handling
var (
	ErrInvalidFieldCount = fmt.Errorf("invalid field count")
	ErrInvalidTime       = fmt.Errorf("invalid time")
	ErrInvalidCalls      = fmt.Errorf("invalid number of calls")
	ErrInvalidAHT        = fmt.Errorf("invalid average handle time")
	ErrInvalidStartTime  = fmt.Errorf("invalid start time")
	ErrInvalidEndTime    = fmt.Errorf("invalid end time")
	ErrEmptyRecord       = fmt.Errorf("empty record")
	ErrEmptyForecast     = fmt.Errorf("empty forecast")
	ErrNoSheets          = fmt.Errorf("workbook has no sheets")
	ErrMissingColumn     = fmt.Errorf("missing required column")
	ErrUnsupportedFormat = fmt.Errorf("unsupported input format")
	ErrInvalidScenario   = fmt.Errorf("invalid scenario")
)
