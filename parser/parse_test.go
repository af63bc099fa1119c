package parser_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	customerrors "agent-staffing/errors"
	"agent-staffing/models"
	"agent-staffing/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aht(v float64) *float64 { return &v }

func TestParseForecast(t *testing.T) {
	tests := map[string]struct {
		input         string
		expectedData  []models.ForecastPoint
		expectedError error
	}{
		"ValidInput_SingleLine": {
			input: `
08:00, 120
`,
			expectedData: []models.ForecastPoint{
				{Time: "08:00", Calls: 120},
			},
		},
		"ValidInput_HeaderCommentsAndAHT": {
			input: `
# Monday forecast
time, calls, aht
08:00, 120, 280
08:30, 95.5,
09:00, 0, 310
`,
			expectedData: []models.ForecastPoint{
				{Time: "08:00", Calls: 120, AHT: aht(280)},
				{Time: "08:30", Calls: 95.5},
				{Time: "09:00", Calls: 0, AHT: aht(310)},
			},
		},
		"MalformedTimeIsLeftForValidation": {
			input: `8:00, 10`,
			expectedData: []models.ForecastPoint{
				{Time: "8:00", Calls: 10},
			},
		},
		"InvalidFieldCount": {
			input:         `08:00`,
			expectedError: customerrors.ErrInvalidFieldCount,
		},
		"TooManyFields": {
			input:         `08:00, 10, 300, extra`,
			expectedError: customerrors.ErrInvalidFieldCount,
		},
		"InvalidCalls": {
			input:         `08:00, lots`,
			expectedError: customerrors.ErrInvalidCalls,
		},
		"InvalidAHT": {
			input:         `08:00, 10, fast`,
			expectedError: customerrors.ErrInvalidAHT,
		},
		"NaNCalls": {
			input:         `09:00, NaN`,
			expectedError: customerrors.ErrInvalidCalls,
		},
		"InfCalls": {
			input:         `09:00, Inf`,
			expectedError: customerrors.ErrInvalidCalls,
		},
		"NaNAHT": {
			input:         `09:00, 10, NaN`,
			expectedError: customerrors.ErrInvalidAHT,
		},
		"InfAHT": {
			input:         `09:00, 10, +Inf`,
			expectedError: customerrors.ErrInvalidAHT,
		},
		"EmptyTime": {
			input:         `, 10`,
			expectedError: customerrors.ErrInvalidTime,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			data, err := parser.ParseForecast(strings.NewReader(tt.input))

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedError), "expected %v, got %v", tt.expectedError, err)

				var parseErr *customerrors.ParseError
				assert.True(t, errors.As(err, &parseErr))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedData, data)
		})
	}
}

func TestParseForecast_ErrorLine(t *testing.T) {
	input := "# header comment\n08:00, 10\n08:30, ten\n"
	_, err := parser.ParseForecast(strings.NewReader(input))

	var parseErr *customerrors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 3, parseErr.Line)
	assert.Equal(t, []string{"08:30", "ten"}, parseErr.Record)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "forecast.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("time,calls\n10:00,40\n"), 0o644))
	data, err := parser.ParseFile(csvPath)
	assert.NoError(t, err)
	assert.Equal(t, []models.ForecastPoint{{Time: "10:00", Calls: 40}}, data)

	jsonPath := filepath.Join(dir, "forecast.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte("[]"), 0o644))
	_, err = parser.ParseFile(jsonPath)
	assert.True(t, errors.Is(err, customerrors.ErrUnsupportedFormat))

	_, err = parser.ParseFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestParseCallBatches(t *testing.T) {
	tests := map[string]struct {
		input         string
		expectedData  []models.CallBatch
		expectedError error
	}{
		"ValidInput_WithComments": {
			input: `
# Name, AHT, Start, End, Calls
VNS, 120, 6AM, 1PM, 40500
Night Desk, 300, 9:30pm, 2AM, 800
`,
			expectedData: []models.CallBatch{
				{Name: "VNS", AHTSeconds: 120, StartMin: 6 * 60, EndMin: 13 * 60, Calls: 40500},
				{Name: "Night Desk", AHTSeconds: 300, StartMin: 21*60 + 30, EndMin: 2 * 60, Calls: 800},
			},
		},
		"InvalidFieldCount": {
			input:         `VNS, 120, 6AM, 1PM`,
			expectedError: customerrors.ErrInvalidFieldCount,
		},
		"InvalidAHT": {
			input:         `VNS, 0, 6AM, 1PM, 100`,
			expectedError: customerrors.ErrInvalidAHT,
		},
		"InvalidStartTime": {
			input:         `VNS, 120, 25AM, 1PM, 100`,
			expectedError: customerrors.ErrInvalidStartTime,
		},
		"InvalidEndTime": {
			input:         `VNS, 120, 6AM, noon, 100`,
			expectedError: customerrors.ErrInvalidEndTime,
		},
		"InvalidCalls": {
			input:         `VNS, 120, 6AM, 1PM, -5`,
			expectedError: customerrors.ErrInvalidCalls,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			data, err := parser.ParseCallBatches(strings.NewReader(tt.input))

			if tt.expectedError != nil {
				assert.True(t, errors.Is(err, tt.expectedError), "expected %v, got %v", tt.expectedError, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedData, data)
		})
	}
}
