package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"agent-staffing/errors"
	"agent-staffing/metrics"
	"agent-staffing/models"
)

// ParseFile reads a forecast from a .csv or .xlsx file.
func ParseFile(path string) ([]models.ForecastPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open forecast: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return ParseForecast(f)
	case ".xlsx":
		return ParseForecastXLSX(f)
	default:
		metrics.ParserErrorsTotal.WithLabelValues("unsupported_format").Inc()
		return nil, fmt.Errorf("%w: %s", errors.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ParseForecast reads CSV forecast rows of the form "time, calls[, aht]".
// Lines starting with '#' are comments and a leading "time" header row is skipped.
// An empty aht field means the interval uses the scenario default.
func ParseForecast(r io.Reader) ([]models.ForecastPoint, error) {
	start := time.Now()
	defer func() { metrics.ParserDurationSeconds.Observe(time.Since(start).Seconds()) }()

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.Comment = '#'

	var points []models.ForecastPoint
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			metrics.ParserErrorsTotal.WithLabelValues("csv").Inc()
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if len(points) == 0 && strings.EqualFold(strings.TrimSpace(record[0]), "time") {
			continue
		}

		point, err := parseForecastRecord(record)
		if err != nil {
			metrics.ParserErrorsTotal.WithLabelValues(errorType(err)).Inc()
			return nil, &errors.ParseError{Line: line, Record: record, Err: err}
		}
		points = append(points, point)
		metrics.ParserRecordsTotal.Inc()
	}

	return points, nil
}

func parseForecastRecord(record []string) (models.ForecastPoint, error) {
	if len(record) < 2 || len(record) > 3 {
		return models.ForecastPoint{}, errors.ErrInvalidFieldCount
	}

	point := models.ForecastPoint{Time: strings.TrimSpace(record[0])}
	if point.Time == "" {
		return models.ForecastPoint{}, errors.ErrInvalidTime
	}

	calls, err := parseFinite(record[1])
	if err != nil {
		return models.ForecastPoint{}, fmt.Errorf("%w: %v", errors.ErrInvalidCalls, err)
	}
	point.Calls = calls

	if len(record) == 3 {
		if raw := strings.TrimSpace(record[2]); raw != "" {
			aht, err := parseFinite(raw)
			if err != nil {
				return models.ForecastPoint{}, fmt.Errorf("%w: %v", errors.ErrInvalidAHT, err)
			}
			point.AHT = &aht
		}
	}
	return point, nil
}

// parseFinite parses a decimal number, rejecting the NaN and Inf spellings
// strconv accepts.
func parseFinite(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", raw)
	}
	return v, nil
}

// errorType maps a parse failure to its metrics label.
func errorType(err error) string {
	switch {
	case errors.Is(err, errors.ErrInvalidFieldCount):
		return "invalid_field_count"
	case errors.Is(err, errors.ErrInvalidTime):
		return "invalid_time"
	case errors.Is(err, errors.ErrInvalidCalls):
		return "invalid_calls"
	case errors.Is(err, errors.ErrInvalidAHT):
		return "invalid_aht"
	case errors.Is(err, errors.ErrInvalidStartTime):
		return "invalid_start_time"
	case errors.Is(err, errors.ErrInvalidEndTime):
		return "invalid_end_time"
	default:
		return "other"
	}
}
