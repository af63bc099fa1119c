package parser

import (
	"fmt"
	"io"
	"strings"
	"time"

	"agent-staffing/errors"
	"agent-staffing/metrics"
	"agent-staffing/models"

	"github.com/xuri/excelize/v2"
)

type xlsxColumns struct {
	time, calls, aht int
}

// ParseForecastXLSX reads a forecast from the first sheet of a workbook.
// Columns are found by header name: time/interval, calls/volume/offered and
// an optional aht/handle column. Blank rows are skipped.
func ParseForecastXLSX(r io.Reader) ([]models.ForecastPoint, error) {
	start := time.Now()
	defer func() { metrics.ParserDurationSeconds.Observe(time.Since(start).Seconds()) }()

	f, err := excelize.OpenReader(r)
	if err != nil {
		metrics.ParserErrorsTotal.WithLabelValues("xlsx").Inc()
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		metrics.ParserErrorsTotal.WithLabelValues("xlsx").Inc()
		return nil, errors.ErrNoSheets
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		metrics.ParserErrorsTotal.WithLabelValues("xlsx").Inc()
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols, err := detectColumns(rows[0])
	if err != nil {
		metrics.ParserErrorsTotal.WithLabelValues("missing_column").Inc()
		return nil, err
	}

	var points []models.ForecastPoint
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		record := []string{cell(row, cols.time), cell(row, cols.calls)}
		if cols.aht >= 0 {
			record = append(record, cell(row, cols.aht))
		}
		record[0] = normalizeClock(record[0])

		point, err := parseForecastRecord(record)
		if err != nil {
			metrics.ParserErrorsTotal.WithLabelValues(errorType(err)).Inc()
			// +2: one for the header row, one for 1-based spreadsheet rows
			return nil, &errors.ParseError{Line: i + 2, Record: row, Err: err}
		}
		points = append(points, point)
		metrics.ParserRecordsTotal.Inc()
	}
	return points, nil
}

func detectColumns(header []string) (xlsxColumns, error) {
	cols := xlsxColumns{time: -1, calls: -1, aht: -1}
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(l, "aht") || strings.Contains(l, "handle"):
			if cols.aht == -1 {
				cols.aht = i
			}
		case strings.Contains(l, "time") || strings.Contains(l, "interval"):
			if cols.time == -1 {
				cols.time = i
			}
		case strings.Contains(l, "call") || strings.Contains(l, "volume") || strings.Contains(l, "offered"):
			if cols.calls == -1 {
				cols.calls = i
			}
		}
	}
	if cols.time == -1 {
		return cols, fmt.Errorf("%w: time", errors.ErrMissingColumn)
	}
	if cols.calls == -1 {
		return cols, fmt.Errorf("%w: calls", errors.ErrMissingColumn)
	}
	return cols, nil
}

// normalizeClock turns spreadsheet renderings such as "8:00" into "08:00".
// Values that are not clock times are returned unchanged for validation to report.
func normalizeClock(v string) string {
	v = strings.TrimSpace(v)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("15:04")
		}
	}
	return v
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
