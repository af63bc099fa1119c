package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"agent-staffing/errors"
	"agent-staffing/metrics"
	"agent-staffing/models"
)

// ParseCallBatches reads call batches of the form
// "name, aht seconds, start, end, calls". Lines starting with '#' are comments.
// The time fields are expected to be in "3PM" or "3:04PM" format.
func ParseCallBatches(r io.Reader) ([]models.CallBatch, error) {
	start := time.Now()
	defer func() { metrics.ParserDurationSeconds.Observe(time.Since(start).Seconds()) }()

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.Comment = '#'

	var data []models.CallBatch
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

		batch, err := parseBatchRecord(record)
		if err != nil {
			metrics.ParserErrorsTotal.WithLabelValues(errorType(err)).Inc()
			return nil, &errors.ParseError{Line: line, Record: record, Err: err}
		}
		data = append(data, batch)
		metrics.ParserRecordsTotal.Inc()
	}

	return data, nil
}

func parseBatchRecord(record []string) (models.CallBatch, error) {
	if len(record) != 5 {
		return models.CallBatch{}, errors.ErrInvalidFieldCount
	}

	b := models.CallBatch{Name: strings.TrimSpace(record[0])}

	var err error
	b.AHTSeconds, err = strconv.Atoi(strings.TrimSpace(record[1]))
	if err != nil || b.AHTSeconds <= 0 {
		return models.CallBatch{}, fmt.Errorf("%w: %q", errors.ErrInvalidAHT, record[1])
	}

	b.StartMin, err = parseClock(strings.TrimSpace(record[2]))
	if err != nil {
		return models.CallBatch{}, fmt.Errorf("%w: %v", errors.ErrInvalidStartTime, err)
	}
	b.EndMin, err = parseClock(strings.TrimSpace(record[3]))
	if err != nil {
		return models.CallBatch{}, fmt.Errorf("%w: %v", errors.ErrInvalidEndTime, err)
	}

	b.Calls, err = strconv.Atoi(strings.TrimSpace(record[4]))
	if err != nil || b.Calls < 0 {
		return models.CallBatch{}, fmt.Errorf("%w: %q", errors.ErrInvalidCalls, record[4])
	}
	return b, nil
}

// parseClock returns minutes after midnight for "3PM" or "3:04PM" values.
func parseClock(value string) (int, error) {
	var lastErr error
	for _, layout := range []string{"3:04PM", "3PM"} {
		t, err := time.Parse(layout, strings.ToUpper(value))
		if err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
		lastErr = err
	}
	return 0, lastErr
}
