package scheduler

import (
	"fmt"
	"math"

	"agent-staffing/models"
)

// BucketCallBatches spreads each batch's calls evenly over its window and sums
// them into hourly forecast points labeled "HH:00", sorted by hour.
// Each hour's AHT is the call-weighted mean of the batches active in it.
func BucketCallBatches(batches []models.CallBatch) []models.ForecastPoint {
	var calls, handleSeconds [24]float64

	for _, b := range batches {
		start := b.StartMin
		end := b.EndMin

		// Handle overnight windows (e.g., 9PM to 5AM)
		if end <= start {
			end += 24 * 60
		}
		durationMin := float64(end - start)
		if durationMin <= 0 || b.Calls <= 0 {
			continue
		}
		callsPerMinute := float64(b.Calls) / durationMin

		// Iterate hour by hour, rounding start down and end up to hour boundaries
		for hourStart := start / 60 * 60; hourStart < end; hourStart += 60 {
			hourEnd := hourStart + 60

			// Clamp to actual work window
			actualStart := max(start, hourStart)
			actualEnd := min(end, hourEnd)
			if actualEnd <= actualStart {
				continue
			}

			// Calls in this specific hour slot based on fraction
			slotCalls := callsPerMinute * float64(actualEnd-actualStart)
			h := (hourStart / 60) % 24
			calls[h] += slotCalls
			handleSeconds[h] += slotCalls * float64(b.AHTSeconds)
		}
	}

	var points []models.ForecastPoint
	for h := range 24 {
		if calls[h] == 0 {
			continue
		}
		aht := handleSeconds[h] / calls[h]
		points = append(points, models.ForecastPoint{
			Time:  fmt.Sprintf("%02d:00", h),
			Calls: math.Round(calls[h]*100) / 100,
			AHT:   &aht,
		})
	}
	return points
}
