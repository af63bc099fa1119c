// Package shrinkage turns non-productive time percentages into the capacity
// multiplier applied on top of the queueing requirement.
package shrinkage

import (
	"math"

	"agent-staffing/models"
)

// MaxPercent caps total shrinkage so the multiplier stays at or below 5x.
const MaxPercent = 80.0

// TotalPercent sums every shrinkage component, clamped to [0, MaxPercent].
func TotalPercent(cfg models.ShrinkageConfig) float64 {
	total := cfg.Breaks + cfg.Training + cfg.Meetings + cfg.Absenteeism + cfg.Other
	for _, f := range cfg.Custom {
		total += f.Percentage
	}
	return math.Max(0, math.Min(MaxPercent, total))
}

// Multiplier returns 1 / (1 - shrinkage), the factor by which productive
// agents must be inflated to cover paid but unavailable time.
func Multiplier(cfg models.ShrinkageConfig) float64 {
	return 100 / (100 - TotalPercent(cfg))
}

// Apply inflates a base agent requirement by the multiplier, rounding up.
func Apply(agents int, multiplier float64) int {
	if agents <= 0 {
		return 0
	}
	// Absorb float noise so an exact product such as 7 * 1/0.7 does not round up to 11.
	return int(math.Ceil(float64(agents)*multiplier - 1e-9))
}
