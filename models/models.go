package models

import (
	"encoding/json"
	"math"
)

// ForecastPoint is one interval of the call forecast.
// Calls are offered contacts per hour; AHT overrides the scenario default when non-nil.
type ForecastPoint struct {
	Time  string   `json:"time"`
	Calls float64  `json:"calls"`
	AHT   *float64 `json:"aht,omitempty"`
}

// ServiceParameters holds the scenario-wide service targets.
type ServiceParameters struct {
	DefaultAHT       float64 `json:"defaultAht" yaml:"default_aht"`
	ServiceLevel     float64 `json:"serviceLevel" yaml:"service_level"`
	TargetAnswerTime float64 `json:"targetAnswerTime" yaml:"target_answer_time"`
	AbandonmentRate  float64 `json:"abandonmentRate" yaml:"abandonment_rate"`
}

// ShrinkageConfig lists the non-productive time percentages for a scenario.
type ShrinkageConfig struct {
	Breaks      float64        `json:"breaks" yaml:"breaks"`
	Training    float64        `json:"training" yaml:"training"`
	Meetings    float64        `json:"meetings" yaml:"meetings"`
	Absenteeism float64        `json:"absenteeism" yaml:"absenteeism"`
	Other       float64        `json:"other" yaml:"other"`
	Custom      []CustomFactor `json:"custom,omitempty" yaml:"custom"`
}

// CustomFactor is a user-named shrinkage component.
type CustomFactor struct {
	Name       string  `json:"name" yaml:"name"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// IntervalResult is the staffing outcome for a single forecast interval.
// AverageWaitTime is +Inf when the interval never stabilizes (agents <= traffic).
type IntervalResult struct {
	Time                        string  `json:"time"`
	Calls                       float64 `json:"calls"`
	RequiredAgents              int     `json:"requiredAgents"`
	RequiredAgentsWithShrinkage int     `json:"requiredAgentsWithShrinkage"`
	ServiceLevel                float64 `json:"serviceLevel"`
	AverageWaitTime             float64 `json:"averageWaitTime"`
	ProbabilityOfWaiting        float64 `json:"probabilityOfWaiting"`
	OccupancyRate               float64 `json:"occupancyRate"`
	Traffic                     float64 `json:"traffic"`
}

// Stable reports whether the interval's queue clears at the reported staffing.
func (r IntervalResult) Stable() bool {
	return !math.IsInf(r.AverageWaitTime, 1)
}

// MarshalJSON encodes a non-converging wait time as null.
func (r IntervalResult) MarshalJSON() ([]byte, error) {
	type plain IntervalResult
	out := struct {
		plain
		AverageWaitTime *float64 `json:"averageWaitTime"`
	}{plain: plain(r)}
	if r.Stable() {
		wait := r.AverageWaitTime
		out.AverageWaitTime = &wait
	}
	return json.Marshal(out)
}

// CapacityWarning flags an interval whose staffing exceeds the available headcount.
type CapacityWarning struct {
	Time      string `json:"time"`
	Required  int    `json:"required"`
	Capacity  int    `json:"capacity"`
	Shortfall int    `json:"shortfall"`
}

// StaffingPlan is a full forecast calculation with its aggregate views.
type StaffingPlan struct {
	Intervals           []IntervalResult  `json:"intervals"`
	TotalFTE            float64           `json:"totalFte"`
	AverageServiceLevel float64           `json:"averageServiceLevel"`
	PeakAgents          int               `json:"peakAgents"`
	ShrinkagePercent    float64           `json:"shrinkagePercent"`
	ShrinkageMultiplier float64           `json:"shrinkageMultiplier"`
	InfeasibleIntervals int               `json:"infeasibleIntervals"`
	CapacityWarnings    []CapacityWarning `json:"capacityWarnings,omitempty"`
}

// CallBatch is a block of calls spread over a time window, as in the legacy
// batch input format.
type CallBatch struct {
	Name       string
	AHTSeconds int
	StartMin   int // minutes after midnight
	EndMin     int
	Calls      int
}
