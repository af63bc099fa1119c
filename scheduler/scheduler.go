package scheduler

import (
	"math"
	"sort"
	"time"

	"agent-staffing/erlang"
	"agent-staffing/metrics"
	"agent-staffing/models"
	"agent-staffing/shrinkage"
	"agent-staffing/solver"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/iter"
)

// Options tune a plan calculation without changing its results.
type Options struct {
	// Workers > 1 calculates intervals concurrently. Output order always
	// mirrors the input.
	Workers int
	// Capacity is the maximum number of agents available per interval
	// (0 = unlimited). Exceeding it produces capacity warnings.
	Capacity int
}

type intervalCalc struct {
	result   models.IntervalResult
	solution solver.Solution
	idle     bool
	// invalid marks a load that is not a finite number.
	invalid bool
}

// CalculateInterval staffs a single forecast interval.
func CalculateInterval(point models.ForecastPoint, params models.ServiceParameters, shrink models.ShrinkageConfig) models.IntervalResult {
	return calculate(point, params, shrinkage.Multiplier(shrink)).result
}

// CalculateScenario is the single-scenario entry point: one hour of calls
// handled at the scenario's default AHT.
func CalculateScenario(calls float64, params models.ServiceParameters, shrink models.ShrinkageConfig) models.IntervalResult {
	return CalculateInterval(models.ForecastPoint{Calls: calls}, params, shrink)
}

// CalculateIntervalStaffing returns one result per forecast point, in input order.
func CalculateIntervalStaffing(points []models.ForecastPoint, params models.ServiceParameters, shrink models.ShrinkageConfig) []models.IntervalResult {
	calcs := calculateAll(points, params, shrinkage.Multiplier(shrink), 1)
	results := make([]models.IntervalResult, len(calcs))
	for i, c := range calcs {
		results[i] = c.result
	}
	return results
}

// Calculate staffs every interval and derives the plan-level aggregates.
// It only adds to counters and histograms, so concurrent plans are safe;
// publishing the plan gauges is left to the caller via metrics.RecordPlan.
func Calculate(points []models.ForecastPoint, params models.ServiceParameters, shrink models.ShrinkageConfig, opts Options) *models.StaffingPlan {
	start := time.Now()

	multiplier := shrinkage.Multiplier(shrink)
	calcs := calculateAll(points, params, multiplier, opts.Workers)

	plan := &models.StaffingPlan{
		Intervals:           make([]models.IntervalResult, len(calcs)),
		ShrinkagePercent:    shrinkage.TotalPercent(shrink),
		ShrinkageMultiplier: multiplier,
	}
	for i, c := range calcs {
		plan.Intervals[i] = c.result
		recordInterval(c)
		if !c.result.Stable() {
			plan.InfeasibleIntervals++
		}
	}

	plan.TotalFTE = CalculateTotalFTE(plan.Intervals)
	plan.AverageServiceLevel = CalculateAverageServiceLevel(plan.Intervals)
	plan.PeakAgents = CalculatePeakAgents(plan.Intervals)
	if opts.Capacity > 0 {
		plan.CapacityWarnings = capacityWarnings(plan.Intervals, opts.Capacity)
	}

	metrics.SchedulerIntervalsProcessed.Observe(float64(len(points)))
	metrics.SchedulerDurationSeconds.Observe(time.Since(start).Seconds())
	return plan
}

func calculateAll(points []models.ForecastPoint, params models.ServiceParameters, multiplier float64, workers int) []intervalCalc {
	fn := func(p *models.ForecastPoint) intervalCalc {
		return calculate(*p, params, multiplier)
	}
	if workers <= 1 {
		calcs := make([]intervalCalc, len(points))
		for i := range points {
			calcs[i] = fn(&points[i])
		}
		return calcs
	}
	return iter.Mapper[models.ForecastPoint, intervalCalc]{MaxGoroutines: workers}.Map(points, fn)
}

func calculate(point models.ForecastPoint, params models.ServiceParameters, multiplier float64) intervalCalc {
	aht := params.DefaultAHT
	if point.AHT != nil {
		aht = *point.AHT
	}
	traffic := erlang.TrafficIntensity(point.Calls, aht, params.AbandonmentRate)

	if math.IsNaN(traffic) || math.IsInf(traffic, 0) {
		calls := point.Calls
		if math.IsNaN(calls) || math.IsInf(calls, 0) {
			calls = 0
		}
		return intervalCalc{
			result: models.IntervalResult{
				Time:                 point.Time,
				Calls:                calls,
				AverageWaitTime:      math.Inf(1),
				ProbabilityOfWaiting: 100,
			},
			solution: solver.Solve(traffic, aht, params.ServiceLevel, params.TargetAnswerTime),
			invalid:  true,
		}
	}

	// An empty interval (or one where every contact abandons) meets any target.
	if point.Calls <= 0 || traffic <= 0 {
		return intervalCalc{
			result: models.IntervalResult{
				Time:         point.Time,
				Calls:        point.Calls,
				ServiceLevel: 100,
			},
			solution: solver.Solution{ServiceLevel: 100, TargetMet: true},
			idle:     true,
		}
	}

	sol := solver.Solve(traffic, aht, params.ServiceLevel, params.TargetAnswerTime)
	agents := shrinkage.Apply(sol.Agents, multiplier)

	return intervalCalc{
		result: models.IntervalResult{
			Time:                        point.Time,
			Calls:                       point.Calls,
			RequiredAgents:              sol.Agents,
			RequiredAgentsWithShrinkage: agents,
			ServiceLevel:                round2(erlang.ServiceLevel(traffic, agents, aht, params.TargetAnswerTime)),
			AverageWaitTime:             round2(erlang.AverageWaitTime(traffic, agents, aht)),
			ProbabilityOfWaiting:        round2(100 * erlang.ErlangC(traffic, agents)),
			OccupancyRate:               round2(erlang.OccupancyRate(traffic, agents)),
			Traffic:                     round2(traffic),
		},
		solution: sol,
	}
}

func recordInterval(c intervalCalc) {
	metrics.IntervalsTotal.Inc()
	if c.idle {
		metrics.IdleIntervalsTotal.Inc()
		return
	}
	if c.invalid {
		metrics.InfeasibleIntervalsTotal.Inc()
		log.Warn().Str("time", c.result.Time).Msg("interval load is not a finite number, skipping")
		return
	}
	metrics.SolverIterations.Observe(float64(c.solution.Iterations))

	r := c.result
	if !c.solution.TargetMet {
		metrics.TargetUnmetTotal.Inc()
		log.Warn().
			Str("time", r.Time).
			Float64("traffic", r.Traffic).
			Int("agents", r.RequiredAgents).
			Float64("service_level", c.solution.ServiceLevel).
			Msg("service level target not reachable within search bound")
	}
	if !r.Stable() {
		metrics.InfeasibleIntervalsTotal.Inc()
		log.Warn().Str("time", r.Time).Float64("traffic", r.Traffic).Msg("interval queue does not stabilize")
	}
	log.Debug().
		Str("time", r.Time).
		Float64("calls", r.Calls).
		Float64("traffic", r.Traffic).
		Int("agents", r.RequiredAgents).
		Int("agents_with_shrinkage", r.RequiredAgentsWithShrinkage).
		Float64("service_level", r.ServiceLevel).
		Msg("interval staffed")
}

// CalculateTotalFTE is the mean shrinkage-adjusted requirement across intervals.
// It is a representative staffing level, not a sum of agent-hours or a peak.
func CalculateTotalFTE(results []models.IntervalResult) float64 {
	if len(results) == 0 {
		return 0
	}
	total := 0
	for _, r := range results {
		total += r.RequiredAgentsWithShrinkage
	}
	return float64(total) / float64(len(results))
}

// CalculateAverageServiceLevel is the mean realized service level across intervals.
func CalculateAverageServiceLevel(results []models.IntervalResult) float64 {
	if len(results) == 0 {
		return 0
	}
	total := 0.0
	for _, r := range results {
		total += r.ServiceLevel
	}
	return total / float64(len(results))
}

// CalculatePeakAgents is the largest shrinkage-adjusted requirement of any interval.
func CalculatePeakAgents(results []models.IntervalResult) int {
	peak := 0
	for _, r := range results {
		peak = max(peak, r.RequiredAgentsWithShrinkage)
	}
	return peak
}

// SortChronologically returns a copy of results ordered by their HH:MM label.
// Labels that do not parse keep their relative order after the valid ones.
func SortChronologically(results []models.IntervalResult) []models.IntervalResult {
	sorted := make([]models.IntervalResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return minuteOfDay(sorted[i].Time) < minuteOfDay(sorted[j].Time)
	})
	return sorted
}

func minuteOfDay(label string) int {
	t, err := time.Parse("15:04", label)
	if err != nil {
		return math.MaxInt
	}
	return t.Hour()*60 + t.Minute()
}

// capacityWarnings reports the intervals whose staffing exceeds capacity.
func capacityWarnings(results []models.IntervalResult, capacity int) []models.CapacityWarning {
	var warnings []models.CapacityWarning
	for _, r := range results {
		if r.RequiredAgentsWithShrinkage <= capacity {
			continue
		}
		warnings = append(warnings, models.CapacityWarning{
			Time:      r.Time,
			Required:  r.RequiredAgentsWithShrinkage,
			Capacity:  capacity,
			Shortfall: r.RequiredAgentsWithShrinkage - capacity,
		})
	}
	return warnings
}

func round2(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	return math.Round(v*100) / 100
}
