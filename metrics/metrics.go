// Package metrics provides Prometheus observability metrics for staffing calculations.
// It includes plan-level business gauges and operational counters for the solver and parser.
package metrics

import (
	"agent-staffing/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// PLAN METRICS - Staffing outcome of the latest calculation
// =============================================================================

// PlanTotalFTE is the mean shrinkage-adjusted agent requirement of the latest plan.
var PlanTotalFTE = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "staffing",
	Name:      "total_fte",
	Help:      "Mean shrinkage-adjusted agent requirement across intervals of the latest plan",
})

// PlanAverageServiceLevel is the mean realized service level of the latest plan.
var PlanAverageServiceLevel = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "staffing",
	Name:      "average_service_level_percent",
	Help:      "Mean realized service level across intervals of the latest plan",
})

// PlanPeakAgents is the largest interval requirement of the latest plan.
var PlanPeakAgents = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "staffing",
	Name:      "peak_agents",
	Help:      "Largest shrinkage-adjusted agent requirement of any interval",
})

// PlanShrinkageMultiplier is the capacity multiplier applied to the latest plan.
var PlanShrinkageMultiplier = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "staffing",
	Name:      "shrinkage_multiplier",
	Help:      "Effective capacity multiplier derived from total shrinkage",
})

// IntervalsOverCapacity counts intervals of the latest plan that exceed capacity.
var IntervalsOverCapacity = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "staffing",
	Name:      "intervals_over_capacity",
	Help:      "Number of intervals where required agents exceed the configured capacity",
})

// CapacityShortfallTotal sums the missing agents over all intervals above capacity.
var CapacityShortfallTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "staffing",
	Name:      "capacity_shortfall_agents",
	Help:      "Total agents missing across intervals that exceed capacity",
})

// =============================================================================
// CALCULATION METRICS - Operational health
// =============================================================================

// IntervalsTotal counts every interval calculated.
var IntervalsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "scheduler",
	Name:      "intervals_total",
	Help:      "Total forecast intervals calculated",
})

// IdleIntervalsTotal counts intervals without offered load.
var IdleIntervalsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "scheduler",
	Name:      "idle_intervals_total",
	Help:      "Intervals with no offered load that short-circuited to zero agents",
})

// TargetUnmetTotal counts intervals whose target was not met within the search bound.
var TargetUnmetTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "scheduler",
	Name:      "target_unmet_total",
	Help:      "Intervals where the service level target was unreachable within the solver bound",
})

// InfeasibleIntervalsTotal counts intervals whose queue never stabilizes.
var InfeasibleIntervalsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "scheduler",
	Name:      "infeasible_intervals_total",
	Help:      "Intervals where staffed agents do not exceed offered traffic",
})

// SolverIterations tracks how many agent counts the solver evaluated per interval.
var SolverIterations = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "solver",
	Name:      "iterations",
	Help:      "Agent counts evaluated per interval by the minimum-agents search",
	Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34, 51},
})

// SchedulerDurationSeconds tracks time to calculate a staffing plan.
var SchedulerDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "scheduler",
	Name:      "duration_seconds",
	Help:      "Time taken to calculate the staffing plan",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
})

// SchedulerIntervalsProcessed tracks the forecast size per calculation.
var SchedulerIntervalsProcessed = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "scheduler",
	Name:      "intervals_processed",
	Help:      "Number of forecast intervals per calculation",
	Buckets:   []float64{1, 24, 48, 96, 168, 336, 672, 1344, 2688},
})

// ParserErrorsTotal tracks parse errors by error type.
var ParserErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "errors_total",
	Help:      "Total parse errors by error type",
}, []string{"error_type"})

// ParserRecordsTotal tracks total records successfully parsed.
var ParserRecordsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "records_total",
	Help:      "Total forecast records successfully parsed",
})

// ParserDurationSeconds tracks time to parse input files.
var ParserDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "parser",
	Name:      "duration_seconds",
	Help:      "Time taken to parse the forecast input file",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
})

// =============================================================================
// Helper Functions
// =============================================================================

// ResetPlanGauges resets all plan gauges before a new plan is recorded.
func ResetPlanGauges() {
	PlanTotalFTE.Set(0)
	PlanAverageServiceLevel.Set(0)
	PlanPeakAgents.Set(0)
	PlanShrinkageMultiplier.Set(0)
	IntervalsOverCapacity.Set(0)
	CapacityShortfallTotal.Set(0)
}

// RecordPlan publishes the aggregate figures of a finished plan. The gauges
// describe a single latest plan, so callers record one plan at a time.
func RecordPlan(plan *models.StaffingPlan) {
	PlanTotalFTE.Set(plan.TotalFTE)
	PlanAverageServiceLevel.Set(plan.AverageServiceLevel)
	PlanPeakAgents.Set(float64(plan.PeakAgents))
	PlanShrinkageMultiplier.Set(plan.ShrinkageMultiplier)

	IntervalsOverCapacity.Set(float64(len(plan.CapacityWarnings)))
	shortfall := 0
	for _, w := range plan.CapacityWarnings {
		shortfall += w.Shortfall
	}
	CapacityShortfallTotal.Set(float64(shortfall))
}
