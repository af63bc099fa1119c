package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"agent-staffing/models"
)

// waitLabel renders a wait time, using "never" for queues that do not stabilize.
func waitLabel(r models.IntervalResult) string {
	if !r.Stable() {
		return "never"
	}
	return fmt.Sprintf("%.2fs", r.AverageWaitTime)
}

// warningsByTime indexes capacity warnings by interval label
func warningsByTime(plan *models.StaffingPlan) map[string]models.CapacityWarning {
	byTime := make(map[string]models.CapacityWarning, len(plan.CapacityWarnings))
	for _, w := range plan.CapacityWarnings {
		byTime[w.Time] = w
	}
	return byTime
}

// FormatText returns the text representation of the plan
func FormatText(plan *models.StaffingPlan) string {
	warnings := warningsByTime(plan)
	var sb strings.Builder

	for _, r := range plan.Intervals {
		sb.WriteString(formatTextLine(r))
		sb.WriteString("\n")

		// Add capacity warning if exists
		if w, ok := warnings[r.Time]; ok {
			sb.WriteString(fmt.Sprintf("  ⚠️  CAPACITY WARNING: Required=%d, Capacity=%d, Shortfall=%d\n",
				w.Required, w.Capacity, w.Shortfall))
		}
	}

	sb.WriteString(fmt.Sprintf("\nTotal FTE: %.2f\n", plan.TotalFTE))
	sb.WriteString(fmt.Sprintf("Average service level: %.2f%%\n", plan.AverageServiceLevel))
	sb.WriteString(fmt.Sprintf("Peak agents: %d\n", plan.PeakAgents))
	sb.WriteString(fmt.Sprintf("Shrinkage: %.2f%% (x%.4f)\n", plan.ShrinkagePercent, plan.ShrinkageMultiplier))
	if plan.InfeasibleIntervals > 0 {
		sb.WriteString(fmt.Sprintf("Infeasible intervals: %d\n", plan.InfeasibleIntervals))
	}

	return sb.String()
}

// formatTextLine formats a single interval line for text output
func formatTextLine(r models.IntervalResult) string {
	if r.Calls <= 0 {
		return fmt.Sprintf("%s : agents=0 ; idle", r.Time)
	}
	return fmt.Sprintf("%s : agents=%d ; base=%d, calls=%.2f, traffic=%.2f, sl=%.2f%%, asa=%s, pw=%.2f%%, occupancy=%.2f%%",
		r.Time, r.RequiredAgentsWithShrinkage, r.RequiredAgents, r.Calls, r.Traffic,
		r.ServiceLevel, waitLabel(r), r.ProbabilityOfWaiting, r.OccupancyRate)
}

// FormatJSON returns the JSON representation of the plan
func FormatJSON(plan *models.StaffingPlan) string {
	jsonBytes, _ := json.MarshalIndent(plan, "", "  ")
	return string(jsonBytes)
}

// FormatCSV returns the CSV representation of the plan, one row per interval
func FormatCSV(plan *models.StaffingPlan) string {
	warnings := warningsByTime(plan)
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	// Write header
	writer.Write([]string{
		"Time", "Calls", "Traffic", "Required Agents", "Required Agents With Shrinkage",
		"Service Level", "Average Wait Time", "Probability Of Waiting", "Occupancy",
		"Capacity Warning", "Shortfall",
	})

	for _, r := range plan.Intervals {
		wait := ""
		if r.Stable() {
			wait = formatFloat(r.AverageWaitTime)
		}
		row := []string{
			r.Time,
			formatFloat(r.Calls),
			formatFloat(r.Traffic),
			strconv.Itoa(r.RequiredAgents),
			strconv.Itoa(r.RequiredAgentsWithShrinkage),
			formatFloat(r.ServiceLevel),
			wait,
			formatFloat(r.ProbabilityOfWaiting),
			formatFloat(r.OccupancyRate),
		}
		if w, ok := warnings[r.Time]; ok {
			row = append(row, "Yes", strconv.Itoa(w.Shortfall))
		} else {
			row = append(row, "No", "")
		}
		writer.Write(row)
	}

	writer.Flush()
	return sb.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
