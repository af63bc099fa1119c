// Package solver finds the smallest agent count that meets a service level target.
package solver

import (
	"math"

	"agent-staffing/erlang"
)

// MaxExtraAgents bounds the search to traffic + MaxExtraAgents so unreachable
// targets (e.g. 100%) still terminate with a best-effort answer.
const MaxExtraAgents = 50

// Solution is the outcome of a minimum-agents search.
type Solution struct {
	Agents       int
	Traffic      float64
	ServiceLevel float64 // realized at Agents, unrounded
	Iterations   int
	TargetMet    bool
}

// FindMinimumAgents returns the smallest agent count whose service level meets
// targetServiceLevel for an hourly volume of calls, or the bounded best effort.
func FindMinimumAgents(calls, aht, targetServiceLevel, targetAnswerTime, abandonmentRate float64) int {
	return Solve(erlang.TrafficIntensity(calls, aht, abandonmentRate), aht, targetServiceLevel, targetAnswerTime).Agents
}

// Solve scans upwards from ceil(traffic), the smallest count that can be stable.
// Service level is non-decreasing in agents, so the first hit is the minimum.
// Non-finite traffic cannot be staffed and yields a zero Solution with TargetMet unset.
func Solve(traffic, aht, targetServiceLevel, targetAnswerTime float64) Solution {
	if math.IsNaN(traffic) || math.IsInf(traffic, 0) {
		return Solution{Traffic: traffic}
	}
	if traffic <= 0 {
		return Solution{ServiceLevel: 100, TargetMet: true}
	}

	limit := traffic + MaxExtraAgents
	sol := Solution{Traffic: traffic}
	for agents := int(math.Ceil(traffic)); ; agents++ {
		sol.Iterations++
		sol.Agents = agents
		sol.ServiceLevel = erlang.ServiceLevel(traffic, agents, aht, targetAnswerTime)
		if sol.ServiceLevel >= targetServiceLevel {
			sol.TargetMet = true
			return sol
		}
		if float64(agents+1) > limit {
			return sol
		}
	}
}
