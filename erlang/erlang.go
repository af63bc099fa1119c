// Package erlang implements the Erlang B/C queueing formulas and the
// performance metrics derived from them for an M/M/c contact queue.
//
// Traffic is always expressed in Erlangs and handle/answer times in seconds.
package erlang

import "math"

// TrafficIntensity converts an hourly call volume into offered load in Erlangs.
// Abandoned contacts (a percentage) are removed from the load before conversion.
func TrafficIntensity(calls, aht, abandonmentRate float64) float64 {
	effectiveCalls := calls * (1 - abandonmentRate/100)
	return effectiveCalls * aht / 3600
}

// ErlangB returns the blocking probability of a loss system with the given
// offered traffic and number of servers.
//
// It uses the recursion B(n) = A*B(n-1) / (n + A*B(n-1)), which stays finite for
// agent counts where A^n/n! would overflow a float64.
func ErlangB(traffic float64, agents int) float64 {
	if agents <= 0 {
		return 1
	}
	if traffic <= 0 {
		return 0
	}
	b := 1.0
	for n := 1; n <= agents; n++ {
		ab := traffic * b
		b = ab / (float64(n) + ab)
	}
	return b
}

// ErlangC returns the probability that an arriving contact has to wait.
// An unstable queue (agents <= traffic) always waits, so 1 is returned.
func ErlangC(traffic float64, agents int) float64 {
	if agents <= 0 || float64(agents) <= traffic {
		return 1
	}
	if traffic <= 0 {
		return 0
	}
	b := ErlangB(traffic, agents)
	c := b / (1 - (traffic/float64(agents))*(1-b))
	return clamp(c, 0, 1)
}

// AverageWaitTime returns the mean speed of answer in seconds.
// It returns +Inf when the queue never clears (agents <= traffic).
func AverageWaitTime(traffic float64, agents int, aht float64) float64 {
	if agents <= 0 || float64(agents) <= traffic {
		return math.Inf(1)
	}
	return ErlangC(traffic, agents) * aht / (float64(agents) - traffic)
}

// ServiceLevel returns the percentage of contacts answered within
// targetAnswerTime seconds, in [0, 100]. It is 0 when the queue is unstable.
// A stable queue with aht <= 0 has no handling time to wait behind and
// reports 100.
func ServiceLevel(traffic float64, agents int, aht, targetAnswerTime float64) float64 {
	if agents <= 0 || float64(agents) <= traffic {
		return 0
	}
	if aht <= 0 {
		return 100
	}
	pw := ErlangC(traffic, agents)
	sl := 100 * (1 - pw*math.Exp(-(float64(agents)-traffic)*targetAnswerTime/aht))
	return clamp(sl, 0, 100)
}

// OccupancyRate is the percentage of agent time spent handling contacts.
func OccupancyRate(traffic float64, agents int) float64 {
	if agents <= 0 {
		return 0
	}
	return clamp(100*traffic/float64(agents), 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
