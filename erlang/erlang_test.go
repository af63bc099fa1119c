package erlang_test

import (
	"math"
	"testing"

	"agent-staffing/erlang"

	"github.com/stretchr/testify/assert"
)

const hundredCallsTraffic = 100.0 * 300 / 3600

func TestTrafficIntensity(t *testing.T) {
	tests := map[string]struct {
		calls, aht, abandonment float64
		expected                float64
	}{
		"NoAbandonment":   {calls: 100, aht: 300, abandonment: 0, expected: 8.3333333},
		"TenPercentAband": {calls: 100, aht: 360, abandonment: 10, expected: 9},
		"FullAbandonment": {calls: 100, aht: 300, abandonment: 100, expected: 0},
		"NoCalls":         {calls: 0, aht: 300, abandonment: 0, expected: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, erlang.TrafficIntensity(tt.calls, tt.aht, tt.abandonment), 1e-6)
		})
	}
}

func TestErlangB(t *testing.T) {
	tests := map[string]struct {
		traffic  float64
		agents   int
		expected float64
	}{
		"ZeroAgents":      {traffic: 5, agents: 0, expected: 1},
		"ZeroTraffic":     {traffic: 0, agents: 3, expected: 0},
		"OneErlangOneAgt": {traffic: 1, agents: 1, expected: 0.5},
		"TwoErlangTwoAgt": {traffic: 2, agents: 2, expected: 0.4},
		"Reference":       {traffic: hundredCallsTraffic, agents: 10, expected: 0.1368944},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, erlang.ErlangB(tt.traffic, tt.agents), 1e-6)
		})
	}
}

func TestErlangB_LargeAgentCounts(t *testing.T) {
	// Factorial-based formulas overflow far below these sizes.
	b := erlang.ErlangB(1000, 1100)
	assert.False(t, math.IsNaN(b))
	assert.False(t, math.IsInf(b, 0))
	assert.InDelta(t, 9.5072e-05, b, 1e-8)

	c := erlang.ErlangC(1000, 1100)
	assert.InDelta(t, 0.0010448, c, 1e-6)
}

func TestErlangC(t *testing.T) {
	tests := map[string]struct {
		traffic  float64
		agents   int
		expected float64
	}{
		"ZeroAgents":       {traffic: 2, agents: 0, expected: 1},
		"AgentsEqualLoad":  {traffic: 4, agents: 4, expected: 1},
		"AgentsBelowLoad":  {traffic: 8.3, agents: 8, expected: 1},
		"ZeroTraffic":      {traffic: 0, agents: 2, expected: 0},
		"TwoErlangThreeAg": {traffic: 2, agents: 3, expected: 4.0 / 9.0},
		"Reference10":      {traffic: hundredCallsTraffic, agents: 10, expected: 0.4876106},
		"Reference12":      {traffic: hundredCallsTraffic, agents: 12, expected: 0.1759731},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, erlang.ErlangC(tt.traffic, tt.agents), 1e-6)
		})
	}
}

func TestStabilityBoundary(t *testing.T) {
	for _, traffic := range []float64{0.5, 1, 3.7, 8.333, 20, 150.2} {
		for agents := 0; agents <= int(math.Floor(traffic)); agents++ {
			assert.Equal(t, 1.0, erlang.ErlangC(traffic, agents), "traffic=%v agents=%d", traffic, agents)
			assert.Equal(t, 0.0, erlang.ServiceLevel(traffic, agents, 300, 20), "traffic=%v agents=%d", traffic, agents)
			assert.True(t, math.IsInf(erlang.AverageWaitTime(traffic, agents, 300), 1))
		}
	}
}

func TestAverageWaitTime(t *testing.T) {
	assert.InDelta(t, 87.7699094, erlang.AverageWaitTime(hundredCallsTraffic, 10, 300), 1e-5)
	assert.InDelta(t, 14.3978004, erlang.AverageWaitTime(hundredCallsTraffic, 12, 300), 1e-5)
	assert.Equal(t, 0.0, erlang.AverageWaitTime(0, 1, 300))
}

func TestServiceLevel(t *testing.T) {
	tests := map[string]struct {
		agents   int
		expected float64
	}{
		"Nine":   {agents: 9, expected: 27.2666606},
		"Eleven": {agents: 11, expected: 74.9180123},
		"Twelve": {agents: 12, expected: 86.2188502},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, erlang.ServiceLevel(hundredCallsTraffic, tt.agents, 300, 20), 1e-5)
		})
	}
}

func TestServiceLevel_Monotonic(t *testing.T) {
	for _, traffic := range []float64{0.4, 2.5, 8.333, 47.9, 230} {
		prev := -1.0
		for agents := 0; agents <= int(traffic)+60; agents++ {
			sl := erlang.ServiceLevel(traffic, agents, 240, 15)
			assert.GreaterOrEqual(t, sl, prev, "traffic=%v agents=%d", traffic, agents)
			assert.GreaterOrEqual(t, sl, 0.0)
			assert.LessOrEqual(t, sl, 100.0)
			prev = sl
		}
	}
}

func TestServiceLevel_ZeroAnswerTime(t *testing.T) {
	// With no grace period the service level is exactly the share of contacts not waiting.
	pw := erlang.ErlangC(hundredCallsTraffic, 11)
	assert.InDelta(t, 100*(1-pw), erlang.ServiceLevel(hundredCallsTraffic, 11, 300, 0), 1e-9)
}

func TestOccupancyRate(t *testing.T) {
	assert.InDelta(t, 83.333333, erlang.OccupancyRate(hundredCallsTraffic, 10), 1e-5)
	assert.Equal(t, 0.0, erlang.OccupancyRate(5, 0))
	assert.Equal(t, 100.0, erlang.OccupancyRate(12, 10))
}

func TestServiceLevel_NonPositiveAHT(t *testing.T) {
	assert.Equal(t, 100.0, erlang.ServiceLevel(hundredCallsTraffic, 12, 0, 20))
	assert.Equal(t, 100.0, erlang.ServiceLevel(hundredCallsTraffic, 12, -5, 20))
	assert.Equal(t, 0.0, erlang.ServiceLevel(hundredCallsTraffic, 8, 0, 20))
}
