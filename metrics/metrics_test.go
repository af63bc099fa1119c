package metrics_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"agent-staffing/metrics"
	"agent-staffing/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordPlan(t *testing.T) {
	metrics.ResetPlanGauges()
	metrics.RecordPlan(&models.StaffingPlan{
		TotalFTE:            14.5,
		AverageServiceLevel: 88.1,
		PeakAgents:          22,
		ShrinkageMultiplier: 1.25,
		CapacityWarnings: []models.CapacityWarning{
			{Time: "10:00", Required: 22, Capacity: 18, Shortfall: 4},
			{Time: "11:00", Required: 20, Capacity: 18, Shortfall: 2},
		},
	})

	assert.Equal(t, 14.5, testutil.ToFloat64(metrics.PlanTotalFTE))
	assert.Equal(t, 88.1, testutil.ToFloat64(metrics.PlanAverageServiceLevel))
	assert.Equal(t, 22.0, testutil.ToFloat64(metrics.PlanPeakAgents))
	assert.Equal(t, 1.25, testutil.ToFloat64(metrics.PlanShrinkageMultiplier))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.IntervalsOverCapacity))
	assert.Equal(t, 6.0, testutil.ToFloat64(metrics.CapacityShortfallTotal))

	metrics.ResetPlanGauges()
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.PlanTotalFTE))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.CapacityShortfallTotal))
}

func TestPush(t *testing.T) {
	var calls atomic.Int32
	var path atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Fail the first attempt to exercise the retry.
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		path.Store(r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := metrics.Push(context.Background(), srv.URL, "run-123", 3)
	assert.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.True(t, strings.Contains(path.Load().(string), "/job/"+metrics.JobName))
	assert.True(t, strings.Contains(path.Load().(string), "/run_id/run-123"))
}

func TestPush_GivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := metrics.Push(context.Background(), srv.URL, "", 0)
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
