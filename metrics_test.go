package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"lg/wellness-go-api/internal/wellness"
)

// TestMetricsRoute verifies counters are exposed after traffic.
func TestMetricsRoute(t *testing.T) {
	env := newTestEnv(t)
	metricsRoute(env.router)

	expectStatus(t, env.do(http.MethodPost, "/api/calc/bmi", "", map[string]any{"heightCm": 170, "weightKg": 65}), http.StatusOK)

	w := env.do(http.MethodGet, "/metrics", "", nil)
	expectStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `wellness_calculations_total{type="bmi"}`) {
		t.Error("expected the bmi calculation counter")
	}
}

// TestRecordFired verifies messages are counted under their category.
func TestRecordFired(t *testing.T) {
	water := remindersFired.WithLabelValues(wellness.CategoryWater)
	move := remindersFired.WithLabelValues(wellness.CategoryMove)
	beforeWater, beforeMove := testutil.ToFloat64(water), testutil.ToFloat64(move)

	recordFired(wellness.GuestPartition, []string{
		wellness.ReminderMessage(wellness.CategoryWater),
		wellness.ReminderMessage(wellness.CategoryMove),
		"unrelated",
	})

	if got := testutil.ToFloat64(water) - beforeWater; got != 1 {
		t.Errorf("expected 1 water reminder counted, got %v", got)
	}
	if got := testutil.ToFloat64(move) - beforeMove; got != 1 {
		t.Errorf("expected 1 move reminder counted, got %v", got)
	}
}
