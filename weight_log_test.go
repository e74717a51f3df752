package main

import (
	"math"
	"net/http"
	"testing"
)

// TestBodyMetrics_Defaults verifies the default snapshot and that a guest gets
// BMI but no age-dependent indices.
func TestBodyMetrics_Defaults(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/body-metrics", "", nil)
	expectStatus(t, w, http.StatusOK)

	res := decode[bodyMetricsResponse](t, w)
	if res.WeightKg != 62 || res.HeightCm != 168 || res.GoalRange != "18.5 - 23" {
		t.Errorf("unexpected defaults: %+v", res.BodyMetrics)
	}
	if res.Report.BMI == nil || math.Abs(*res.Report.BMI-21.97) > 0.01 {
		t.Errorf("expected BMI ≈ 21.97, got %v", res.Report.BMI)
	}
	if res.Report.BMR != nil || res.Report.MaxHR != nil {
		t.Errorf("expected no BMR or max HR for a guest, got %+v", res.Report)
	}
}

// TestBodyMetrics_SignedIn verifies the report uses the user's gender and
// birth date.
func TestBodyMetrics_SignedIn(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser("me@example.com", "user")

	w := env.do(http.MethodPut, "/api/body-metrics", token, map[string]any{"weightKg": 70, "heightCm": 175})
	expectStatus(t, w, http.StatusOK)

	res := decode[bodyMetricsResponse](t, w)
	if res.GoalRange != "18.5 - 23" {
		t.Errorf("expected default goal range, got %q", res.GoalRange)
	}
	if res.Report.BMR == nil || math.Abs(*res.Report.BMR-1648.75) > 0.001 {
		t.Errorf("expected BMR 1648.75, got %v", res.Report.BMR)
	}
	if res.Report.MaxHR == nil || *res.Report.MaxHR != 190 {
		t.Errorf("expected max HR 190, got %v", res.Report.MaxHR)
	}

	w = env.do(http.MethodGet, "/api/body-metrics", token, nil)
	if got := decode[bodyMetricsResponse](t, w); got.WeightKg != 70 {
		t.Errorf("expected saved weight 70, got %v", got.WeightKg)
	}
}

// TestBodyMetrics_Rejected verifies nothing is saved when a value is out of
// range.
func TestBodyMetrics_Rejected(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPut, "/api/body-metrics", "", map[string]any{"weightKg": 300, "heightCm": 175})
	expectStatus(t, w, http.StatusBadRequest)
	if got := decode[map[string]string](t, w)["field"]; got != "weightKg" {
		t.Errorf("expected field weightKg, got %q", got)
	}

	w = env.do(http.MethodGet, "/api/body-metrics", "", nil)
	if got := decode[bodyMetricsResponse](t, w); got.WeightKg != 62 {
		t.Errorf("expected defaults to survive, got weight %v", got.WeightKg)
	}
}

// TestBodyMetrics_FutureBirthDate verifies a birth date in the future can't be
// saved on the profile, so no negative age is ever reported.
func TestBodyMetrics_FutureBirthDate(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser("me@example.com", "user")

	w := env.do(http.MethodPatch, "/api/profile", token, map[string]any{"birthDate": "2999-01-01"})
	expectStatus(t, w, http.StatusBadRequest)
	if got := decode[map[string]string](t, w)["field"]; got != "birthDate" {
		t.Errorf("expected field birthDate, got %q", got)
	}

	w = env.do(http.MethodGet, "/api/body-metrics", token, nil)
	expectStatus(t, w, http.StatusOK)
	if res := decode[bodyMetricsResponse](t, w); res.Report.Age == nil || *res.Report.Age <= 0 {
		t.Errorf("expected a positive age, got %v", res.Report.Age)
	}
}
