package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/wellness-go-api/internal/wellness"
)

// bodyMetricsReport evaluates the snapshot, borrowing gender and birth date
// from the signed-in user when there is one.
func (h *Handler) bodyMetricsReport(c *gin.Context, m wellness.BodyMetrics) (wellness.Report, error) {
	p := wellness.Profile{HeightCm: &m.HeightCm, WeightKg: &m.WeightKg}
	if u, ok := currentUser(c); ok {
		p.Gender, p.BirthDate = u.Gender, u.BirthDate
	}
	return wellness.Evaluate(p, "", h.clock.Now())
}

// getBodyMetrics returns the weight/height snapshot with derived indices.
// GET /api/body-metrics. Defaults (62 kg, 168 cm) when nothing was saved.
func (h *Handler) getBodyMetrics(c *gin.Context) {
	m, err := h.logs.BodyMetrics(c, partition(c))
	if err != nil {
		failWith(c, err, "failed to fetch body metrics")
		return
	}
	report, err := h.bodyMetricsReport(c, m)
	if err != nil {
		failWith(c, err, "failed to evaluate body metrics")
		return
	}
	c.JSON(http.StatusOK, bodyMetricsResponse{BodyMetrics: m, Report: report})
}

// putBodyMetrics replaces the snapshot.
// PUT /api/body-metrics. Body: { "weightKg", "heightCm", "goalRangeText"? }.
// Height and weight are range-checked; nothing is saved on rejection.
func (h *Handler) putBodyMetrics(c *gin.Context) {
	var body wellness.BodyMetrics
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	m, err := h.logs.SaveBodyMetrics(c, partition(c), body)
	if err != nil {
		failWith(c, err, "failed to save body metrics")
		return
	}
	report, err := h.bodyMetricsReport(c, m)
	if err != nil {
		failWith(c, err, "failed to evaluate body metrics")
		return
	}
	c.JSON(http.StatusOK, bodyMetricsResponse{BodyMetrics: m, Report: report})
}
