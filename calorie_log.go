package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lg/wellness-go-api/internal/wellness"
)

/* ─── Water ───────────────────────────────────────────────────────────── */

// getWaterLog returns every water entry in the caller's partition, oldest first.
// GET /api/water. Returns an empty array (not null) when nothing is logged.
func (h *Handler) getWaterLog(c *gin.Context) {
	entries, err := h.logs.Water(c, partition(c))
	if err != nil {
		failWith(c, err, "failed to fetch water log")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// createWaterEntry appends a drink.
// POST /api/water. Body: { "amountMl", "time"?, "date"? }. Time and date
// default to now in the server timezone.
func (h *Handler) createWaterEntry(c *gin.Context) {
	var body wellness.WaterEntry
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	e, err := h.logs.AppendWater(c, partition(c), body)
	if err != nil {
		failWith(c, err, "failed to save water entry")
		return
	}
	logEntries.WithLabelValues("water").Inc()
	c.JSON(http.StatusCreated, e)
}

/* ─── Sleep ───────────────────────────────────────────────────────────── */

// getSleepLog returns every sleep entry in the caller's partition.
// GET /api/sleep.
func (h *Handler) getSleepLog(c *gin.Context) {
	entries, err := h.logs.Sleep(c, partition(c))
	if err != nil {
		failWith(c, err, "failed to fetch sleep log")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// createSleepEntry appends a night; duration and quality are derived.
// POST /api/sleep. Body: { "start": "HH:MM", "end": "HH:MM", "date"? }.
func (h *Handler) createSleepEntry(c *gin.Context) {
	var body wellness.SleepEntry
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	e, err := h.logs.AppendSleep(c, partition(c), body)
	if err != nil {
		failWith(c, err, "failed to save sleep entry")
		return
	}
	logEntries.WithLabelValues("sleep").Inc()
	c.JSON(http.StatusCreated, e)
}

/* ─── Activity ────────────────────────────────────────────────────────── */

// getActivityLog returns every activity entry in the caller's partition.
// GET /api/activity.
func (h *Handler) getActivityLog(c *gin.Context) {
	entries, err := h.logs.Activity(c, partition(c))
	if err != nil {
		failWith(c, err, "failed to fetch activity log")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// createActivityEntry appends an exercise session.
// POST /api/activity. Body: { "type", "minutes", "intensity"?, "date"? }.
func (h *Handler) createActivityEntry(c *gin.Context) {
	var body wellness.ActivityEntry
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	e, err := h.logs.AppendActivity(c, partition(c), body)
	if err != nil {
		failWith(c, err, "failed to save activity entry")
		return
	}
	logEntries.WithLabelValues("activity").Inc()
	c.JSON(http.StatusCreated, e)
}

/* ─── Summary ─────────────────────────────────────────────────────────── */

// getSummary returns day/7-day/30-day totals for all three logs, the advisor
// messages for the day and the shared tips.
// GET /api/summary?date=YYYY-MM-DD. date defaults to today.
func (h *Handler) getSummary(c *gin.Context) {
	asOf := h.clock.Now()
	if d := c.Query("date"); d != "" {
		t, err := time.ParseInLocation(wellness.DateLayout, d, asOf.Location())
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		asOf = t
	}

	p := partition(c)
	water, err := h.logs.Water(c, p)
	if err != nil {
		failWith(c, err, "failed to fetch water log")
		return
	}
	sleep, err := h.logs.Sleep(c, p)
	if err != nil {
		failWith(c, err, "failed to fetch sleep log")
		return
	}
	activity, err := h.logs.Activity(c, p)
	if err != nil {
		failWith(c, err, "failed to fetch activity log")
		return
	}
	tips, err := h.tips.List(c)
	if err != nil {
		failWith(c, err, "failed to fetch tips")
		return
	}

	s := wellness.Summarize(water, sleep, activity, asOf)
	c.JSON(http.StatusOK, summaryResponse{Summary: s, Advice: wellness.Advise(s), Tips: tips})
}
