package main

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lg/wellness-go-api/internal/wellness"
)

var (
	logEntries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wellness",
			Name:      "log_entries_total",
			Help:      "Water, sleep and activity entries recorded.",
		},
		[]string{"category"},
	)

	calculations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wellness",
			Name:      "calculations_total",
			Help:      "Calculator requests served, by calculator.",
		},
		[]string{"type"},
	)

	validationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wellness",
			Name:      "validation_failures_total",
			Help:      "Rejected inputs, by offending field.",
		},
		[]string{"field"},
	)

	remindersFired = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wellness",
			Name:      "reminders_fired_total",
			Help:      "Reminder messages delivered to inboxes, by category.",
		},
		[]string{"category"},
	)

	registerOnce sync.Once
)

func registerMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(logEntries, calculations, validationFailures, remindersFired)
	})
}

// metricsRoute exposes the default registry at GET /metrics.
func metricsRoute(router *gin.Engine) {
	registerMetrics()
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// recordFired counts fired reminders by matching each message back to its
// category.
func recordFired(_ string, messages []string) {
	for _, msg := range messages {
		for _, cat := range wellness.Categories {
			if wellness.ReminderMessage(cat) == msg {
				remindersFired.WithLabelValues(cat).Inc()
				break
			}
		}
	}
}
