package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/wellness-go-api/internal/identity"
	"lg/wellness-go-api/internal/storage"
	"lg/wellness-go-api/internal/wellness"
)

// Handler holds shared dependencies (services, clock) for all route handlers.
type Handler struct {
	logs      *wellness.LogStore
	reminders *wellness.Reminders
	notices   *wellness.Notifications
	tips      *wellness.TipStore
	users     *identity.Directory
	hub       *realtimeHub
	clock     wellness.Clock
}

// newHandler wires every service over one storage backend. bcryptCost 0 means
// bcrypt.DefaultCost.
func newHandler(backend storage.Backend, clock wellness.Clock, schedule wellness.Schedule, bcryptCost int) *Handler {
	return &Handler{
		logs:      wellness.NewLogStore(backend, clock),
		reminders: wellness.NewReminders(backend, clock, schedule),
		notices:   wellness.NewNotifications(backend),
		tips:      wellness.NewTipStore(backend),
		users:     identity.NewDirectory(backend, bcryptCost),
		hub:       newRealtimeHub(),
		clock:     clock,
	}
}

/* ─── Response helpers ────────────────────────────────────────────────── */

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// failWith maps err onto a response. Validation errors become 400 with the
// offending field; anything else is logged and reported as 500 with message.
func failWith(c *gin.Context, err error, message string) {
	var verr *wellness.ValidationError
	if errors.As(err, &verr) {
		validationFailures.WithLabelValues(verr.Field).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
		return
	}
	log.Printf("[%s %s] %v", c.Request.Method, c.FullPath(), err)
	apiError(c, http.StatusInternalServerError, message)
}

// userPartitions lists every registered user id for the reminder tick.
func (h *Handler) userPartitions(ctx context.Context) ([]string, error) {
	users, err := h.users.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids, nil
}

// clearPartition drops everything stored under partition, one store at a time.
func (h *Handler) clearPartition(ctx context.Context, partition string) error {
	if err := h.logs.ClearPartition(ctx, partition); err != nil {
		return err
	}
	if err := h.reminders.ClearPartition(ctx, partition); err != nil {
		return err
	}
	return h.notices.ClearPartition(ctx, partition)
}

/* ─── Routes ──────────────────────────────────────────────────────────── */

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.POST("/api/register", h.register)
	router.POST("/api/login", h.login)

	// Guest or authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.POST("/calc/bmi", h.calcBMI)
	api.POST("/calc/bmr", h.calcBMR)
	api.POST("/calc/heart-rate", h.calcHeartRate)
	api.GET("/body-metrics", h.getBodyMetrics)
	api.PUT("/body-metrics", h.putBodyMetrics)
	api.GET("/water", h.getWaterLog)
	api.POST("/water", h.createWaterEntry)
	api.GET("/sleep", h.getSleepLog)
	api.POST("/sleep", h.createSleepEntry)
	api.GET("/activity", h.getActivityLog)
	api.POST("/activity", h.createActivityEntry)
	api.GET("/summary", h.getSummary)
	api.GET("/reminders", h.getReminderSettings)
	api.PUT("/reminders", h.putReminderSettings)
	api.GET("/reminders/inbox", h.getInbox)
	api.DELETE("/reminders/inbox", h.markInboxRead)
	api.GET("/reminders/calendar.ics", h.getReminderCalendar)
	api.GET("/reminders/ws", h.reminderSocket)
	api.GET("/notifications", h.getNotifications)
	api.PATCH("/notifications/:id", h.patchNotification)
	api.GET("/tips", h.getTips)
	api.GET("/export", h.exportLogs)

	// Signed-in routes
	account := api.Group("", requireUser())
	account.POST("/logout", h.logout)
	account.GET("/profile", h.getProfile)
	account.PATCH("/profile", h.patchProfile)
	account.POST("/profile/password", h.changePassword)

	// Admin routes
	admin := api.Group("", requireAdmin())
	admin.POST("/tips", h.createTip)
	admin.GET("/admin/users", h.listUsers)
	admin.PATCH("/admin/users/:id/plan", h.setUserPlan)
	admin.DELETE("/admin/users/:id", h.deleteUser)
}
