package main

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/wellness-go-api/internal/export"
	"lg/wellness-go-api/internal/identity"
)

/* ─── Profile ─────────────────────────────────────────────────────────── */

// getProfile returns the signed-in user.
// GET /api/profile.
func (h *Handler) getProfile(c *gin.Context) {
	u, _ := currentUser(c)
	c.JSON(http.StatusOK, u)
}

// patchProfile updates only the provided identity fields.
// PATCH /api/profile. Body: { "name"?, "gender"?, "birthDate"? }.
func (h *Handler) patchProfile(c *gin.Context) {
	u, _ := currentUser(c)

	var body identity.ProfileUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	updated, err := h.users.UpdateProfile(c, u.ID, body)
	if err != nil {
		failWith(c, err, "failed to update profile")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// changePassword replaces the password after checking the current one.
// POST /api/profile/password. Body: { "currentPassword", "newPassword" }.
func (h *Handler) changePassword(c *gin.Context) {
	u, _ := currentUser(c)

	var body changePasswordRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	err := h.users.ChangePassword(c, u.ID, body.CurrentPassword, body.NewPassword)
	if errors.Is(err, identity.ErrInvalidCredentials) {
		apiError(c, http.StatusBadRequest, "current password is incorrect")
		return
	}
	if err != nil {
		failWith(c, err, "failed to change password")
		return
	}
	c.Status(http.StatusNoContent)
}

/* ─── Reminders ───────────────────────────────────────────────────────── */

// getReminderSettings returns per-category toggles and the slot schedule.
// GET /api/reminders.
func (h *Handler) getReminderSettings(c *gin.Context) {
	toggles, err := h.reminders.Toggles(c, partition(c))
	if err != nil {
		failWith(c, err, "failed to fetch reminder settings")
		return
	}
	c.JSON(http.StatusOK, reminderSettings{Toggles: toggles, Schedule: h.reminders.Schedule()})
}

// putReminderSettings enables or disables categories.
// PUT /api/reminders. Body: { "water"?: bool, "move"?: bool, "sleep"?: bool }.
// Only the categories present are changed.
func (h *Handler) putReminderSettings(c *gin.Context) {
	var body map[string]bool
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	toggles, err := h.reminders.SetToggles(c, partition(c), body)
	if err != nil {
		failWith(c, err, "failed to save reminder settings")
		return
	}
	c.JSON(http.StatusOK, reminderSettings{Toggles: toggles, Schedule: h.reminders.Schedule()})
}

// getInbox returns fired reminder messages, oldest first.
// GET /api/reminders/inbox.
func (h *Handler) getInbox(c *gin.Context) {
	msgs, err := h.reminders.Inbox(c, partition(c))
	if err != nil {
		failWith(c, err, "failed to fetch inbox")
		return
	}
	c.JSON(http.StatusOK, inboxResponse{Messages: msgs})
}

// markInboxRead empties the inbox.
// DELETE /api/reminders/inbox. Returns 204.
func (h *Handler) markInboxRead(c *gin.Context) {
	if err := h.reminders.MarkAllRead(c, partition(c)); err != nil {
		failWith(c, err, "failed to clear inbox")
		return
	}
	c.Status(http.StatusNoContent)
}

// getReminderCalendar returns the enabled reminder slots as a daily
// recurring iCalendar feed.
// GET /api/reminders/calendar.ics.
func (h *Handler) getReminderCalendar(c *gin.Context) {
	p := partition(c)
	toggles, err := h.reminders.Toggles(c, p)
	if err != nil {
		failWith(c, err, "failed to fetch reminder settings")
		return
	}

	now := h.clock.Now()
	var buf bytes.Buffer
	if err := export.ToICS(&buf, p, h.reminders.Schedule(), toggles, now.Location(), now); err != nil {
		failWith(c, err, "failed to build calendar")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="reminders.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}
