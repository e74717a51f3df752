package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lg/wellness-go-api/internal/wellness"
)

type notificationsResponse struct {
	Notifications []wellness.Notification `json:"notifications"`
}

// getNotifications lists the caller's notifications.
// GET /api/notifications.
func (h *Handler) getNotifications(c *gin.Context) {
	list, err := h.notices.List(c, partition(c))
	if err != nil {
		failWith(c, err, "failed to fetch notifications")
		return
	}
	c.JSON(http.StatusOK, notificationsResponse{Notifications: list})
}

// patchNotification sets or toggles one notification's status.
// PATCH /api/notifications/:id. Body (optional): { "status": "active"|"paused" }.
// Without a status the notification flips between active and paused.
func (h *Handler) patchNotification(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid notification id")
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			apiError(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	n, err := h.notices.SetStatus(c, partition(c), id, body.Status)
	if errors.Is(err, wellness.ErrNoticeNotFound) {
		apiError(c, http.StatusNotFound, "notification not found")
		return
	}
	if err != nil {
		failWith(c, err, "failed to update notification")
		return
	}
	c.JSON(http.StatusOK, n)
}
