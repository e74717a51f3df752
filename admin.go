package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/wellness-go-api/internal/identity"
)

// listUsers returns every account without credentials.
// GET /api/admin/users.
func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c)
	if err != nil {
		failWith(c, err, "failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// setUserPlan switches a user between Free and Pro.
// PATCH /api/admin/users/:id/plan. Body: { "plan": "Free" | "Pro" }.
func (h *Handler) setUserPlan(c *gin.Context) {
	var body setPlanRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := h.users.SetPlan(c, c.Param("id"), body.Plan)
	if errors.Is(err, identity.ErrUserNotFound) {
		apiError(c, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		failWith(c, err, "failed to update plan")
		return
	}
	c.JSON(http.StatusOK, u)
}

// deleteUser removes an account and everything logged under it.
// DELETE /api/admin/users/:id. Admins can't delete themselves.
func (h *Handler) deleteUser(c *gin.Context) {
	me, _ := currentUser(c)
	id := c.Param("id")
	if id == me.ID {
		apiError(c, http.StatusBadRequest, "cannot delete your own account")
		return
	}

	err := h.users.Delete(c, id)
	if errors.Is(err, identity.ErrUserNotFound) {
		apiError(c, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		failWith(c, err, "failed to delete user")
		return
	}
	if err := h.clearPartition(c, id); err != nil {
		failWith(c, err, "failed to clear user data")
		return
	}
	c.Status(http.StatusNoContent)
}
