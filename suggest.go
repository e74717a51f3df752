package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/wellness-go-api/internal/wellness"
)

// getTips returns the admin-curated tips shown next to the advisor.
// GET /api/tips.
func (h *Handler) getTips(c *gin.Context) {
	tips, err := h.tips.List(c)
	if err != nil {
		failWith(c, err, "failed to fetch tips")
		return
	}
	c.JSON(http.StatusOK, tips)
}

// createTip adds a tip for every user and returns the full list.
// POST /api/tips (admin). Body: { "title", "content" }, both required.
func (h *Handler) createTip(c *gin.Context) {
	var body wellness.Tip
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	tips, err := h.tips.Add(c, body)
	if err != nil {
		failWith(c, err, "failed to save tip")
		return
	}
	c.JSON(http.StatusCreated, tips)
}
