package main

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/wellness-go-api/internal/export"
	"lg/wellness-go-api/internal/wellness"
)

// exportLogs downloads the caller's water, sleep and activity logs.
// GET /api/export?format=json|csv|xlsx. format defaults to json.
func (h *Handler) exportLogs(c *gin.Context) {
	format := c.DefaultQuery("format", "json")

	var (
		write       func(*bytes.Buffer, export.Logs) error
		contentType string
	)
	switch format {
	case "json":
		write = func(b *bytes.Buffer, l export.Logs) error { return export.ToJSON(b, l) }
		contentType = "application/json; charset=utf-8"
	case "csv":
		write = func(b *bytes.Buffer, l export.Logs) error { return export.ToCSV(b, l) }
		contentType = "text/csv; charset=utf-8"
	case "xlsx":
		write = func(b *bytes.Buffer, l export.Logs) error { return export.ToXLSX(b, l) }
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		apiError(c, http.StatusBadRequest, "format must be json, csv or xlsx")
		return
	}

	p := partition(c)
	var (
		logs export.Logs
		err  error
	)
	if logs.Water, err = h.logs.Water(c, p); err != nil {
		failWith(c, err, "failed to fetch water log")
		return
	}
	if logs.Sleep, err = h.logs.Sleep(c, p); err != nil {
		failWith(c, err, "failed to fetch sleep log")
		return
	}
	if logs.Activity, err = h.logs.Activity(c, p); err != nil {
		failWith(c, err, "failed to fetch activity log")
		return
	}

	var buf bytes.Buffer
	if err := write(&buf, logs); err != nil {
		failWith(c, err, "failed to build export")
		return
	}

	filename := fmt.Sprintf("wellness-%s.%s", h.clock.Now().Format(wellness.DateLayout), format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
