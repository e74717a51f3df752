package main

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"lg/wellness-go-api/internal/export"
)

// seedLogs posts one entry of each kind into the guest partition.
func seedLogs(t *testing.T, env *testEnv) {
	t.Helper()
	expectStatus(t, env.do(http.MethodPost, "/api/water", "", map[string]any{"amountMl": 250}), http.StatusCreated)
	expectStatus(t, env.do(http.MethodPost, "/api/sleep", "", map[string]any{"start": "23:00", "end": "07:00"}), http.StatusCreated)
	expectStatus(t, env.do(http.MethodPost, "/api/activity", "", map[string]any{"type": "walk", "minutes": 30}), http.StatusCreated)
}

// TestExport_JSON verifies the default format and the download filename.
func TestExport_JSON(t *testing.T) {
	env := newTestEnv(t)
	seedLogs(t, env)

	w := env.do(http.MethodGet, "/api/export", "", nil)
	expectStatus(t, w, http.StatusOK)
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "wellness-2026-10-16.json") {
		t.Errorf("unexpected Content-Disposition: %q", cd)
	}
	logs := decode[export.Logs](t, w)
	if len(logs.Water) != 1 || len(logs.Sleep) != 1 || len(logs.Activity) != 1 {
		t.Errorf("expected one entry per log, got %+v", logs)
	}
}

// TestExport_CSV verifies the CSV parses and carries every section.
func TestExport_CSV(t *testing.T) {
	env := newTestEnv(t)
	seedLogs(t, env)

	w := env.do(http.MethodGet, "/api/export?format=csv", "", nil)
	expectStatus(t, w, http.StatusOK)

	r := csv.NewReader(bytes.NewReader(w.Body.Bytes()))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	var walk bool
	for _, row := range rows {
		for _, cell := range row {
			if cell == "walk" {
				walk = true
			}
		}
	}
	if !walk {
		t.Errorf("expected the activity row in %v", rows)
	}
}

// TestExport_XLSX verifies the workbook opens with one sheet per log.
func TestExport_XLSX(t *testing.T) {
	env := newTestEnv(t)
	seedLogs(t, env)

	w := env.do(http.MethodGet, "/api/export?format=xlsx", "", nil)
	expectStatus(t, w, http.StatusOK)

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Sleep")
	if err != nil {
		t.Fatalf("sleep sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("expected header + 1 row, got %d rows", len(rows))
	}
}

// TestExport_UnknownFormat verifies unsupported formats are a 400.
func TestExport_UnknownFormat(t *testing.T) {
	env := newTestEnv(t)
	expectStatus(t, env.do(http.MethodGet, "/api/export?format=pdf", "", nil), http.StatusBadRequest)
}
