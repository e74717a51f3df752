package main

import (
	"net/http"
	"strings"
	"testing"

	"lg/wellness-go-api/internal/wellness"
)

/* ─── Reminder settings ──────────────────────────────────────────────── */

// TestReminderSettings verifies the defaults and that PUT changes only the
// categories it names.
func TestReminderSettings(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/reminders", "", nil)
	expectStatus(t, w, http.StatusOK)
	got := decode[reminderSettings](t, w)
	if !got.Toggles[wellness.CategoryWater] || !got.Toggles[wellness.CategoryMove] || got.Toggles[wellness.CategorySleep] {
		t.Errorf("unexpected default toggles: %v", got.Toggles)
	}
	if len(got.Schedule[wellness.CategoryWater]) != 3 {
		t.Errorf("expected 3 water slots, got %v", got.Schedule[wellness.CategoryWater])
	}

	w = env.do(http.MethodPut, "/api/reminders", "", map[string]bool{"sleep": true})
	expectStatus(t, w, http.StatusOK)
	got = decode[reminderSettings](t, w)
	if !got.Toggles[wellness.CategorySleep] || !got.Toggles[wellness.CategoryWater] {
		t.Errorf("expected sleep enabled and water untouched, got %v", got.Toggles)
	}

	w = env.do(http.MethodPut, "/api/reminders", "", map[string]bool{"stretch": true})
	expectStatus(t, w, http.StatusBadRequest)
}

/* ─── Inbox ──────────────────────────────────────────────────────────── */

// TestInbox verifies a fired slot lands in the inbox once and that DELETE
// empties it.
func TestInbox(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	env.setTime(10, 0)
	if _, err := env.h.reminders.Check(ctx, wellness.GuestPartition); err != nil {
		t.Fatalf("check: %v", err)
	}
	if _, err := env.h.reminders.Check(ctx, wellness.GuestPartition); err != nil {
		t.Fatalf("second check: %v", err)
	}

	w := env.do(http.MethodGet, "/api/reminders/inbox", "", nil)
	expectStatus(t, w, http.StatusOK)
	inbox := decode[inboxResponse](t, w)
	want := wellness.ReminderMessage(wellness.CategoryWater)
	if len(inbox.Messages) != 1 || inbox.Messages[0] != want {
		t.Errorf("expected one water reminder, got %v", inbox.Messages)
	}

	expectStatus(t, env.do(http.MethodDelete, "/api/reminders/inbox", "", nil), http.StatusNoContent)

	w = env.do(http.MethodGet, "/api/reminders/inbox", "", nil)
	if got := decode[inboxResponse](t, w); len(got.Messages) != 0 {
		t.Errorf("expected empty inbox, got %v", got.Messages)
	}
}

/* ─── Calendar ───────────────────────────────────────────────────────── */

// TestReminderCalendar verifies the feed lists one event per enabled slot.
func TestReminderCalendar(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/reminders/calendar.ics", "", nil)
	expectStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("expected text/calendar, got %q", ct)
	}

	body := w.Body.String()
	// Default toggles: 3 water slots + 2 move slots, sleep off.
	if n := strings.Count(body, "BEGIN:VEVENT"); n != 5 {
		t.Errorf("expected 5 events, got %d", n)
	}
	if !strings.Contains(body, "RRULE:FREQ=DAILY") {
		t.Error("expected daily recurrence")
	}
}
