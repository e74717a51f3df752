package main

import (
	"net/http"
	"testing"

	"lg/wellness-go-api/internal/wellness"
)

func TestNotifications_ListAndToggle(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/notifications", "", nil)
	expectStatus(t, w, http.StatusOK)
	got := decode[notificationsResponse](t, w).Notifications
	if len(got) != 2 || got[0].Status != wellness.NoticeActive {
		t.Fatalf("unexpected defaults: %+v", got)
	}

	w = env.do(http.MethodPatch, "/api/notifications/1", "", nil)
	expectStatus(t, w, http.StatusOK)
	if n := decode[wellness.Notification](t, w); n.Status != wellness.NoticePaused {
		t.Errorf("expected toggle to paused, got %s", n.Status)
	}

	w = env.do(http.MethodPatch, "/api/notifications/2", "", map[string]any{"status": "active"})
	expectStatus(t, w, http.StatusOK)

	got = decode[notificationsResponse](t, env.do(http.MethodGet, "/api/notifications", "", nil)).Notifications
	if got[0].Status != wellness.NoticePaused || got[1].Status != wellness.NoticeActive {
		t.Errorf("statuses not persisted: %+v", got)
	}
}

func TestNotifications_PatchErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		body any
		want int
	}{
		{"non-numeric id", "/api/notifications/abc", nil, http.StatusBadRequest},
		{"unknown id", "/api/notifications/99", nil, http.StatusNotFound},
		{"bad status", "/api/notifications/1", map[string]any{"status": "snoozed"}, http.StatusBadRequest},
		{"bad body", "/api/notifications/1", "not an object", http.StatusBadRequest},
	}

	env := newTestEnv(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectStatus(t, env.do(http.MethodPatch, tt.path, "", tt.body), tt.want)
		})
	}
}

// TestNotifications_PerUser verifies a toggle stays in the caller's partition.
func TestNotifications_PerUser(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser("me@example.com", "user")

	expectStatus(t, env.do(http.MethodPatch, "/api/notifications/1", token, nil), http.StatusOK)

	guest := decode[notificationsResponse](t, env.do(http.MethodGet, "/api/notifications", "", nil)).Notifications
	if guest[0].Status != wellness.NoticeActive {
		t.Errorf("guest list changed: %+v", guest)
	}
}
