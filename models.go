package main

import (
	"lg/wellness-go-api/internal/identity"
	"lg/wellness-go-api/internal/wellness"
)

/* ─── Auth ────────────────────────────────────────────────────────────── */

// authResponse is returned by register and login.
type authResponse struct {
	Token string        `json:"token"`
	User  identity.User `json:"user"`
}

// changePasswordRequest is the request body for POST /api/profile/password.
type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

/* ─── Calculators ─────────────────────────────────────────────────────── */

// calcRequest is the request body for the /api/calc/* endpoints. When Self is
// set, gender and birth date come from the signed-in user's profile.
type calcRequest struct {
	wellness.Profile
	ActivityLevel string `json:"activityLevel"`
	Self          bool   `json:"self"`
}

/* ─── Body metrics ────────────────────────────────────────────────────── */

// bodyMetricsResponse is the snapshot plus every index derivable from it and,
// for signed-in users, their gender and birth date.
type bodyMetricsResponse struct {
	wellness.BodyMetrics
	Report wellness.Report `json:"report"`
}

/* ─── Summary ─────────────────────────────────────────────────────────── */

// summaryResponse is the response shape for GET /api/summary.
type summaryResponse struct {
	wellness.Summary
	Advice []string       `json:"advice"`
	Tips   []wellness.Tip `json:"tips"`
}

/* ─── Reminders ───────────────────────────────────────────────────────── */

// reminderSettings is the response shape for GET/PUT /api/reminders.
type reminderSettings struct {
	Toggles  wellness.Toggles  `json:"toggles"`
	Schedule wellness.Schedule `json:"schedule"`
}

// inboxResponse is the response shape for GET /api/reminders/inbox.
type inboxResponse struct {
	Messages []string `json:"messages"`
}

// setPlanRequest is the request body for PATCH /api/admin/users/:id/plan.
type setPlanRequest struct {
	Plan string `json:"plan"`
}
