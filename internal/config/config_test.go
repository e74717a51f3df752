package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"ADDR", "STORAGE_DRIVER", "SQLITE_PATH", "REDIS_ADDR", "REDIS_DB", "TIMEZONE", "REMINDER_SCHEDULE_FILE", "METRICS_ENABLED"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":3000" || cfg.Storage.Driver != "memory" || !cfg.MetricsEnabled {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Storage.Redis.Addr != "localhost:6379" {
		t.Errorf("redis addr = %s", cfg.Storage.Redis.Addr)
	}
	if !slices.Equal(cfg.Schedule["water"], []string{"10:00", "14:00", "18:00"}) {
		t.Errorf("expected default schedule, got %v", cfg.Schedule)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ADDR", ":8080")
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("TIMEZONE", "Asia/Ho_Chi_Minh")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("REMINDER_SCHEDULE_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":8080" || cfg.Storage.Driver != "redis" || cfg.Storage.Redis.DB != 2 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Timezone.String() != "Asia/Ho_Chi_Minh" || cfg.MetricsEnabled {
		t.Errorf("unexpected tz/metrics %v %v", cfg.Timezone, cfg.MetricsEnabled)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"REDIS_DB":        "two",
		"TIMEZONE":        "Mars/Olympus",
		"METRICS_ENABLED": "maybe",
	}
	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv("REDIS_DB", "")
			t.Setenv("TIMEZONE", "UTC")
			t.Setenv("METRICS_ENABLED", "")
			t.Setenv("REMINDER_SCHEDULE_FILE", "")
			t.Setenv(k, v)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", k, v)
			}
		})
	}
}

func TestLoadSchedule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.yaml")
	os.WriteFile(path, []byte("water: [\"18:00\", \"09:00\"]\nsleep:\n  - \"23:15\"\n"), 0o644)

	s, err := LoadSchedule(path)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(s["water"], []string{"09:00", "18:00"}) || !slices.Equal(s["sleep"], []string{"23:15"}) {
		t.Errorf("unexpected schedule %v", s)
	}
	if !slices.Equal(s["move"], []string{"11:30", "16:30"}) {
		t.Errorf("move should keep defaults, got %v", s["move"])
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(bad, []byte("water: [\"9am\"]\n"), 0o644)
	if _, err := LoadSchedule(bad); err == nil {
		t.Error("expected error for malformed slot")
	}
	if _, err := LoadSchedule(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
