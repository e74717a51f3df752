package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"lg/wellness-go-api/internal/storage"
	"lg/wellness-go-api/internal/wellness"
)

type Config struct {
	Addr           string
	GinMode        string
	Storage        storage.Options
	Timezone       *time.Location
	Schedule       wellness.Schedule
	MetricsEnabled bool
}

// Load reads the environment, after merging a .env file when one exists.
func Load() (*Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":3000"
	}

	driver := os.Getenv("STORAGE_DRIVER")
	if driver == "" {
		driver = "memory"
	}

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "./data/wellness.db"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	var redisDB int
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("REDIS_DB must be a number")
		}
		redisDB = n
	}

	tzName := os.Getenv("TIMEZONE")
	if tzName == "" {
		tzName = "Local"
	}
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	schedule, err := LoadSchedule(os.Getenv("REMINDER_SCHEDULE_FILE"))
	if err != nil {
		return nil, err
	}

	metrics := true
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		metrics, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("METRICS_ENABLED must be a boolean")
		}
	}

	return &Config{
		Addr:    addr,
		GinMode: os.Getenv("GIN_MODE"),
		Storage: storage.Options{
			Driver:      driver,
			DatabaseURL: os.Getenv("DB_URL"),
			SQLitePath:  sqlitePath,
			Redis: storage.RedisOptions{
				Addr:     redisAddr,
				Password: os.Getenv("REDIS_PASSWORD"),
				DB:       redisDB,
			},
		},
		Timezone:       tz,
		Schedule:       schedule,
		MetricsEnabled: metrics,
	}, nil
}

// LoadSchedule reads a YAML reminder schedule such as
//
//	water: ["09:00", "13:00"]
//	sleep: ["23:00"]
//
// Categories left out keep their default slots. An empty path yields the
// default schedule.
func LoadSchedule(path string) (wellness.Schedule, error) {
	if path == "" {
		return wellness.DefaultSchedule(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reminder schedule: %w", err)
	}
	var raw wellness.Schedule
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse reminder schedule: %w", err)
	}
	schedule, err := raw.Normalize()
	if err != nil {
		return nil, fmt.Errorf("reminder schedule: %w", err)
	}
	return schedule, nil
}
