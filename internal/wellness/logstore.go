package wellness

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"lg/wellness-go-api/internal/storage"
)

// LogStore keeps the append-only water, sleep and activity logs plus the body
// metrics snapshot of every partition.
type LogStore struct {
	backend storage.Backend
	clock   Clock

	// mu serializes read-modify-write of partition records.
	mu sync.Mutex
}

func NewLogStore(backend storage.Backend, clock Clock) *LogStore {
	return &LogStore{backend: backend, clock: clock}
}

/* ─── Appends ─────────────────────────────────────────────────────────── */

// AppendWater validates and stores a drink. Time and date default to now.
func (s *LogStore) AppendWater(ctx context.Context, partition string, in WaterEntry) (WaterEntry, error) {
	if in.AmountMl <= 0 || in.AmountMl > MaxWaterMl {
		return WaterEntry{}, invalid("amountMl", fmt.Sprintf("must be positive and at most %d ml", MaxWaterMl))
	}
	now := s.clock.Now()
	if in.Time == "" {
		in.Time = now.Format(TimeLayout)
	} else if _, ok := parseClockTime(in.Time); !ok {
		return WaterEntry{}, invalid("time", "expected HH:MM")
	}
	date, err := s.stampDate(in.Date)
	if err != nil {
		return WaterEntry{}, err
	}
	e := WaterEntry{ID: uuid.NewString(), Time: in.Time, AmountMl: in.AmountMl, Date: date}
	if err := appendEntry(ctx, s, Key(KindWater, partition), e); err != nil {
		return WaterEntry{}, err
	}
	return e, nil
}

// AppendSleep derives duration and quality from the start/end pair.
func (s *LogStore) AppendSleep(ctx context.Context, partition string, in SleepEntry) (SleepEntry, error) {
	if in.Start == "" {
		return SleepEntry{}, invalid("start", "is required")
	}
	if in.End == "" {
		return SleepEntry{}, invalid("end", "is required")
	}
	hours, err := SleepDuration(in.Start, in.End)
	if err != nil {
		return SleepEntry{}, err
	}
	date, err := s.stampDate(in.Date)
	if err != nil {
		return SleepEntry{}, err
	}
	e := SleepEntry{
		ID:            uuid.NewString(),
		Start:         in.Start,
		End:           in.End,
		Date:          date,
		DurationHours: hours,
		Quality:       SleepQuality(hours),
	}
	if err := appendEntry(ctx, s, Key(KindSleep, partition), e); err != nil {
		return SleepEntry{}, err
	}
	return e, nil
}

// AppendActivity stores a session. Intensity defaults to "custom".
func (s *LogStore) AppendActivity(ctx context.Context, partition string, in ActivityEntry) (ActivityEntry, error) {
	in.Type = strings.TrimSpace(in.Type)
	if in.Type == "" {
		return ActivityEntry{}, invalid("type", "is required")
	}
	if in.Minutes <= 0 || in.Minutes > MaxActivityMinutes {
		return ActivityEntry{}, invalid("minutes", fmt.Sprintf("must be positive and at most %d", MaxActivityMinutes))
	}
	if in.Intensity == "" {
		in.Intensity = "custom"
	}
	date, err := s.stampDate(in.Date)
	if err != nil {
		return ActivityEntry{}, err
	}
	e := ActivityEntry{ID: uuid.NewString(), Type: in.Type, Minutes: in.Minutes, Intensity: in.Intensity, Date: date}
	if err := appendEntry(ctx, s, Key(KindActivity, partition), e); err != nil {
		return ActivityEntry{}, err
	}
	return e, nil
}

func (s *LogStore) stampDate(date string) (string, error) {
	if date == "" {
		return s.clock.Now().Format(DateLayout), nil
	}
	if _, ok := parseDate(date, s.clock.Now().Location()); !ok {
		return "", invalid("date", "expected YYYY-MM-DD")
	}
	return date, nil
}

func appendEntry[T any](ctx context.Context, s *LogStore, key string, e T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := LoadRecord(ctx, s.backend, key, []T{})
	if err != nil {
		return err
	}
	return SaveRecord(ctx, s.backend, key, append(list, e))
}

/* ─── Reads ───────────────────────────────────────────────────────────── */

func (s *LogStore) Water(ctx context.Context, partition string) ([]WaterEntry, error) {
	return loadList[WaterEntry](ctx, s.backend, Key(KindWater, partition))
}

func (s *LogStore) Sleep(ctx context.Context, partition string) ([]SleepEntry, error) {
	return loadList[SleepEntry](ctx, s.backend, Key(KindSleep, partition))
}

func (s *LogStore) Activity(ctx context.Context, partition string) ([]ActivityEntry, error) {
	return loadList[ActivityEntry](ctx, s.backend, Key(KindActivity, partition))
}

// loadList never returns a nil slice so JSON renders [] rather than null.
func loadList[T any](ctx context.Context, b storage.Backend, key string) ([]T, error) {
	list, err := LoadRecord(ctx, b, key, []T{})
	if list == nil {
		list = []T{}
	}
	return list, err
}

/* ─── Body metrics ────────────────────────────────────────────────────── */

// BodyMetrics returns the snapshot, or the defaults when none was saved.
func (s *LogStore) BodyMetrics(ctx context.Context, partition string) (BodyMetrics, error) {
	return LoadRecord(ctx, s.backend, Key(KindBodyMetric, partition), DefaultBodyMetrics())
}

// SaveBodyMetrics replaces the snapshot after range-checking height and weight.
func (s *LogStore) SaveBodyMetrics(ctx context.Context, partition string, m BodyMetrics) (BodyMetrics, error) {
	p := Profile{HeightCm: &m.HeightCm, WeightKg: &m.WeightKg}
	if err := p.Validate(); err != nil {
		return BodyMetrics{}, err
	}
	if strings.TrimSpace(m.GoalRange) == "" {
		m.GoalRange = DefaultBodyMetrics().GoalRange
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := SaveRecord(ctx, s.backend, Key(KindBodyMetric, partition), m); err != nil {
		return BodyMetrics{}, err
	}
	return m, nil
}

// ClearPartition removes the logs and body metrics of partition.
func (s *LogStore) ClearPartition(ctx context.Context, partition string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Delete(ctx, partitionKeys(partition, logKinds)...); err != nil {
		return fmt.Errorf("clear partition %s: %w", partition, err)
	}
	return nil
}
