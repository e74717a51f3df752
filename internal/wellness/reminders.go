package wellness

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"lg/wellness-go-api/internal/storage"
)

const (
	CategoryWater = "water"
	CategoryMove  = "move"
	CategorySleep = "sleep"
)

// Categories in the order they are checked and fired.
var Categories = []string{CategoryWater, CategoryMove, CategorySleep}

var reminderMessages = map[string]string{
	CategoryWater: "Time to drink some water (~250 ml).",
	CategoryMove:  "Time for 5-10 minutes of light movement.",
	CategorySleep: "Get ready for bed on time to sleep well.",
}

// ReminderMessage is the inbox text for a category.
func ReminderMessage(category string) string {
	return reminderMessages[category]
}

// Schedule maps a category to its "HH:MM" slots.
type Schedule map[string][]string

func DefaultSchedule() Schedule {
	return Schedule{
		CategoryWater: {"10:00", "14:00", "18:00"},
		CategoryMove:  {"11:30", "16:30"},
		CategorySleep: {"22:30"},
	}
}

// Normalize validates every slot and returns a copy with each category's slots
// sorted and de-duplicated. Categories missing from s keep their defaults.
func (s Schedule) Normalize() (Schedule, error) {
	out := DefaultSchedule()
	for cat, slots := range s {
		if _, ok := reminderMessages[cat]; !ok {
			return nil, invalid("schedule", fmt.Sprintf("unknown category %q", cat))
		}
		clean := make([]string, 0, len(slots))
		for _, slot := range slots {
			if _, ok := parseClockTime(slot); !ok {
				return nil, invalid("schedule", fmt.Sprintf("%s slot %q: expected HH:MM", cat, slot))
			}
			clean = append(clean, slot)
		}
		sort.Strings(clean)
		out[cat] = slices.Compact(clean)
	}
	return out, nil
}

// Toggles records which categories are enabled.
type Toggles map[string]bool

func DefaultToggles() Toggles {
	return Toggles{CategoryWater: true, CategoryMove: true, CategorySleep: false}
}

// Stamp is the set of "category@HH:MM" slots already fired on Day.
type Stamp struct {
	Day   string   `json:"day"`
	Fired []string `json:"fired"`
}

func stampTag(category, slot string) string {
	return category + "@" + slot
}

// Reminders runs the per-partition reminder state machine: toggles, the
// once-per-day stamp set and the inbox.
type Reminders struct {
	backend  storage.Backend
	clock    Clock
	schedule Schedule

	mu sync.Mutex
}

// NewReminders uses the default schedule when schedule is nil. The schedule
// is expected to be normalized already.
func NewReminders(backend storage.Backend, clock Clock, schedule Schedule) *Reminders {
	if schedule == nil {
		schedule = DefaultSchedule()
	}
	return &Reminders{backend: backend, clock: clock, schedule: schedule}
}

// Schedule returns a copy of the active slot schedule.
func (r *Reminders) Schedule() Schedule {
	out := make(Schedule, len(r.schedule))
	for k, v := range r.schedule {
		out[k] = slices.Clone(v)
	}
	return out
}

// Toggles returns the partition's toggles merged over the defaults.
func (r *Reminders) Toggles(ctx context.Context, partition string) (Toggles, error) {
	saved, err := LoadRecord(ctx, r.backend, Key(KindReminders, partition), Toggles{})
	if err != nil {
		return DefaultToggles(), err
	}
	t := DefaultToggles()
	for k, v := range saved {
		if _, ok := reminderMessages[k]; ok {
			t[k] = v
		}
	}
	return t, nil
}

// SetToggles applies updates to the partition's toggles. Stamps are left
// alone, so a category re-enabled later the same day does not re-fire slots
// it already fired.
func (r *Reminders) SetToggles(ctx context.Context, partition string, updates map[string]bool) (Toggles, error) {
	for k := range updates {
		if _, ok := reminderMessages[k]; !ok {
			return nil, invalid("category", fmt.Sprintf("unknown category %q", k))
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	t, err := r.Toggles(ctx, partition)
	if err != nil {
		return nil, err
	}
	for k, v := range updates {
		t[k] = v
	}
	if err := SaveRecord(ctx, r.backend, Key(KindReminders, partition), t); err != nil {
		return nil, err
	}
	return t, nil
}

// Check compares the current HH:MM against each enabled category's slots and
// fires every matching slot that has not fired today. Fired messages are
// appended to the inbox and returned.
func (r *Reminders) Check(ctx context.Context, partition string) ([]string, error) {
	now := r.clock.Now()
	today := now.Format(DateLayout)
	current := now.Format(TimeLayout)

	r.mu.Lock()
	defer r.mu.Unlock()

	toggles, err := r.Toggles(ctx, partition)
	if err != nil {
		return nil, err
	}
	stampKey := Key(KindStamps, partition)
	stamp, err := LoadRecord(ctx, r.backend, stampKey, Stamp{})
	if err != nil {
		return nil, err
	}
	if stamp.Day != today {
		stamp = Stamp{Day: today, Fired: []string{}}
	}

	var fired []string
	for _, cat := range Categories {
		if !toggles[cat] {
			continue
		}
		for _, slot := range r.schedule[cat] {
			tag := stampTag(cat, slot)
			if slot != current || slices.Contains(stamp.Fired, tag) {
				continue
			}
			stamp.Fired = append(stamp.Fired, tag)
			fired = append(fired, ReminderMessage(cat))
		}
	}
	if len(fired) == 0 {
		return nil, nil
	}

	inboxKey := Key(KindInbox, partition)
	inbox, err := LoadRecord(ctx, r.backend, inboxKey, []string{})
	if err != nil {
		return nil, err
	}
	// Inbox first: if it can't be written the slots stay unstamped and fire
	// again on the next check within the minute.
	if err := SaveRecord(ctx, r.backend, inboxKey, append(inbox, fired...)); err != nil {
		return nil, err
	}
	if err := SaveRecord(ctx, r.backend, stampKey, stamp); err != nil {
		return nil, err
	}
	return fired, nil
}

// Inbox returns fired reminder messages, oldest first.
func (r *Reminders) Inbox(ctx context.Context, partition string) ([]string, error) {
	return loadList[string](ctx, r.backend, Key(KindInbox, partition))
}

// MarkAllRead empties the inbox. Short of ClearPartition it is the only way
// the inbox shrinks.
func (r *Reminders) MarkAllRead(ctx context.Context, partition string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return SaveRecord(ctx, r.backend, Key(KindInbox, partition), []string{})
}

// ClearPartition removes the toggles, stamps and inbox of partition. It holds
// the same lock as Check, so a running check can't write them back.
func (r *Reminders) ClearPartition(ctx context.Context, partition string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.backend.Delete(ctx, partitionKeys(partition, reminderKinds)...); err != nil {
		return fmt.Errorf("clear reminders %s: %w", partition, err)
	}
	return nil
}
