package wellness

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"lg/wellness-go-api/internal/storage"
)

// GuestPartition holds data for unauthenticated requests.
const GuestPartition = "guest"

// Record kinds; the persisted key is "hm_<kind>_<partition>".
const (
	KindWater      = "water_logs"
	KindSleep      = "sleep_logs"
	KindActivity   = "activity_logs"
	KindReminders  = "reminders"
	KindStamps     = "reminder_stamps"
	KindInbox      = "inbox"
	KindBodyMetric = "body_metrics"
	KindNotices    = "notifications"
)

// TipsKey is shared by all partitions.
const TipsKey = "hm_tips"

// Each store deletes only the kinds it writes, under its own lock.
var (
	logKinds      = []string{KindWater, KindSleep, KindActivity, KindBodyMetric}
	reminderKinds = []string{KindReminders, KindStamps, KindInbox}
	noticeKinds   = []string{KindNotices}
)

// Key builds the storage key of kind for partition. An empty partition is the guest.
func Key(kind, partition string) string {
	if partition == "" {
		partition = GuestPartition
	}
	return "hm_" + kind + "_" + partition
}

func partitionKeys(partition string, groups ...[]string) []string {
	var keys []string
	for _, kinds := range groups {
		for _, k := range kinds {
			keys = append(keys, Key(k, partition))
		}
	}
	return keys
}

// LoadRecord decodes the document at key into a T. A missing key yields def.
// Unknown fields, wrong types or trailing data are reported as ErrCorruptRecord.
func LoadRecord[T any](ctx context.Context, b storage.Backend, key string, def T) (T, error) {
	raw, err := b.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("load %s: %w", key, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var v T
	if err := dec.Decode(&v); err != nil {
		return def, fmt.Errorf("%w: %s: %v", ErrCorruptRecord, key, err)
	}
	if dec.More() {
		return def, fmt.Errorf("%w: %s: trailing data", ErrCorruptRecord, key)
	}
	return v, nil
}

// SaveRecord encodes v as JSON and stores it at key.
func SaveRecord(ctx context.Context, b storage.Backend, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := b.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
