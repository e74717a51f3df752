package wellness

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"lg/wellness-go-api/internal/storage"
)

// Notification types and statuses.
const (
	NoticeReminder   = "reminder"
	NoticeSuggestion = "suggestion"

	NoticeActive = "active"
	NoticePaused = "paused"
)

// ErrNoticeNotFound is returned for an unknown notification id.
var ErrNoticeNotFound = errors.New("notification not found")

// Notification is one entry of a partition's notification list. Only the
// status changes after creation.
type Notification struct {
	ID      int    `json:"id"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func DefaultNotifications() []Notification {
	return []Notification{
		{ID: 1, Type: NoticeReminder, Message: "Drink water at 10:00", Status: NoticeActive},
		{ID: 2, Type: NoticeSuggestion, Message: "Try a 15-minute run after lunch", Status: NoticePaused},
	}
}

// Notifications keeps the per-partition notification list.
type Notifications struct {
	backend storage.Backend
	mu      sync.Mutex
}

func NewNotifications(backend storage.Backend) *Notifications {
	return &Notifications{backend: backend}
}

// List returns the partition's notifications, or the defaults when none were saved.
func (n *Notifications) List(ctx context.Context, partition string) ([]Notification, error) {
	list, err := LoadRecord(ctx, n.backend, Key(KindNotices, partition), DefaultNotifications())
	if list == nil {
		list = []Notification{}
	}
	return list, err
}

// SetStatus sets the status of notification id. An empty status flips
// between active and paused.
func (n *Notifications) SetStatus(ctx context.Context, partition string, id int, status string) (Notification, error) {
	switch status {
	case "", NoticeActive, NoticePaused:
	default:
		return Notification{}, invalid("status", fmt.Sprintf("must be %s or %s", NoticeActive, NoticePaused))
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	list, err := n.List(ctx, partition)
	if err != nil {
		return Notification{}, err
	}
	idx := slices.IndexFunc(list, func(item Notification) bool { return item.ID == id })
	if idx < 0 {
		return Notification{}, ErrNoticeNotFound
	}

	if status == "" {
		status = NoticePaused
		if list[idx].Status == NoticePaused {
			status = NoticeActive
		}
	}
	list[idx].Status = status
	if err := SaveRecord(ctx, n.backend, Key(KindNotices, partition), list); err != nil {
		return Notification{}, err
	}
	return list[idx], nil
}

// ClearPartition removes the partition's notification list.
func (n *Notifications) ClearPartition(ctx context.Context, partition string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.backend.Delete(ctx, partitionKeys(partition, noticeKinds)...); err != nil {
		return fmt.Errorf("clear notifications %s: %w", partition, err)
	}
	return nil
}
