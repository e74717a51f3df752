package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"lg/wellness-go-api/internal/wellness"
)

// Checker runs the reminder check for one partition.
type Checker interface {
	Check(ctx context.Context, partition string) ([]string, error)
}

// PartitionLister reports every partition that should be checked.
type PartitionLister func(ctx context.Context) ([]string, error)

// Notifier receives reminders as they fire.
type Notifier interface {
	Notify(partition string, messages []string)
}

// Scheduler drives the once-per-minute reminder check.
type Scheduler struct {
	cron       *cron.Cron
	reminders  Checker
	partitions PartitionLister
	notifier   Notifier
	onFire     func(partition string, messages []string)
	timeout    time.Duration
}

func New(location *time.Location, reminders Checker, partitions PartitionLister) *Scheduler {
	if location == nil {
		location = time.Local
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(location)),
		reminders:  reminders,
		partitions: partitions,
		timeout:    30 * time.Second,
	}
}

// SetNotifier registers where fired reminders are pushed.
func (s *Scheduler) SetNotifier(n Notifier) {
	s.notifier = n
}

// OnFire registers a hook called for every partition with fired reminders.
func (s *Scheduler) OnFire(fn func(partition string, messages []string)) {
	s.onFire = fn
}

// Start schedules the check and blocks until ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc("* * * * *", func() { s.CheckReminders(ctx) }); err != nil {
		return fmt.Errorf("add reminder check: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] started (TZ: %s)", s.cron.Location())

	<-ctx.Done()
	return nil
}

// Stop halts the cron and waits for a running check to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("[scheduler] stopped")
}

// CheckReminders checks every partition once. Failures are logged and the
// partition is skipped until the next tick.
func (s *Scheduler) CheckReminders(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	partitions, err := s.partitions(ctx)
	if err != nil {
		log.Printf("[CheckReminders] list partitions: %v", err)
		return
	}
	for _, p := range partitions {
		fired, err := s.reminders.Check(ctx, p)
		if err != nil {
			log.Printf("[CheckReminders] partition %s: %v", p, err)
			continue
		}
		if len(fired) == 0 {
			continue
		}
		if s.onFire != nil {
			s.onFire(p, fired)
		}
		if s.notifier != nil {
			s.notifier.Notify(p, fired)
		}
	}
}

// WithGuest wraps a lister so the guest partition is always included.
func WithGuest(list PartitionLister) PartitionLister {
	return func(ctx context.Context) ([]string, error) {
		ids, err := list(ctx)
		if err != nil {
			return nil, err
		}
		return append([]string{wellness.GuestPartition}, ids...), nil
	}
}
