package wellness

import (
	"context"
	"strings"
	"sync"

	"lg/wellness-go-api/internal/storage"
)

// Daily targets below which the advisor suggests a change.
const (
	WaterTargetMl         = 1500
	SleepTargetHours      = 7
	ActivityTargetMinutes = 20
)

const (
	AdviceWater    = "Drink another ~500-800 ml of water today to reach 2 L."
	AdviceSleep    = "Under 7 h of sleep; try scheduling bedtime 30 minutes earlier."
	AdviceActivity = "Under 20 minutes of activity; a light 15-20 minute walk would help."
	AdviceOnTrack  = "Keep up the current pace, you're on track today."
)

// Advise applies the rule table to today's totals. Order is fixed: water,
// sleep, activity. The on-track message appears only when no rule fires.
func Advise(s Summary) []string {
	var advice []string
	if s.Water.Day < WaterTargetMl {
		advice = append(advice, AdviceWater)
	}
	if s.Sleep.Day < SleepTargetHours {
		advice = append(advice, AdviceSleep)
	}
	if s.Activity.Day < ActivityTargetMinutes {
		advice = append(advice, AdviceActivity)
	}
	if len(advice) == 0 {
		advice = append(advice, AdviceOnTrack)
	}
	return advice
}

/* ─── Tips ────────────────────────────────────────────────────────────── */

// Tip is admin-curated advice shown to every user.
type Tip struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

var defaultTips = []Tip{
	{Title: "Drink on schedule", Content: "Sip 200-300 ml every 60 minutes during work hours."},
}

// TipStore persists the shared tip list under TipsKey.
type TipStore struct {
	backend storage.Backend
	mu      sync.Mutex
}

func NewTipStore(backend storage.Backend) *TipStore {
	return &TipStore{backend: backend}
}

// List returns the saved tips, or the built-in default list.
func (t *TipStore) List(ctx context.Context) ([]Tip, error) {
	def := append([]Tip(nil), defaultTips...)
	tips, err := LoadRecord(ctx, t.backend, TipsKey, def)
	if tips == nil {
		tips = []Tip{}
	}
	return tips, err
}

// Add appends a tip. Title and content are both required.
func (t *TipStore) Add(ctx context.Context, tip Tip) ([]Tip, error) {
	tip.Title = strings.TrimSpace(tip.Title)
	tip.Content = strings.TrimSpace(tip.Content)
	if tip.Title == "" {
		return nil, invalid("title", "is required")
	}
	if tip.Content == "" {
		return nil, invalid("content", "is required")
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	tips, err := t.List(ctx)
	if err != nil {
		return nil, err
	}
	tips = append(tips, tip)
	if err := SaveRecord(ctx, t.backend, TipsKey, tips); err != nil {
		return nil, err
	}
	return tips, nil
}
