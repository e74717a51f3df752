package wellness

import "time"

// Dated is any log entry carrying a "YYYY-MM-DD" date.
type Dated interface {
	EntryDate() string
}

// WindowSum sums amount over entries dated within [asOf-(days-1), asOf],
// both ends inclusive, in asOf's location. Entries with unparsable dates are
// skipped. days <= 0 sums nothing.
func WindowSum[E Dated](entries []E, days int, amount func(E) float64, asOf time.Time) float64 {
	if days <= 0 {
		return 0
	}
	loc := asOf.Location()
	y, m, d := asOf.Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, loc)
	start := end.AddDate(0, 0, -(days - 1))

	var sum float64
	for _, e := range entries {
		t, ok := parseDate(e.EntryDate(), loc)
		if !ok || t.Before(start) || t.After(end) {
			continue
		}
		sum += amount(e)
	}
	return sum
}

// Totals are rolling sums over the last 1, 7 and 30 days.
type Totals struct {
	Day   float64 `json:"day"`
	Week  float64 `json:"week"`
	Month float64 `json:"month"`
}

func windowTotals[E Dated](entries []E, amount func(E) float64, asOf time.Time) Totals {
	return Totals{
		Day:   round2(WindowSum(entries, 1, amount, asOf)),
		Week:  round2(WindowSum(entries, 7, amount, asOf)),
		Month: round2(WindowSum(entries, 30, amount, asOf)),
	}
}

// Summary holds the rolling totals of all three logs as of a date.
type Summary struct {
	AsOf     string `json:"asOf"`
	Water    Totals `json:"waterMl"`
	Sleep    Totals `json:"sleepHours"`
	Activity Totals `json:"activityMinutes"`
}

func Summarize(water []WaterEntry, sleep []SleepEntry, activity []ActivityEntry, asOf time.Time) Summary {
	return Summary{
		AsOf:     asOf.Format(DateLayout),
		Water:    windowTotals(water, func(e WaterEntry) float64 { return e.AmountMl }, asOf),
		Sleep:    windowTotals(sleep, func(e SleepEntry) float64 { return e.DurationHours }, asOf),
		Activity: windowTotals(activity, func(e ActivityEntry) float64 { return e.Minutes }, asOf),
	}
}
