package wellness

import "math"

// WaterEntry is one logged drink.
type WaterEntry struct {
	ID       string  `json:"id"`
	Time     string  `json:"time"`
	AmountMl float64 `json:"amountMl"`
	Date     string  `json:"date"`
}

// SleepEntry is one night. DurationHours and Quality are derived on append.
type SleepEntry struct {
	ID            string  `json:"id"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
	Date          string  `json:"date"`
	DurationHours float64 `json:"durationHours"`
	Quality       string  `json:"quality"`
}

// ActivityEntry is one exercise session.
type ActivityEntry struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Minutes   float64 `json:"minutes"`
	Intensity string  `json:"intensity"`
	Date      string  `json:"date"`
}

func (e WaterEntry) EntryDate() string    { return e.Date }
func (e SleepEntry) EntryDate() string    { return e.Date }
func (e ActivityEntry) EntryDate() string { return e.Date }

// BodyMetrics is the dashboard's current weight/height snapshot.
type BodyMetrics struct {
	WeightKg  float64 `json:"weightKg"`
	HeightCm  float64 `json:"heightCm"`
	GoalRange string  `json:"goalRangeText"`
}

func DefaultBodyMetrics() BodyMetrics {
	return BodyMetrics{WeightKg: 62, HeightCm: 168, GoalRange: "18.5 - 23"}
}

const (
	QualityGood     = "good"
	QualityFair     = "fair"
	QualityDeprived = "sleep-deprived"
)

// SleepDuration returns hours between start and end ("HH:MM"), wrapping past
// midnight when end precedes start. Rounded to two decimals.
func SleepDuration(start, end string) (float64, error) {
	s, ok := parseClockTime(start)
	if !ok {
		return 0, invalid("start", "expected HH:MM")
	}
	e, ok := parseClockTime(end)
	if !ok {
		return 0, invalid("end", "expected HH:MM")
	}
	minutes := ((e-s)%1440 + 1440) % 1440
	return round2(float64(minutes) / 60), nil
}

// SleepQuality labels a night by its length.
func SleepQuality(hours float64) string {
	switch {
	case hours >= 7:
		return QualityGood
	case hours >= 5:
		return QualityFair
	default:
		return QualityDeprived
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
