package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"

	"lg/wellness-go-api/internal/wellness"
)

// ToICS writes an iCalendar feed with one daily recurring event per enabled
// reminder slot, starting on now's date in loc. Slot times are written with
// loc's name as TZID so they keep their wall-clock time across DST changes;
// loc should be an IANA zone or UTC.
func ToICS(w io.Writer, partition string, schedule wellness.Schedule, toggles wellness.Toggles, loc *time.Location, now time.Time) error {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//Wellness//Reminders//EN")

	for _, cat := range wellness.Categories {
		if !toggles[cat] {
			continue
		}
		for _, slot := range schedule[cat] {
			t, err := time.Parse(wellness.TimeLayout, slot)
			if err != nil {
				return fmt.Errorf("slot %q: %w", slot, err)
			}
			start := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, loc)

			vevent := ical.NewEvent()
			vevent.Props.SetText(ical.PropUID, fmt.Sprintf("%s-%s-%s@wellness", partition, cat, strings.ReplaceAll(slot, ":", "")))
			vevent.Props.SetText(ical.PropSummary, wellness.ReminderMessage(cat))
			vevent.Props.SetText(ical.PropCategories, cat)
			vevent.Props.SetDateTime(ical.PropDateTimeStart, start)
			vevent.Props.SetDateTime(ical.PropDateTimeEnd, start.Add(5*time.Minute))
			vevent.Props.SetRecurrenceRule(&rrule.ROption{Freq: rrule.DAILY})
			vevent.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
			cal.Children = append(cal.Children, vevent.Component)
		}
	}

	return ical.NewEncoder(w).Encode(cal)
}
