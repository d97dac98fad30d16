package share

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"weekendly/internal/activity"
)

// UpcomingWeekend returns the Saturday and Sunday midnights, in UTC,
// of the weekend the activities map onto: the next Saturday on or
// after now's date (so during a weekend the current one is used only
// on Saturday itself; on Sunday the following weekend is chosen).
func UpcomingWeekend(now time.Time) (sat, sun time.Time) {
	d := now.UTC()
	days := (int(time.Saturday) - int(d.Weekday()) + 7) % 7
	sat = time.Date(d.Year(), d.Month(), d.Day()+days, 0, 0, 0, 0, time.UTC)
	return sat, sat.AddDate(0, 0, 1)
}

// BuildICS renders the activities as one VEVENT each, anchored to the
// upcoming weekend relative to now. All times are emitted in UTC.
func BuildICS(as []activity.Activity, now time.Time) string {
	sat, sun := UpcomingWeekend(now)
	epoch := now.UnixMilli()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//weekendly//weekend planner//EN")

	for i, a := range as {
		day := sat
		if a.Day == activity.Sunday {
			day = sun
		}
		start := day.Add(time.Duration(a.StartMinutes) * time.Minute)
		end := start.Add(time.Duration(a.DurationMinutes) * time.Minute)

		e := cal.AddEvent(fmt.Sprintf("%d-%d@weekendly", epoch, i))
		e.SetDtStampTime(now.UTC())
		e.SetStartAt(start)
		e.SetEndAt(end)
		// Serialize applies RFC 5545 text escaping, so summary and
		// description go in raw.
		e.SetSummary(a.Title)
		e.SetProperty(ics.ComponentPropertyCategories, string(a.Category))

		if desc := eventDescription(a); desc != "" {
			e.SetDescription(desc)
		}
	}
	return cal.Serialize()
}

func eventDescription(a activity.Activity) string {
	var parts []string
	if a.Notes != "" {
		parts = append(parts, a.Notes)
	}
	if a.Mood != "" {
		parts = append(parts, "Mood: "+string(a.Mood))
	}
	return strings.Join(parts, "\n")
}
