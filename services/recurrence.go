package services

import (
	"time"

	"linkup_server/models"
)

// recurrenceOccurrences is the fixed number of events a recurring
// submission expands to, the base event included.
const recurrenceOccurrences = 10

const dateLayout = "2006-01-02"

// GenerateRecurringEvents expands a base event into its series. It is a
// pure function: no ids are assigned and nothing is persisted.
//
// A pattern of None (or "") yields just the base event. Any other pattern
// yields 10 drafts whose dates step from the base date: Daily +i days,
// Weekly +7i days, Bi-weekly +14i days, Monthly +i calendar months (month
// arithmetic rolls across year boundaries). An occurrence whose pattern is
// not recognized is skipped rather than treated as an error.
//
// Only the first draft keeps the recurrence pattern; the rest carry None,
// the isRecurring flag, and get their back-reference filled in by the
// caller once the root id is known. The base date must already be
// normalized to YYYY-MM-DD.
func GenerateRecurringEvents(base models.Event) []models.Event {
	pattern := base.RecurrencePattern
	if pattern == "" || pattern == models.RecurrenceNone {
		base.RecurrencePattern = models.RecurrenceNone
		return []models.Event{base}
	}

	startDate, err := time.Parse(dateLayout, base.Date)
	if err != nil {
		// Date validity is the caller's responsibility; an unparseable
		// date produces no occurrences.
		return nil
	}

	var events []models.Event
	for i := 0; i < recurrenceOccurrences; i++ {
		var eventDate time.Time
		switch pattern {
		case models.RecurrenceDaily:
			eventDate = startDate.AddDate(0, 0, i)
		case models.RecurrenceWeekly:
			eventDate = startDate.AddDate(0, 0, i*7)
		case models.RecurrenceBiweekly:
			eventDate = startDate.AddDate(0, 0, i*14)
		case models.RecurrenceMonthly:
			eventDate = startDate.AddDate(0, i, 0)
		default:
			continue
		}

		draft := base
		draft.Date = eventDate.Format(dateLayout)
		draft.SlotKey = models.BuildSlotKey(draft.Date, draft.Time, draft.Activity)
		draft.IsMatched = false
		if i == 0 {
			draft.RecurrencePattern = pattern
			draft.IsRecurring = false
		} else {
			draft.RecurrencePattern = models.RecurrenceNone
			draft.IsRecurring = true
		}
		events = append(events, draft)
	}

	return events
}
