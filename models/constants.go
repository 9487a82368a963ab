package models

// Activity kinds an availability slot can be posted for.
const (
	ActivityMeetup = "Meet-up"
	ActivityCoffee = "Coffee"
	ActivityLunch  = "Lunch"
	ActivitySports = "Sports"
)

// Recurrence patterns. Only the root event of a series carries a
// pattern other than None.
const (
	RecurrenceNone     = "None"
	RecurrenceDaily    = "Daily"
	RecurrenceWeekly   = "Weekly"
	RecurrenceBiweekly = "Bi-weekly"
	RecurrenceMonthly  = "Monthly"
)

// Match response values.
const (
	ResponsePending  = "pending"
	ResponseAccepted = "accepted"
	ResponseDeclined = "declined"
)

// IsValidActivity reports whether activity is one of the supported kinds.
func IsValidActivity(activity string) bool {
	switch activity {
	case ActivityMeetup, ActivityCoffee, ActivityLunch, ActivitySports:
		return true
	}
	return false
}

// IsValidRecurrencePattern reports whether pattern is a supported pattern.
func IsValidRecurrencePattern(pattern string) bool {
	switch pattern {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceBiweekly, RecurrenceMonthly:
		return true
	}
	return false
}

// IsValidResponse reports whether response is an accept/decline value.
// "pending" is the initial state and is never submitted by a caller.
func IsValidResponse(response string) bool {
	return response == ResponseAccepted || response == ResponseDeclined
}
