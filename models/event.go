package models

// Event is a single availability slot posted by a user. A recurring
// submission creates one root event (which keeps the recurrence pattern)
// plus successor events pointing back at the root via OriginalEventID.
type Event struct {
	EventID           string `dynamodbav:"eventId" json:"eventId"`
	UserID            string `dynamodbav:"userId" json:"userId"`
	Date              string `dynamodbav:"date" json:"date"` // day granularity, YYYY-MM-DD
	Time              string `dynamodbav:"time" json:"time"`
	Activity          string `dynamodbav:"activity" json:"activity"`
	IsMatched         bool   `dynamodbav:"isMatched" json:"isMatched"`
	RecurrencePattern string `dynamodbav:"recurrencePattern" json:"recurrencePattern"`
	IsRecurring       bool   `dynamodbav:"isRecurring" json:"isRecurring"`
	OriginalEventID   string `dynamodbav:"originalEventId,omitempty" json:"originalEventId,omitempty"`
	SlotKey           string `dynamodbav:"slotKey" json:"-"`
	CreatedAt         string `dynamodbav:"createdAt" json:"createdAt"`
}

// BuildSlotKey composes the partition key of the slotKey GSI used to find
// candidate events sharing the same (date, time, activity).
func BuildSlotKey(date, timeSlot, activity string) string {
	return date + "|" + timeSlot + "|" + activity
}

// IsSeriesRoot reports whether the event is the root of a recurring series.
func (e *Event) IsSeriesRoot() bool {
	return e.RecurrencePattern != RecurrenceNone && !e.IsRecurring
}

// EventsTable is the DynamoDB table name for availability events.
const EventsTable = "Events"

// GSI names on the Events table.
const (
	SlotKeyIndex       = "slotKey-index"
	OriginalEventIndex = "originalEventId-index"
	EventUserIndex     = "userId-index"
	EventDateIndex     = "date-index"
)
