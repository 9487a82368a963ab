package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"linkup_server/models"
	"linkup_server/utils"

	"github.com/google/uuid"
)

// EventService owns availability events: submission with recurrence
// expansion, the match attempt on new roots, recurrence-pattern updates,
// and the deletion cascades that keep matches consistent with events.
type EventService struct {
	Events  EventStore
	Matches MatchStore
	Users   UserStore
}

// CreateEventInput is a new availability submission.
type CreateEventInput struct {
	UserID            string `json:"userId"`
	Date              string `json:"date"`
	Time              string `json:"time"`
	Activity          string `json:"activity"`
	RecurrencePattern string `json:"recurrencePattern"`
}

// CreateEventResult is the outcome of a submission: the root event, the
// match if one was made immediately, and the number of recurring successor
// events created alongside the root.
type CreateEventResult struct {
	Event           models.Event  `json:"event"`
	Match           *models.Match `json:"match,omitempty"`
	RecurringEvents int           `json:"recurringEvents"`
}

// UpdatePatternResult is the outcome of a recurrence-pattern change.
type UpdatePatternResult struct {
	Event           models.Event `json:"event"`
	RecurringEvents int          `json:"recurringEvents"`
}

// CreateEvent expands the submission into its series, persists every event,
// and attempts a match for the root. Successor events are never matched on
// submission; they become candidates for other users' submissions.
func (s *EventService) CreateEvent(ctx context.Context, input CreateEventInput) (*CreateEventResult, error) {
	if input.UserID == "" {
		return nil, NewValidationError("userId", "required")
	}
	if input.Date == "" {
		return nil, NewValidationError("date", "required")
	}
	if input.Time == "" {
		return nil, NewValidationError("time", "required")
	}
	if input.Activity == "" {
		return nil, NewValidationError("activity", "required")
	}
	if !models.IsValidActivity(input.Activity) {
		return nil, NewValidationError("activity", "unknown activity")
	}
	pattern := input.RecurrencePattern
	if pattern == "" {
		pattern = models.RecurrenceNone
	}
	if !models.IsValidRecurrencePattern(pattern) {
		return nil, NewValidationError("recurrencePattern", "unknown pattern")
	}

	date, err := utils.NormalizeDate(input.Date)
	if err != nil {
		return nil, NewValidationError("date", "unrecognized date format")
	}

	base := models.Event{
		UserID:            input.UserID,
		Date:              date,
		Time:              input.Time,
		Activity:          input.Activity,
		RecurrencePattern: pattern,
		SlotKey:           models.BuildSlotKey(date, input.Time, input.Activity),
		CreatedAt:         time.Now().UTC().Format(time.RFC3339),
	}

	events := GenerateRecurringEvents(base)
	events[0].EventID = uuid.NewString()
	for i := 1; i < len(events); i++ {
		events[i].EventID = uuid.NewString()
		events[i].OriginalEventID = events[0].EventID
	}

	if err := s.Events.InsertMany(ctx, events); err != nil {
		return nil, err
	}

	match, err := s.tryMatch(ctx, events[0])
	if err != nil {
		return nil, err
	}

	root := events[0]
	if match != nil {
		root.IsMatched = true
	}
	return &CreateEventResult{
		Event:           root,
		Match:           match,
		RecurringEvents: len(events) - 1,
	}, nil
}

// tryMatch looks for a compatible unmatched event from another user and,
// if one exists, creates the match and claims both events in one atomic
// write. Candidates are taken in storage order; a candidate claimed by a
// concurrent submission is skipped. Finding nothing is a normal empty
// result, not an error.
func (s *EventService) tryMatch(ctx context.Context, event models.Event) (*models.Match, error) {
	candidates, err := s.Events.FindOpenSlots(ctx, event.Date, event.Time, event.Activity, event.UserID)
	if err != nil {
		return nil, err
	}

	for _, candidate := range candidates {
		match := models.Match{
			MatchID:      uuid.NewString(),
			Participants: []string{event.UserID, candidate.UserID},
			Events:       []string{event.EventID, candidate.EventID},
			Date:         event.Date,
			Time:         event.Time,
			Activity:     event.Activity,
			Status: []models.MatchStatus{
				{UserID: event.UserID, Response: models.ResponsePending},
				{UserID: candidate.UserID, Response: models.ResponsePending},
			},
			IsConfirmed: false,
			CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		}

		err := s.Matches.InsertClaiming(ctx, match, match.Events)
		if errors.Is(err, ErrCandidateTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &match, nil
	}
	return nil, nil
}

// UpdateRecurrencePattern changes the pattern on a series root (or a
// standalone event), discards the old series tail, and regenerates the tail
// from the root's own slot. Pattern changes on successor events are
// rejected; the pattern lives on the root only.
func (s *EventService) UpdateRecurrencePattern(ctx context.Context, eventID, pattern string) (*UpdatePatternResult, error) {
	if pattern == "" {
		return nil, NewValidationError("recurrencePattern", "required")
	}
	if !models.IsValidRecurrencePattern(pattern) {
		return nil, NewValidationError("recurrencePattern", "unknown pattern")
	}

	event, err := s.Events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.IsRecurring || event.OriginalEventID != "" {
		return nil, NewValidationError("recurrencePattern", "can only be changed on the series root")
	}

	// Drop the old tail unconditionally. Successors are never matched on
	// their own, but if one somehow is, its matches get the same cascade
	// treatment as a deletion.
	tail, err := s.Events.FindByOriginalEvent(ctx, event.EventID)
	if err != nil {
		return nil, err
	}
	if len(tail) > 0 {
		tailIDs := make([]string, 0, len(tail))
		for _, successor := range tail {
			tailIDs = append(tailIDs, successor.EventID)
		}
		if err := s.cascadeMatches(ctx, tailIDs); err != nil {
			return nil, err
		}
		if err := s.Events.DeleteMany(ctx, tailIDs); err != nil {
			return nil, err
		}
	}

	updated, err := s.Events.UpdateRecurrencePattern(ctx, event.EventID, pattern)
	if err != nil {
		return nil, err
	}

	// Regenerate the tail from the updated root. The root itself is not
	// recreated, so only drafts after the first are persisted. A root whose
	// stored date no longer parses expands to nothing; it keeps the new
	// pattern with an empty tail instead of crashing.
	drafts := GenerateRecurringEvents(*updated)
	var newTail []models.Event
	if len(drafts) > 1 {
		newTail = drafts[1:]
	}
	for i := range newTail {
		newTail[i].EventID = uuid.NewString()
		newTail[i].OriginalEventID = updated.EventID
	}
	if len(newTail) > 0 {
		if err := s.Events.InsertMany(ctx, newTail); err != nil {
			return nil, err
		}
	}

	return &UpdatePatternResult{
		Event:           *updated,
		RecurringEvents: len(newTail),
	}, nil
}

// DeleteEvent removes a single event and strips it out of any match that
// references it. A match left with no events is deleted; a match left with
// one surviving event is kept as is.
func (s *EventService) DeleteEvent(ctx context.Context, eventID string) error {
	if _, err := s.Events.FindByID(ctx, eventID); err != nil {
		return err
	}
	if err := s.cascadeMatches(ctx, []string{eventID}); err != nil {
		return err
	}
	return s.Events.Delete(ctx, eventID)
}

// DeleteSeries removes an event together with its whole recurring series,
// resolving the root from whichever series member id was given. A
// standalone event degrades to a single delete. Returns the number of
// events removed.
func (s *EventService) DeleteSeries(ctx context.Context, eventID string) (int, error) {
	event, err := s.Events.FindByID(ctx, eventID)
	if err != nil {
		return 0, err
	}

	var rootID string
	switch {
	case event.IsSeriesRoot():
		rootID = event.EventID
	case event.IsRecurring && event.OriginalEventID != "":
		rootID = event.OriginalEventID
	default:
		// Standalone single event.
		if err := s.DeleteEvent(ctx, eventID); err != nil {
			return 0, err
		}
		return 1, nil
	}

	// The affected set is the root plus everything back-referencing it.
	// Plain id-set computation, no object-graph walking.
	affected := make([]string, 0, recurrenceOccurrences)
	if rootID == event.EventID {
		affected = append(affected, rootID)
	} else if _, err := s.Events.FindByID(ctx, rootID); err == nil {
		affected = append(affected, rootID)
	} else if !errors.Is(err, ErrNotFound) {
		return 0, err
	}

	successors, err := s.Events.FindByOriginalEvent(ctx, rootID)
	if err != nil {
		return 0, err
	}
	for _, successor := range successors {
		affected = append(affected, successor.EventID)
	}

	if err := s.cascadeMatches(ctx, affected); err != nil {
		return 0, err
	}
	if err := s.Events.DeleteMany(ctx, affected); err != nil {
		return 0, err
	}
	return len(affected), nil
}

// cascadeRetries bounds the re-read loop when the conditional event-list
// write keeps losing to concurrent cascades.
const cascadeRetries = 3

// cascadeMatches removes the given event ids from every match referencing
// them. Matches whose event list empties are deleted outright. The write
// touches only the event-reference list, conditional on the list not having
// changed since the read, so responses recorded mid-cascade are kept.
func (s *EventService) cascadeMatches(ctx context.Context, eventIDs []string) error {
	matches, err := s.Matches.FindReferencingAny(ctx, eventIDs)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return nil
	}

	deleted := make(map[string]struct{}, len(eventIDs))
	for _, id := range eventIDs {
		deleted[id] = struct{}{}
	}

	for _, match := range matches {
		current := match
		for attempt := 0; ; attempt++ {
			surviving := make([]string, 0, len(current.Events))
			for _, id := range current.Events {
				if _, gone := deleted[id]; !gone {
					surviving = append(surviving, id)
				}
			}
			if len(surviving) == len(current.Events) {
				break
			}

			if len(surviving) == 0 {
				if err := s.Matches.Delete(ctx, current.MatchID); err != nil {
					return err
				}
				break
			}

			err := s.Matches.UpdateEvents(ctx, current.MatchID, surviving, current.Events)
			if err == nil {
				break
			}
			if !errors.Is(err, ErrStaleMatch) {
				return err
			}

			// Another cascade got there first, or the match is gone.
			fresh, findErr := s.Matches.FindByID(ctx, current.MatchID)
			if errors.Is(findErr, ErrNotFound) {
				break
			}
			if findErr != nil {
				return findErr
			}
			if attempt >= cascadeRetries {
				return storageErr("matches.cascade", err)
			}
			current = *fresh
		}
	}
	return nil
}

// GetAvailableUsers returns the distinct users who still have an unmatched
// event on the given slot, in first-seen storage order.
func (s *EventService) GetAvailableUsers(ctx context.Context, date, timeSlot, activity string) ([]models.User, error) {
	if date == "" {
		return nil, NewValidationError("date", "required")
	}
	if timeSlot == "" {
		return nil, NewValidationError("time", "required")
	}
	if activity == "" {
		return nil, NewValidationError("activity", "required")
	}
	normalized, err := utils.NormalizeDate(date)
	if err != nil {
		return nil, NewValidationError("date", "unrecognized date format")
	}

	events, err := s.Events.FindOpenSlots(ctx, normalized, timeSlot, activity, "")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	users := make([]models.User, 0, len(events))
	for _, event := range events {
		if _, dup := seen[event.UserID]; dup {
			continue
		}
		seen[event.UserID] = struct{}{}

		user, err := s.Users.FindByID(ctx, event.UserID)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

// GetEventsByUser returns a user's events sorted by date ascending.
func (s *EventService) GetEventsByUser(ctx context.Context, userID string) ([]models.Event, error) {
	events, err := s.Events.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].CreatedAt < events[j].CreatedAt
	})
	return events, nil
}

// GetEventsByDate returns every event on the given day.
func (s *EventService) GetEventsByDate(ctx context.Context, date string) ([]models.Event, error) {
	if date == "" {
		return nil, NewValidationError("date", "required")
	}
	normalized, err := utils.NormalizeDate(date)
	if err != nil {
		return nil, NewValidationError("date", "unrecognized date format")
	}
	return s.Events.FindByDate(ctx, normalized)
}
