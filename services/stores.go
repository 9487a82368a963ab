package services

import (
	"context"

	"linkup_server/models"
)

// EventStore is the durable keyed storage of availability events.
type EventStore interface {
	// InsertMany persists a batch of events (a root plus its series tail).
	InsertMany(ctx context.Context, events []models.Event) error
	// FindByID resolves a single event, ErrNotFound if absent.
	FindByID(ctx context.Context, eventID string) (*models.Event, error)
	// FindOpenSlots returns unmatched events for the given slot in storage
	// order. excludeUserID filters out events owned by that user; pass ""
	// to keep all owners.
	FindOpenSlots(ctx context.Context, date, timeSlot, activity, excludeUserID string) ([]models.Event, error)
	// FindByOriginalEvent returns the successor events of a series root.
	FindByOriginalEvent(ctx context.Context, originalEventID string) ([]models.Event, error)
	// FindByUser returns all events owned by userID.
	FindByUser(ctx context.Context, userID string) ([]models.Event, error)
	// FindByDate returns all events on the given day.
	FindByDate(ctx context.Context, date string) ([]models.Event, error)
	// UpdateRecurrencePattern overwrites an event's recurrence pattern and
	// returns the updated record.
	UpdateRecurrencePattern(ctx context.Context, eventID, pattern string) (*models.Event, error)
	// Delete removes one event.
	Delete(ctx context.Context, eventID string) error
	// DeleteMany removes a set of events by id.
	DeleteMany(ctx context.Context, eventIDs []string) error
}

// MatchStore is the durable storage of matches.
type MatchStore interface {
	// InsertClaiming atomically persists match and flips isMatched on every
	// event in eventIDs, conditional on each still being unmatched. Losing
	// the condition on any event cancels the whole write and returns
	// ErrCandidateTaken.
	InsertClaiming(ctx context.Context, match models.Match, eventIDs []string) error
	// FindByID resolves a match, ErrNotFound if absent.
	FindByID(ctx context.Context, matchID string) (*models.Match, error)
	// FindByParticipant returns every match that includes userID.
	FindByParticipant(ctx context.Context, userID string) ([]models.Match, error)
	// FindReferencingAny returns every match referencing at least one of
	// the given event ids.
	FindReferencingAny(ctx context.Context, eventIDs []string) ([]models.Match, error)
	// UpdateEvents overwrites the match's event-reference list, conditional
	// on the match still existing with exactly the list the caller read.
	// Touches no other attribute, so responses landing concurrently are
	// never overwritten. A failed condition returns ErrStaleMatch.
	UpdateEvents(ctx context.Context, matchID string, surviving, asRead []string) error
	// UpdateStatus overwrites the match's response list and confirmed
	// flag, conditional on the response list still being exactly asRead.
	// Leaves the event-reference list alone, so a concurrent cascade is
	// never undone. A failed condition returns ErrStaleMatch.
	UpdateStatus(ctx context.Context, matchID string, status []models.MatchStatus, isConfirmed bool, asRead []models.MatchStatus) error
	// Delete removes a match.
	Delete(ctx context.Context, matchID string) error
}

// UserStore is the durable storage of users.
type UserStore interface {
	Insert(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, userID string) (*models.User, error)
	FindByName(ctx context.Context, name string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user models.User) error
}

// MatchNotifier delivers consensus-state changes to the other participant
// out of band. Delivery (and any de-duplication) is the notifier's concern;
// services fire and forget.
type MatchNotifier interface {
	NotifyMatchResponse(userID string, event models.MatchResponseEvent)
}
