package services

import (
	"context"
	"sync"

	"linkup_server/models"
)

// In-memory store fakes used by the service tests. They preserve insertion
// order so "first candidate in storage order" behaves like the real store.

type memEventStore struct {
	mu     sync.Mutex
	events map[string]models.Event
	order  []string
}

func newMemEventStore() *memEventStore {
	return &memEventStore{events: make(map[string]models.Event)}
}

func (s *memEventStore) InsertMany(_ context.Context, events []models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, event := range events {
		if _, exists := s.events[event.EventID]; !exists {
			s.order = append(s.order, event.EventID)
		}
		s.events[event.EventID] = event
	}
	return nil
}

func (s *memEventStore) FindByID(_ context.Context, eventID string) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[eventID]
	if !ok {
		return nil, ErrNotFound
	}
	return &event, nil
}

func (s *memEventStore) FindOpenSlots(_ context.Context, date, timeSlot, activity, excludeUserID string) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var open []models.Event
	for _, id := range s.order {
		event, ok := s.events[id]
		if !ok {
			continue
		}
		if event.Date != date || event.Time != timeSlot || event.Activity != activity {
			continue
		}
		if event.IsMatched {
			continue
		}
		if excludeUserID != "" && event.UserID == excludeUserID {
			continue
		}
		open = append(open, event)
	}
	return open, nil
}

func (s *memEventStore) FindByOriginalEvent(_ context.Context, originalEventID string) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var events []models.Event
	for _, id := range s.order {
		if event, ok := s.events[id]; ok && event.OriginalEventID == originalEventID {
			events = append(events, event)
		}
	}
	return events, nil
}

func (s *memEventStore) FindByUser(_ context.Context, userID string) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var events []models.Event
	for _, id := range s.order {
		if event, ok := s.events[id]; ok && event.UserID == userID {
			events = append(events, event)
		}
	}
	return events, nil
}

func (s *memEventStore) FindByDate(_ context.Context, date string) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var events []models.Event
	for _, id := range s.order {
		if event, ok := s.events[id]; ok && event.Date == date {
			events = append(events, event)
		}
	}
	return events, nil
}

func (s *memEventStore) UpdateRecurrencePattern(_ context.Context, eventID, pattern string) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[eventID]
	if !ok {
		return nil, ErrNotFound
	}
	event.RecurrencePattern = pattern
	s.events[eventID] = event
	return &event, nil
}

func (s *memEventStore) Delete(_ context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.events, eventID)
	return nil
}

func (s *memEventStore) DeleteMany(_ context.Context, eventIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range eventIDs {
		delete(s.events, id)
	}
	return nil
}

// claimAll flips isMatched on every id, all-or-nothing, holding the lock
// for the whole check-then-set. Mirrors the conditional transaction of the
// real store.
func (s *memEventStore) claimAll(eventIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range eventIDs {
		event, ok := s.events[id]
		if !ok || event.IsMatched {
			return ErrCandidateTaken
		}
	}
	for _, id := range eventIDs {
		event := s.events[id]
		event.IsMatched = true
		s.events[id] = event
	}
	return nil
}

func (s *memEventStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

// cloneMatch deep-copies a match so readers never share slice backing
// arrays with the stored item, the way unmarshaling a fresh item per read
// behaves.
func cloneMatch(match models.Match) models.Match {
	match.Participants = append([]string(nil), match.Participants...)
	match.Events = append([]string(nil), match.Events...)
	match.Status = append([]models.MatchStatus(nil), match.Status...)
	return match
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameStatus(a, b []models.MatchStatus) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

type memMatchStore struct {
	mu      sync.Mutex
	matches map[string]models.Match
	order   []string
	events  *memEventStore
}

func newMemMatchStore(events *memEventStore) *memMatchStore {
	return &memMatchStore{matches: make(map[string]models.Match), events: events}
}

func (s *memMatchStore) InsertClaiming(_ context.Context, match models.Match, eventIDs []string) error {
	if err := s.events.claimAll(eventIDs); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[match.MatchID] = cloneMatch(match)
	s.order = append(s.order, match.MatchID)
	return nil
}

func (s *memMatchStore) FindByID(_ context.Context, matchID string) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.matches[matchID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := cloneMatch(match)
	return &copied, nil
}

func (s *memMatchStore) FindByParticipant(_ context.Context, userID string) ([]models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matches []models.Match
	for _, id := range s.order {
		match, ok := s.matches[id]
		if !ok {
			continue
		}
		if match.HasParticipant(userID) {
			matches = append(matches, cloneMatch(match))
		}
	}
	return matches, nil
}

func (s *memMatchStore) FindReferencingAny(_ context.Context, eventIDs []string) ([]models.Match, error) {
	idSet := make(map[string]struct{}, len(eventIDs))
	for _, id := range eventIDs {
		idSet[id] = struct{}{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var matches []models.Match
	for _, id := range s.order {
		match, ok := s.matches[id]
		if !ok {
			continue
		}
		for _, eventID := range match.Events {
			if _, hit := idSet[eventID]; hit {
				matches = append(matches, cloneMatch(match))
				break
			}
		}
	}
	return matches, nil
}

// UpdateEvents mirrors the conditional event-list write: it fails with
// ErrStaleMatch when the match is gone or the stored list no longer equals
// what the caller read, and never touches the response attributes.
func (s *memMatchStore) UpdateEvents(_ context.Context, matchID string, surviving, asRead []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.matches[matchID]
	if !ok || !sameStrings(match.Events, asRead) {
		return ErrStaleMatch
	}
	match.Events = append([]string(nil), surviving...)
	s.matches[matchID] = match
	return nil
}

// UpdateStatus mirrors the conditional response write; the event list is
// left untouched.
func (s *memMatchStore) UpdateStatus(_ context.Context, matchID string, status []models.MatchStatus, isConfirmed bool, asRead []models.MatchStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.matches[matchID]
	if !ok || !sameStatus(match.Status, asRead) {
		return ErrStaleMatch
	}
	match.Status = append([]models.MatchStatus(nil), status...)
	match.IsConfirmed = isConfirmed
	s.matches[matchID] = match
	return nil
}

func (s *memMatchStore) Delete(_ context.Context, matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.matches, matchID)
	return nil
}

func (s *memMatchStore) insertRaw(match models.Match) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[match.MatchID] = cloneMatch(match)
	s.order = append(s.order, match.MatchID)
}

func (s *memMatchStore) all() []models.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matches []models.Match
	for _, id := range s.order {
		if match, ok := s.matches[id]; ok {
			matches = append(matches, cloneMatch(match))
		}
	}
	return matches
}

type memUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]models.User)}
}

func (s *memUserStore) Insert(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.UserID] = user
	return nil
}

func (s *memUserStore) FindByID(_ context.Context, userID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *memUserStore) FindByName(_ context.Context, name string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Name == name {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memUserStore) Update(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.UserID]; !ok {
		return ErrNotFound
	}
	s.users[user.UserID] = user
	return nil
}

type sentNotification struct {
	UserID string
	Event  models.MatchResponseEvent
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (n *recordingNotifier) NotifyMatchResponse(userID string, event models.MatchResponseEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{UserID: userID, Event: event})
}

func (n *recordingNotifier) notifications() []sentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentNotification(nil), n.sent...)
}

// interleavedMatchStore wraps a memMatchStore and runs a hook right after
// specific reads, simulating a concurrent writer landing between a read and
// its dependent conditional write. Each hook fires at most once.
type interleavedMatchStore struct {
	*memMatchStore
	afterFindByID        func()
	afterFindReferencing func()
}

func (s *interleavedMatchStore) FindByID(ctx context.Context, matchID string) (*models.Match, error) {
	match, err := s.memMatchStore.FindByID(ctx, matchID)
	if s.afterFindByID != nil {
		hook := s.afterFindByID
		s.afterFindByID = nil
		hook()
	}
	return match, err
}

func (s *interleavedMatchStore) FindReferencingAny(ctx context.Context, eventIDs []string) ([]models.Match, error) {
	matches, err := s.memMatchStore.FindReferencingAny(ctx, eventIDs)
	if s.afterFindReferencing != nil {
		hook := s.afterFindReferencing
		s.afterFindReferencing = nil
		hook()
	}
	return matches, err
}

// claimConflictStore wraps a MatchStore and fails the first n claims with
// ErrCandidateTaken, simulating concurrent submissions winning the race.
type claimConflictStore struct {
	MatchStore
	mu        sync.Mutex
	conflicts int
}

func (s *claimConflictStore) InsertClaiming(ctx context.Context, match models.Match, eventIDs []string) error {
	s.mu.Lock()
	if s.conflicts > 0 {
		s.conflicts--
		s.mu.Unlock()
		return ErrCandidateTaken
	}
	s.mu.Unlock()
	return s.MatchStore.InsertClaiming(ctx, match, eventIDs)
}
