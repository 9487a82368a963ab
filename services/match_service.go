package services

import (
	"context"
	"errors"
	"log"
	"sort"

	"linkup_server/models"
)

// MatchService drives the two-party consensus protocol on matches and
// serves the match read paths.
type MatchService struct {
	Matches  MatchStore
	Notifier MatchNotifier
}

// respondRetries bounds the re-read loop when the conditional status write
// keeps losing to concurrent writers.
const respondRetries = 3

// Respond records userID's accept/decline on a match, recomputes the
// confirmed flag, and notifies the other participant. Responding again
// overwrites the earlier response; the resulting state is the same and the
// notification is re-emitted (de-duplication is the notifier's concern).
// Declined matches are kept as history; only explicit deletion removes them.
//
// The write touches only the response list and confirmed flag, conditional
// on the list not having changed since the read. A stale write is redone on
// fresh state; a match deleted mid-flight surfaces as ErrNotFound on the
// re-read.
func (s *MatchService) Respond(ctx context.Context, matchID, userID, response string) (*models.Match, error) {
	if userID == "" {
		return nil, NewValidationError("userId", "required")
	}
	if !models.IsValidResponse(response) {
		return nil, NewValidationError("response", "must be accepted or declined")
	}

	for attempt := 0; ; attempt++ {
		match, err := s.Matches.FindByID(ctx, matchID)
		if err != nil {
			return nil, err
		}
		if !match.HasParticipant(userID) {
			return nil, ErrInvalidParticipant
		}

		asRead := append([]models.MatchStatus(nil), match.Status...)

		updated := false
		for i := range match.Status {
			if match.Status[i].UserID == userID {
				match.Status[i].Response = response
				updated = true
				break
			}
		}
		if !updated {
			match.Status = append(match.Status, models.MatchStatus{UserID: userID, Response: response})
		}

		allAccepted := len(match.Status) == len(match.Participants)
		for _, status := range match.Status {
			if status.Response != models.ResponseAccepted {
				allAccepted = false
				break
			}
		}
		match.IsConfirmed = allAccepted

		err = s.Matches.UpdateStatus(ctx, match.MatchID, match.Status, match.IsConfirmed, asRead)
		if errors.Is(err, ErrStaleMatch) {
			if attempt >= respondRetries {
				return nil, storageErr("matches.respond", err)
			}
			continue
		}
		if err != nil {
			return nil, err
		}

		s.notifyOther(match, userID, response)
		return match, nil
	}
}

func (s *MatchService) notifyOther(match *models.Match, userID, response string) {
	if s.Notifier == nil {
		return
	}
	other := match.OtherParticipant(userID)
	if other == "" {
		return
	}

	event := models.MatchResponseEvent{
		MatchID:  match.MatchID,
		UserID:   userID,
		Response: response,
	}
	// Declines carry no confirmed flag.
	if response == models.ResponseAccepted {
		confirmed := match.IsConfirmed
		event.IsConfirmed = &confirmed
	}
	s.Notifier.NotifyMatchResponse(other, event)
}

// GetMatch returns a match by id. A match found holding no event references
// is an internal consistency violation: it is repaired by deletion and
// reported as not found.
func (s *MatchService) GetMatch(ctx context.Context, matchID string) (*models.Match, error) {
	match, err := s.Matches.FindByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if len(match.Events) == 0 {
		s.repairOrphan(ctx, match)
		return nil, ErrNotFound
	}
	return match, nil
}

// GetMatchesByUser returns a user's matches, newest first. Orphaned matches
// encountered along the way are repaired and skipped.
func (s *MatchService) GetMatchesByUser(ctx context.Context, userID string) ([]models.Match, error) {
	matches, err := s.Matches.FindByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := matches[:0]
	for _, match := range matches {
		if len(match.Events) == 0 {
			s.repairOrphan(ctx, &match)
			continue
		}
		kept = append(kept, match)
	}

	sort.Slice(kept, func(i, j int) bool {
		return kept[i].CreatedAt > kept[j].CreatedAt
	})
	return kept, nil
}

func (s *MatchService) repairOrphan(ctx context.Context, match *models.Match) {
	log.Printf("consistency violation: match %s references no events, deleting", match.MatchID)
	if err := s.Matches.Delete(ctx, match.MatchID); err != nil {
		log.Printf("failed to delete orphaned match %s: %v", match.MatchID, err)
	}
}
