package models

// MatchStatus records one participant's response to a match.
type MatchStatus struct {
	UserID   string `dynamodbav:"userId" json:"userId"`
	Response string `dynamodbav:"response" json:"response"` // pending, accepted, declined
}

// Match pairs two users whose availability events lined up on the same
// (date, time, activity). Date/time/activity are copied from the events at
// creation time. Events holds the ids of the availability events the match
// was built from; deleting an event removes its id here, and a match whose
// event list empties is deleted.
type Match struct {
	MatchID      string        `dynamodbav:"matchId" json:"matchId"`
	Participants []string      `dynamodbav:"participants" json:"participants"`
	Events       []string      `dynamodbav:"events" json:"events"`
	Date         string        `dynamodbav:"date" json:"date"`
	Time         string        `dynamodbav:"time" json:"time"`
	Activity     string        `dynamodbav:"activity" json:"activity"`
	Status       []MatchStatus `dynamodbav:"status" json:"status"`
	IsConfirmed  bool          `dynamodbav:"isConfirmed" json:"isConfirmed"`
	CreatedAt    string        `dynamodbav:"createdAt" json:"createdAt"`
}

// HasParticipant reports whether userID is one of the match participants.
func (m *Match) HasParticipant(userID string) bool {
	for _, p := range m.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the participant other than userID, or "" if the
// match has no other participant recorded.
func (m *Match) OtherParticipant(userID string) string {
	for _, p := range m.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}

// MatchResponseEvent is the payload broadcast to the other participant
// whenever a response is recorded on a match. IsConfirmed is omitted for
// declines.
type MatchResponseEvent struct {
	MatchID     string `json:"matchId"`
	UserID      string `json:"userId"`
	Response    string `json:"response"`
	IsConfirmed *bool  `json:"isConfirmed,omitempty"`
}

// MatchesTable is the DynamoDB table name for matches.
const MatchesTable = "Matches"
