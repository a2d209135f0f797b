package models

// SessionType selects the vocabulary of a session.
// It has no effect on the arithmetic: a MAHJONG "loss" is recorded as a
// BUY_IN and a "win" as a CASH_OUT.
type SessionType string

const (
	SessionTypePoker   SessionType = "POKER"
	SessionTypeMahjong SessionType = "MAHJONG"
	SessionTypeGeneral SessionType = "GENERAL"
)

// Valid reports whether t is one of the known session types.
func (t SessionType) Valid() bool {
	switch t {
	case SessionTypePoker, SessionTypeMahjong, SessionTypeGeneral:
		return true
	}
	return false
}

// SessionStatus is the lifecycle state of a session.
type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "ACTIVE"
	SessionStatusCompleted SessionStatus = "COMPLETED"
)

// Session represents a single game-playing occasion.
type Session struct {
	// ID is the unique identifier for the session (UUID format).
	ID string `json:"id"`

	// Name is the human-readable name (e.g., "Friday Night Poker").
	Name string `json:"name"`

	// Type is the kind of game being played.
	Type SessionType `json:"type"`

	// Status is ACTIVE until the session is ended, then COMPLETED.
	// Completed sessions are read-only.
	Status SessionStatus `json:"status"`

	// BlindRules is an optional free-form description of stakes.
	BlindRules string `json:"blindRules,omitempty"`

	// PlayerIDs lists the participants in the order they joined.
	PlayerIDs []string `json:"playerIds"`

	// CurrentRound is the round new transactions are stamped with.
	CurrentRound int `json:"currentRound"`

	// CreatedAt is the Unix timestamp (milliseconds) when the session was created.
	CreatedAt int64 `json:"createdAt"`

	// EndedAt is the Unix timestamp (milliseconds) when the session was ended.
	// Zero while the session is active.
	EndedAt int64 `json:"endedAt,omitempty"`
}

// IsActive reports whether the session still accepts changes.
func (s *Session) IsActive() bool {
	return s.Status == SessionStatusActive
}

// HasPlayer reports whether playerID participates in the session.
func (s *Session) HasPlayer(playerID string) bool {
	for _, id := range s.PlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

// EffectiveRound returns the current round, treating an unset value as 1.
func (s *Session) EffectiveRound() int {
	if s.CurrentRound < 1 {
		return 1
	}
	return s.CurrentRound
}
