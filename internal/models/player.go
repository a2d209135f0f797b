package models

import "strings"

// Player represents a person in the global player directory.
// Players are shared across sessions; a session references them by ID.
type Player struct {
	// ID is the unique identifier for the player (UUID format).
	ID string `json:"id"`

	// Name is the display name shown in settlement plans.
	// Names are matched case-insensitively when adding players to a session.
	Name string `json:"name"`

	// Avatar is an optional image URL.
	Avatar string `json:"avatar,omitempty"`

	// IsGuest marks players created on the fly while adding them to a session.
	IsGuest bool `json:"isGuest"`

	// CreatedAt is the Unix timestamp (milliseconds) when the player was created.
	CreatedAt int64 `json:"createdAt"`
}

// NameKey is the form of a player name used for case-insensitive lookups.
// It folds the full Unicode range, not just ASCII.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
