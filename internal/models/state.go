package models

// AppState is the complete ledger snapshot.
// It is what the storage layer loads at startup and saves after mutations.
type AppState struct {
	Sessions     []Session     `json:"games"`
	Players      []Player      `json:"players"`
	Transactions []Transaction `json:"transactions"`
}

// PlayerNames returns a player ID to name index over the directory.
func (s *AppState) PlayerNames() map[string]string {
	names := make(map[string]string, len(s.Players))
	for _, p := range s.Players {
		names[p.ID] = p.Name
	}
	return names
}
