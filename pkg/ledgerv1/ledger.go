// Package ledgerv1 defines the wire messages of the potledger.v1 API.
//
// Messages travel as JSON over the Connect protocol. Field names follow the
// lowerCamelCase convention of protobuf's JSON mapping so browser clients can
// treat the API like any other Connect service.
package ledgerv1

// Player is an entry in the global player directory.
type Player struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar,omitempty"`
	IsGuest   bool   `json:"isGuest"`
	CreatedAt int64  `json:"createdAt"` // Unix milliseconds
}

// Session is one game night.
type Session struct {
	Id           string   `json:"id"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`   // POKER, MAHJONG or GENERAL
	Status       string   `json:"status"` // ACTIVE or COMPLETED
	BlindRules   string   `json:"blindRules,omitempty"`
	PlayerIds    []string `json:"playerIds"`
	CurrentRound int32    `json:"currentRound"`
	CreatedAt    int64    `json:"createdAt"`
	EndedAt      int64    `json:"endedAt,omitempty"`
}

// Transaction is one buy-in or cash-out.
type Transaction struct {
	Id        string  `json:"id"`
	SessionId string  `json:"sessionId"`
	PlayerId  string  `json:"playerId"`
	Type      string  `json:"type"` // BUY_IN or CASH_OUT
	Amount    float64 `json:"amount"`
	Timestamp int64   `json:"timestamp"`
	Round     int32   `json:"round"`
	Note      string  `json:"note,omitempty"`
}

type PlayerStats struct {
	PlayerId     string  `json:"playerId"`
	PlayerName   string  `json:"playerName"`
	TotalBuyIn   float64 `json:"totalBuyIn"`
	TotalCashOut float64 `json:"totalCashOut"`
	NetScore     float64 `json:"netScore"`
}

type Transfer struct {
	FromPlayerId   string  `json:"fromPlayerId"`
	FromPlayerName string  `json:"fromPlayerName"`
	ToPlayerId     string  `json:"toPlayerId"`
	ToPlayerName   string  `json:"toPlayerName"`
	Amount         float64 `json:"amount"`
}

type RoundHistory struct {
	Round        int32          `json:"round"`
	Transactions []*Transaction `json:"transactions"`
}

// Summary is the settlement view of a session.
type Summary struct {
	Session      *Session           `json:"session"`
	Stats        []*PlayerStats     `json:"stats"`
	Settlement   []*Transfer        `json:"settlement"`
	TotalBuyIn   float64            `json:"totalBuyIn"`
	TotalCashOut float64            `json:"totalCashOut"`
	Discrepancy  float64            `json:"discrepancy"`
	Balanced     bool               `json:"balanced"`
	Residuals    map[string]float64 `json:"residuals,omitempty"`
	Rounds       []*RoundHistory    `json:"rounds"`
}

// State is a full backup of the ledger.
type State struct {
	Games        []*Session     `json:"games"`
	Players      []*Player      `json:"players"`
	Transactions []*Transaction `json:"transactions"`
}

type CreateSessionRequest struct {
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	BlindRules string `json:"blindRules,omitempty"`
}

type CreateSessionResponse struct {
	Session *Session `json:"session"`
}

type GetSessionRequest struct {
	SessionId string `json:"sessionId"`
}

type GetSessionResponse struct {
	Session *Session  `json:"session"`
	Players []*Player `json:"players"`
}

type ListSessionsRequest struct{}

type ListSessionsResponse struct {
	Sessions []*Session `json:"sessions"`
}

type DeleteSessionRequest struct {
	SessionId string `json:"sessionId"`
}

type DeleteSessionResponse struct{}

type AddPlayerRequest struct {
	SessionId string `json:"sessionId"`
	Name      string `json:"name"`
}

type AddPlayerResponse struct {
	Player  *Player  `json:"player"`
	Session *Session `json:"session"`
}

type ListPlayersRequest struct{}

type ListPlayersResponse struct {
	Players []*Player `json:"players"`
}

type RecordTransactionRequest struct {
	SessionId string  `json:"sessionId"`
	PlayerId  string  `json:"playerId"`
	Type      string  `json:"type"`
	Amount    float64 `json:"amount"`
	Note      string  `json:"note,omitempty"`
}

type RecordTransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

type DeleteTransactionRequest struct {
	TransactionId string `json:"transactionId"`
}

type DeleteTransactionResponse struct{}

type NextRoundRequest struct {
	SessionId string `json:"sessionId"`
}

type NextRoundResponse struct {
	Session *Session `json:"session"`
}

type EndSessionRequest struct {
	SessionId string `json:"sessionId"`
}

type EndSessionResponse struct {
	Summary *Summary `json:"summary"`
}

type GetSummaryRequest struct {
	SessionId string `json:"sessionId"`
}

type GetSummaryResponse struct {
	Summary *Summary `json:"summary"`
}

type ExportStateRequest struct{}

type ExportStateResponse struct {
	State *State `json:"state"`
}

type ImportStateRequest struct {
	State *State `json:"state"`
}

type ImportStateResponse struct {
	Sessions     int32 `json:"sessions"`
	Players      int32 `json:"players"`
	Transactions int32 `json:"transactions"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}
