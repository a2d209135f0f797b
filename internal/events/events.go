// Package events publishes ledger domain events to a message broker.
//
// Publishing is best effort: callers log failures and carry on, the ledger
// itself is the source of truth.
package events

import (
	"context"

	"github.com/mmynk/potledger/internal/calculator"
)

// SessionSettledType is the AMQP message type of SessionSettled.
const SessionSettledType = "session.settled"

// SessionSettled is published when a session is ended. It carries the
// settlement plan so consumers can notify players without calling back.
type SessionSettled struct {
	SessionID    string             `json:"session_id"`
	SessionName  string             `json:"session_name"`
	SessionType  string             `json:"session_type"`
	EndedAt      int64              `json:"ended_at"`
	TotalBuyIn   float64            `json:"total_buy_in"`
	TotalCashOut float64            `json:"total_cash_out"`
	Discrepancy  float64            `json:"discrepancy"`
	Transfers    []SettledTransfer  `json:"transfers"`
	NetScores    map[string]float64 `json:"net_scores"`
}

type SettledTransfer struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// NewSessionSettled builds the event payload from a computed settlement.
func NewSessionSettled(sessionID, name, sessionType string, endedAt int64, stats []calculator.PlayerStats, totals calculator.Totals, transfers []calculator.Transfer) SessionSettled {
	ev := SessionSettled{
		SessionID:    sessionID,
		SessionName:  name,
		SessionType:  sessionType,
		EndedAt:      endedAt,
		TotalBuyIn:   calculator.Round2(totals.TotalBuyIn),
		TotalCashOut: calculator.Round2(totals.TotalCashOut),
		Discrepancy:  calculator.Round2(totals.Discrepancy),
		Transfers:    make([]SettledTransfer, len(transfers)),
		NetScores:    make(map[string]float64, len(stats)),
	}
	for i, t := range transfers {
		ev.Transfers[i] = SettledTransfer{From: t.FromPlayerName, To: t.ToPlayerName, Amount: t.Amount}
	}
	for _, s := range stats {
		ev.NetScores[s.PlayerID] = calculator.Round2(s.NetScore)
	}
	return ev
}

// Publisher sends domain events.
type Publisher interface {
	PublishSessionSettled(ctx context.Context, event SessionSettled) error
	Close() error
}

// Nop discards every event. Used when no broker is configured.
type Nop struct{}

func (Nop) PublishSessionSettled(context.Context, SessionSettled) error { return nil }

func (Nop) Close() error { return nil }
