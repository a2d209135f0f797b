package models

import "fmt"

// TransactionKind is the direction of a transaction.
// The set is closed: only KindBuyIn and KindCashOut exist.
type TransactionKind string

const (
	// KindBuyIn is money entering the pot from the player, or a recorded loss.
	KindBuyIn TransactionKind = "BUY_IN"

	// KindCashOut is money returned to the player, or a recorded win.
	KindCashOut TransactionKind = "CASH_OUT"
)

// ParseTransactionKind converts a wire value into a TransactionKind.
func ParseTransactionKind(s string) (TransactionKind, error) {
	k := TransactionKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown transaction kind %q", s)
	}
	return k, nil
}

// Valid reports whether k is one of the two known kinds.
func (k TransactionKind) Valid() bool {
	return k == KindBuyIn || k == KindCashOut
}

// Transaction is one immutable buy-in or cash-out fact.
// Transactions are never edited; they are created or deleted.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string `json:"id"`

	// SessionID is the session this transaction belongs to.
	SessionID string `json:"sessionId"`

	// PlayerID is the player who bought in or cashed out.
	PlayerID string `json:"playerId"`

	// Kind is BUY_IN or CASH_OUT.
	Kind TransactionKind `json:"type"`

	// Amount is strictly positive; Kind carries the direction.
	Amount float64 `json:"amount"`

	// CreatedAt is the Unix timestamp (milliseconds) when the transaction was recorded.
	CreatedAt int64 `json:"timestamp"`

	// Round is the session round the transaction was recorded in.
	// Zero means it was recorded before rounds existed; see EffectiveRound.
	Round int `json:"round,omitempty"`

	// Note is an optional description.
	Note string `json:"note,omitempty"`
}

// EffectiveRound returns the transaction's round, defaulting to 1.
func (t *Transaction) EffectiveRound() int {
	if t.Round < 1 {
		return 1
	}
	return t.Round
}
