package calculator

import (
	"sort"

	"github.com/mmynk/potledger/internal/models"
)

// RoundHistory holds the transactions recorded during one round.
type RoundHistory struct {
	Round        int
	Transactions []models.Transaction // Newest first
}

// GroupByRound groups a session's transactions by round for history views.
// Rounds are returned newest first, and so are the transactions inside them.
// Rounds have no bearing on settlement.
func GroupByRound(sessionID string, transactions []models.Transaction) []RoundHistory {
	var sessionTxs []models.Transaction
	for _, tx := range transactions {
		if tx.SessionID == sessionID {
			sessionTxs = append(sessionTxs, tx)
		}
	}
	sort.SliceStable(sessionTxs, func(a, b int) bool {
		return sessionTxs[a].CreatedAt > sessionTxs[b].CreatedAt
	})

	byRound := make(map[int]int)
	var rounds []RoundHistory
	for _, tx := range sessionTxs {
		r := tx.EffectiveRound()
		pos, ok := byRound[r]
		if !ok {
			pos = len(rounds)
			byRound[r] = pos
			rounds = append(rounds, RoundHistory{Round: r})
		}
		rounds[pos].Transactions = append(rounds[pos].Transactions, tx)
	}

	sort.Slice(rounds, func(a, b int) bool { return rounds[a].Round > rounds[b].Round })
	return rounds
}
