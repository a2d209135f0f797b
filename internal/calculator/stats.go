package calculator

import (
	"math"
	"sort"

	"github.com/mmynk/potledger/internal/models"
)

// PlayerStats is one player's aggregate position in a session.
type PlayerStats struct {
	PlayerID     string
	TotalBuyIn   float64
	TotalCashOut float64
	NetScore     float64 // TotalCashOut - TotalBuyIn; positive = winner
}

// ComputeStats aggregates the transactions of one session per participant.
//
// Every participant appears exactly once, even without transactions.
// Transactions from other sessions or from players outside participantIDs
// are ignored. Totals keep full precision; rounding happens at display and
// settlement time.
//
// The result is ordered by NetScore descending. Equal scores keep the order
// of participantIDs.
func ComputeStats(sessionID string, transactions []models.Transaction, participantIDs []string) []PlayerStats {
	index := make(map[string]int, len(participantIDs))
	stats := make([]PlayerStats, 0, len(participantIDs))
	for _, id := range participantIDs {
		if _, dup := index[id]; dup {
			continue
		}
		index[id] = len(stats)
		stats = append(stats, PlayerStats{PlayerID: id})
	}

	for i := range transactions {
		tx := &transactions[i]
		if tx.SessionID != sessionID {
			continue
		}
		pos, ok := index[tx.PlayerID]
		if !ok {
			continue
		}
		switch tx.Kind {
		case models.KindBuyIn:
			stats[pos].TotalBuyIn += tx.Amount
		case models.KindCashOut:
			stats[pos].TotalCashOut += tx.Amount
		}
	}

	for i := range stats {
		stats[i].NetScore = stats[i].TotalCashOut - stats[i].TotalBuyIn
	}

	sort.SliceStable(stats, func(a, b int) bool {
		return stats[a].NetScore > stats[b].NetScore
	})
	return stats
}

// Totals summarizes a session's money flow.
type Totals struct {
	TotalBuyIn   float64
	TotalCashOut float64

	// Discrepancy is TotalBuyIn - TotalCashOut. Positive means money is
	// missing from the cash-outs, negative means extra money was paid out.
	Discrepancy float64

	// Balanced is true unless |Discrepancy| exceeds Tolerance. A discrepancy
	// of exactly one cent still counts as balanced.
	Balanced bool
}

// Summarize computes session-wide totals from per-player stats.
func Summarize(stats []PlayerStats) Totals {
	var t Totals
	for _, s := range stats {
		t.TotalBuyIn += s.TotalBuyIn
		t.TotalCashOut += s.TotalCashOut
	}
	t.Discrepancy = t.TotalBuyIn - t.TotalCashOut
	t.Balanced = math.Abs(t.Discrepancy) <= Tolerance
	return t
}
