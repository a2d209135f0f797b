package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/potledger/internal/calculator"
	"github.com/mmynk/potledger/internal/models"
	pb "github.com/mmynk/potledger/pkg/ledgerv1"
)

// summary is a session's settlement view, recomputed from the store on
// every call.
type summary struct {
	session   *models.Session
	names     calculator.Directory
	stats     []calculator.PlayerStats
	totals    calculator.Totals
	transfers []calculator.Transfer
	residuals map[string]float64
	rounds    []calculator.RoundHistory
}

func (s *LedgerService) summarize(ctx context.Context, session *models.Session) (*summary, error) {
	txs, err := s.store.ListTransactionsBySession(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	players, err := s.store.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	names := make(calculator.Directory, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}

	stats := calculator.ComputeStats(session.ID, txs, session.PlayerIDs)
	totals := calculator.Summarize(stats)
	transfers := calculator.ComputeSettlement(stats, names)

	// Leftovers only exist when the ledger does not balance
	residuals := make(map[string]float64)
	for id, v := range calculator.Residuals(stats, transfers) {
		if !calculator.IsZero(v) {
			residuals[id] = calculator.Round2(v)
		}
	}

	if !totals.Balanced {
		slog.Warn("Session does not balance",
			"session_id", session.ID,
			"total_buy_in", calculator.Round2(totals.TotalBuyIn),
			"total_cash_out", calculator.Round2(totals.TotalCashOut),
			"discrepancy", calculator.Round2(totals.Discrepancy),
		)
	}
	s.metrics.SettlementComputed(len(transfers), totals.Balanced)

	return &summary{
		session:   session,
		names:     names,
		stats:     stats,
		totals:    totals,
		transfers: transfers,
		residuals: residuals,
		rounds:    calculator.GroupByRound(session.ID, txs),
	}, nil
}

func (sum *summary) toPB() *pb.Summary {
	out := &pb.Summary{
		Session:      toPBSession(sum.session),
		Stats:        toPBStats(sum.stats, sum.names),
		Settlement:   toPBTransfers(sum.transfers),
		TotalBuyIn:   calculator.Round2(sum.totals.TotalBuyIn),
		TotalCashOut: calculator.Round2(sum.totals.TotalCashOut),
		Discrepancy:  calculator.Round2(sum.totals.Discrepancy),
		Balanced:     sum.totals.Balanced,
		Rounds:       toPBRounds(sum.rounds),
	}
	if len(sum.residuals) > 0 {
		out.Residuals = sum.residuals
	}
	return out
}
