package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/potledger/internal/models"
)

// LoadState reads the complete ledger into memory.
func (s *SQLiteStore) LoadState(ctx context.Context) (*models.AppState, error) {
	state := &models.AppState{
		Sessions:     []models.Session{},
		Players:      []models.Player{},
		Transactions: []models.Transaction{},
	}

	sessions, err := s.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	for _, session := range sessions {
		state.Sessions = append(state.Sessions, *session)
	}

	players, err := s.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	for _, player := range players {
		state.Players = append(state.Players, *player)
	}

	txs, err := s.queryTransactions(ctx,
		"SELECT "+transactionColumns+" FROM transactions ORDER BY created_at, rowid",
	)
	if err != nil {
		return nil, err
	}
	state.Transactions = append(state.Transactions, txs...)

	return state, nil
}

// SaveState replaces the entire database contents with state in one transaction.
func (s *SQLiteStore) SaveState(ctx context.Context, state *models.AppState) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"transactions", "session_players", "sessions", "players"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i := range state.Players {
		if err := insertPlayer(ctx, tx, &state.Players[i]); err != nil {
			return err
		}
	}
	for i := range state.Sessions {
		session := state.Sessions[i]
		if session.CurrentRound < 1 {
			session.CurrentRound = 1
		}
		if err := insertSession(ctx, tx, &session); err != nil {
			return err
		}
	}
	for i := range state.Transactions {
		if err := insertTransaction(ctx, tx, &state.Transactions[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
