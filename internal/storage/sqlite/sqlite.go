// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/potledger/internal/models"
	"github.com/mmynk/potledger/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Foreign keys are a per-connection setting, so ask the driver to enable
	// them on every connection in the pool.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSession persists a new session and its participant list.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *models.Session) error {
	// Generate IDs if not set
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt == 0 {
		session.CreatedAt = time.Now().UnixMilli()
	}
	if session.CurrentRound < 1 {
		session.CurrentRound = 1
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertSession(ctx, tx, session); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertSession(ctx context.Context, db execer, session *models.Session) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO sessions (id, name, type, status, blind_rules, current_round, created_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID, session.Name, string(session.Type), string(session.Status),
		nullString(session.BlindRules), session.CurrentRound, session.CreatedAt, session.EndedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return insertSessionPlayers(ctx, db, session.ID, session.PlayerIDs)
}

func insertSessionPlayers(ctx context.Context, db execer, sessionID string, playerIDs []string) error {
	for pos, playerID := range playerIDs {
		_, err := db.ExecContext(ctx,
			"INSERT OR IGNORE INTO session_players (session_id, player_id, position) VALUES (?, ?, ?)",
			sessionID, playerID, pos,
		)
		if err != nil {
			return fmt.Errorf("failed to insert session player: %w", err)
		}
	}
	return nil
}

// GetSession retrieves a session by ID, including its participants in join order.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session := &models.Session{}
	var sessionType, status string
	var blindRules sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, type, status, blind_rules, current_round, created_at, ended_at
		 FROM sessions WHERE id = ?`,
		sessionID,
	).Scan(&session.ID, &session.Name, &sessionType, &status, &blindRules,
		&session.CurrentRound, &session.CreatedAt, &session.EndedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", sessionID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	session.Type = models.SessionType(sessionType)
	session.Status = models.SessionStatus(status)
	session.BlindRules = blindRules.String

	session.PlayerIDs, err = s.sessionPlayers(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SQLiteStore) sessionPlayers(ctx context.Context, sessionID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT player_id FROM session_players WHERE session_id = ? ORDER BY position",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get session players: %w", err)
	}
	defer rows.Close()

	playerIDs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan session player: %w", err)
		}
		playerIDs = append(playerIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session players: %w", err)
	}
	return playerIDs, nil
}

// ListSessions retrieves all sessions, newest first.
func (s *SQLiteStore) ListSessions(ctx context.Context) ([]*models.Session, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM sessions ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	sessions := make([]*models.Session, 0, len(ids))
	for _, id := range ids {
		session, err := s.GetSession(ctx, id)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// UpdateSession overwrites a session's fields and participant list.
func (s *SQLiteStore) UpdateSession(ctx context.Context, session *models.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE sessions SET name = ?, type = ?, status = ?, blind_rules = ?, current_round = ?, ended_at = ?
		 WHERE id = ?`,
		session.Name, string(session.Type), string(session.Status), nullString(session.BlindRules),
		session.CurrentRound, session.EndedAt, session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("session %s: %w", session.ID, storage.ErrNotFound)
	}

	// Replace participants
	if _, err := tx.ExecContext(ctx, "DELETE FROM session_players WHERE session_id = ?", session.ID); err != nil {
		return fmt.Errorf("failed to delete session players: %w", err)
	}
	if err := insertSessionPlayers(ctx, tx, session.ID, session.PlayerIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteSession removes a session together with its participants and transactions.
func (s *SQLiteStore) DeleteSession(ctx context.Context, sessionID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM transactions WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to delete session transactions: %w", err)
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("session %s: %w", sessionID, storage.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// nullString stores empty optional strings as NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
