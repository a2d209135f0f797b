package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/potledger/internal/models"
	"github.com/mmynk/potledger/internal/storage"
)

const playerColumns = "id, name, avatar, is_guest, created_at"

// CreatePlayer inserts a new player into the directory.
func (s *SQLiteStore) CreatePlayer(ctx context.Context, player *models.Player) error {
	if player.ID == "" {
		player.ID = uuid.New().String()
	}
	if player.CreatedAt == 0 {
		player.CreatedAt = time.Now().UnixMilli()
	}
	return insertPlayer(ctx, s.db, player)
}

func insertPlayer(ctx context.Context, db execer, player *models.Player) error {
	_, err := db.ExecContext(ctx,
		"INSERT INTO players ("+playerColumns+", name_key) VALUES (?, ?, ?, ?, ?, ?)",
		player.ID, player.Name, nullString(player.Avatar), player.IsGuest, player.CreatedAt,
		models.NameKey(player.Name),
	)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row scanner) (*models.Player, error) {
	player := &models.Player{}
	var avatar sql.NullString
	if err := row.Scan(&player.ID, &player.Name, &avatar, &player.IsGuest, &player.CreatedAt); err != nil {
		return nil, err
	}
	player.Avatar = avatar.String
	return player, nil
}

// GetPlayer retrieves a player by ID.
func (s *SQLiteStore) GetPlayer(ctx context.Context, playerID string) (*models.Player, error) {
	player, err := scanPlayer(s.db.QueryRowContext(ctx,
		"SELECT "+playerColumns+" FROM players WHERE id = ?", playerID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %s: %w", playerID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

// FindPlayerByName retrieves a player by name, ignoring case.
func (s *SQLiteStore) FindPlayerByName(ctx context.Context, name string) (*models.Player, error) {
	player, err := scanPlayer(s.db.QueryRowContext(ctx,
		"SELECT "+playerColumns+" FROM players WHERE name_key = ? ORDER BY created_at LIMIT 1", models.NameKey(name),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Player not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player by name: %w", err)
	}
	return player, nil
}

// ListPlayers retrieves the whole player directory ordered by name.
func (s *SQLiteStore) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+playerColumns+" FROM players ORDER BY name COLLATE NOCASE, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []*models.Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating players: %w", err)
	}
	return players, nil
}
