// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/potledger/internal/models"
)

// ErrNotFound is wrapped by stores when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// StatePort loads and saves the complete ledger snapshot.
type StatePort interface {
	// LoadState returns every session, player and transaction.
	LoadState(ctx context.Context) (*models.AppState, error)

	// SaveState replaces all stored data with state.
	SaveState(ctx context.Context, state *models.AppState) error
}

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, a JSON file, etc.)
// without changing the service layer.
type Store interface {
	StatePort

	// CreatePlayer persists a new player. ID and CreatedAt are filled in when empty.
	CreatePlayer(ctx context.Context, player *models.Player) error

	// GetPlayer retrieves a player by ID.
	GetPlayer(ctx context.Context, playerID string) (*models.Player, error)

	// FindPlayerByName looks a player up by name, ignoring case.
	// Returns nil, nil if no player has that name.
	FindPlayerByName(ctx context.Context, name string) (*models.Player, error)

	// ListPlayers returns the whole player directory ordered by name.
	ListPlayers(ctx context.Context) ([]*models.Player, error)

	// CreateSession persists a new session. ID and CreatedAt are filled in when empty.
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves a session by ID, including its participant list.
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)

	// ListSessions returns all sessions, newest first.
	ListSessions(ctx context.Context) ([]*models.Session, error)

	// UpdateSession overwrites an existing session, including its participants.
	UpdateSession(ctx context.Context, session *models.Session) error

	// DeleteSession removes a session and all of its transactions.
	DeleteSession(ctx context.Context, sessionID string) error

	// CreateTransaction persists a new transaction. ID and CreatedAt are filled in when empty.
	CreateTransaction(ctx context.Context, tx *models.Transaction) error

	// GetTransaction retrieves a transaction by ID.
	GetTransaction(ctx context.Context, txID string) (*models.Transaction, error)

	// DeleteTransaction removes a transaction by ID.
	DeleteTransaction(ctx context.Context, txID string) error

	// ListTransactionsBySession returns a session's transactions in recording order.
	ListTransactionsBySession(ctx context.Context, sessionID string) ([]models.Transaction, error)

	// Close releases any resources held by the store.
	Close() error
}
