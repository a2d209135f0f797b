// Package jsonfile implements storage.Store on top of a single JSON snapshot.
//
// The whole AppState lives in memory and is written back to disk after every
// mutation. This mirrors how a single-owner ledger keeps its state: load once
// at startup, save after each change.
package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/mmynk/potledger/internal/models"
	"github.com/mmynk/potledger/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store keeps the ledger in memory and persists it to a JSON file.
type Store struct {
	mu    sync.RWMutex
	path  string
	state *models.AppState
}

// Open loads the snapshot at path, creating an empty one if the file does not exist.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	s := &Store{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) || (err == nil && len(strings.TrimSpace(string(data))) == 0) {
		s.state = &models.AppState{}
		return s.flush(s.state)
	}
	if err != nil {
		return fmt.Errorf("failed to read state file: %w", err)
	}
	var state models.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("failed to decode state file: %w", err)
	}
	s.state = &state
	return nil
}

// flush writes state to a temp file and renames it over the old one.
func (s *Store) flush(state *models.AppState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

func (s *Store) withWrite(ctx context.Context, fn func(*models.AppState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	// Mutate a copy so a failed flush leaves memory matching the file
	next := cloneState(s.state)
	if err := fn(next); err != nil {
		return err
	}
	if err := s.flush(next); err != nil {
		return err
	}
	s.state = next
	return nil
}

func (s *Store) withRead(ctx context.Context, fn func(*models.AppState) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(s.state)
}

// Close is a no-op; every mutation is already on disk.
func (s *Store) Close() error { return nil }

// LoadState returns a deep copy of the snapshot.
func (s *Store) LoadState(ctx context.Context) (*models.AppState, error) {
	var out *models.AppState
	err := s.withRead(ctx, func(st *models.AppState) error {
		out = cloneState(st)
		return nil
	})
	return out, err
}

// SaveState replaces the snapshot.
func (s *Store) SaveState(ctx context.Context, state *models.AppState) error {
	return s.withWrite(ctx, func(st *models.AppState) error {
		*st = *cloneState(state)
		return nil
	})
}

func cloneState(st *models.AppState) *models.AppState {
	out := &models.AppState{
		Sessions:     make([]models.Session, len(st.Sessions)),
		Players:      append([]models.Player{}, st.Players...),
		Transactions: append([]models.Transaction{}, st.Transactions...),
	}
	for i, session := range st.Sessions {
		out.Sessions[i] = cloneSession(&session)
	}
	return out
}

func cloneSession(s *models.Session) models.Session {
	c := *s
	c.PlayerIDs = append([]string{}, s.PlayerIDs...)
	return c
}

// CreatePlayer adds a player to the directory.
func (s *Store) CreatePlayer(ctx context.Context, player *models.Player) error {
	if player.ID == "" {
		player.ID = uuid.New().String()
	}
	if player.CreatedAt == 0 {
		player.CreatedAt = time.Now().UnixMilli()
	}
	return s.withWrite(ctx, func(st *models.AppState) error {
		for _, p := range st.Players {
			if p.ID == player.ID {
				return fmt.Errorf("player %s already exists", player.ID)
			}
		}
		st.Players = append(st.Players, *player)
		return nil
	})
}

// GetPlayer retrieves a player by ID.
func (s *Store) GetPlayer(ctx context.Context, playerID string) (*models.Player, error) {
	var out *models.Player
	err := s.withRead(ctx, func(st *models.AppState) error {
		for _, p := range st.Players {
			if p.ID == playerID {
				p := p
				out = &p
				return nil
			}
		}
		return fmt.Errorf("player %s: %w", playerID, storage.ErrNotFound)
	})
	return out, err
}

// FindPlayerByName retrieves the first player whose name matches, ignoring case.
func (s *Store) FindPlayerByName(ctx context.Context, name string) (*models.Player, error) {
	var out *models.Player
	err := s.withRead(ctx, func(st *models.AppState) error {
		key := models.NameKey(name)
		for _, p := range st.Players {
			if models.NameKey(p.Name) == key {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

// ListPlayers returns the directory ordered by name.
func (s *Store) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	var out []*models.Player
	err := s.withRead(ctx, func(st *models.AppState) error {
		for _, p := range st.Players {
			p := p
			out = append(out, &p)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, err
}

// CreateSession adds a session.
func (s *Store) CreateSession(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt == 0 {
		session.CreatedAt = time.Now().UnixMilli()
	}
	if session.CurrentRound < 1 {
		session.CurrentRound = 1
	}
	if session.PlayerIDs == nil {
		session.PlayerIDs = []string{}
	}
	return s.withWrite(ctx, func(st *models.AppState) error {
		if findSession(st, session.ID) >= 0 {
			return fmt.Errorf("session %s already exists", session.ID)
		}
		st.Sessions = append(st.Sessions, cloneSession(session))
		return nil
	})
}

func findSession(st *models.AppState, id string) int {
	for i := range st.Sessions {
		if st.Sessions[i].ID == id {
			return i
		}
	}
	return -1
}

// GetSession retrieves a session by ID.
func (s *Store) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	var out *models.Session
	err := s.withRead(ctx, func(st *models.AppState) error {
		i := findSession(st, sessionID)
		if i < 0 {
			return fmt.Errorf("session %s: %w", sessionID, storage.ErrNotFound)
		}
		c := cloneSession(&st.Sessions[i])
		out = &c
		return nil
	})
	return out, err
}

// ListSessions returns all sessions, newest first.
func (s *Store) ListSessions(ctx context.Context) ([]*models.Session, error) {
	var out []*models.Session
	err := s.withRead(ctx, func(st *models.AppState) error {
		for i := range st.Sessions {
			c := cloneSession(&st.Sessions[i])
			out = append(out, &c)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, err
}

// UpdateSession overwrites an existing session.
func (s *Store) UpdateSession(ctx context.Context, session *models.Session) error {
	return s.withWrite(ctx, func(st *models.AppState) error {
		i := findSession(st, session.ID)
		if i < 0 {
			return fmt.Errorf("session %s: %w", session.ID, storage.ErrNotFound)
		}
		updated := cloneSession(session)
		updated.CreatedAt = st.Sessions[i].CreatedAt
		st.Sessions[i] = updated
		return nil
	})
}

// DeleteSession removes a session and its transactions.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	return s.withWrite(ctx, func(st *models.AppState) error {
		i := findSession(st, sessionID)
		if i < 0 {
			return fmt.Errorf("session %s: %w", sessionID, storage.ErrNotFound)
		}
		st.Sessions = append(st.Sessions[:i], st.Sessions[i+1:]...)

		kept := st.Transactions[:0]
		for _, tx := range st.Transactions {
			if tx.SessionID != sessionID {
				kept = append(kept, tx)
			}
		}
		st.Transactions = kept
		return nil
	})
}

// CreateTransaction appends a transaction to the log.
func (s *Store) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if tx.CreatedAt == 0 {
		tx.CreatedAt = time.Now().UnixMilli()
	}
	if !tx.Kind.Valid() {
		return fmt.Errorf("failed to insert transaction: invalid kind %q", tx.Kind)
	}
	if tx.Amount <= 0 {
		return fmt.Errorf("failed to insert transaction: amount must be positive")
	}
	return s.withWrite(ctx, func(st *models.AppState) error {
		if findSession(st, tx.SessionID) < 0 {
			return fmt.Errorf("session %s: %w", tx.SessionID, storage.ErrNotFound)
		}
		st.Transactions = append(st.Transactions, *tx)
		return nil
	})
}

// GetTransaction retrieves a transaction by ID.
func (s *Store) GetTransaction(ctx context.Context, txID string) (*models.Transaction, error) {
	var out *models.Transaction
	err := s.withRead(ctx, func(st *models.AppState) error {
		for _, tx := range st.Transactions {
			if tx.ID == txID {
				tx := tx
				out = &tx
				return nil
			}
		}
		return fmt.Errorf("transaction %s: %w", txID, storage.ErrNotFound)
	})
	return out, err
}

// DeleteTransaction removes a transaction by ID.
func (s *Store) DeleteTransaction(ctx context.Context, txID string) error {
	return s.withWrite(ctx, func(st *models.AppState) error {
		for i, tx := range st.Transactions {
			if tx.ID == txID {
				st.Transactions = append(st.Transactions[:i], st.Transactions[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("transaction %s: %w", txID, storage.ErrNotFound)
	})
}

// ListTransactionsBySession returns a session's transactions in recording order.
func (s *Store) ListTransactionsBySession(ctx context.Context, sessionID string) ([]models.Transaction, error) {
	var out []models.Transaction
	err := s.withRead(ctx, func(st *models.AppState) error {
		for _, tx := range st.Transactions {
			if tx.SessionID == sessionID {
				out = append(out, tx)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, err
}
