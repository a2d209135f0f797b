package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mmynk/potledger/internal/models"
)

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Sessions must be created before session_players and transactions due to foreign keys.
const schema = `
CREATE TABLE IF NOT EXISTS players (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    name_key TEXT NOT NULL DEFAULT '',
    avatar TEXT,
    is_guest INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    status TEXT NOT NULL,
    blind_rules TEXT,
    current_round INTEGER NOT NULL DEFAULT 1,
    created_at INTEGER NOT NULL,
    ended_at INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS session_players (
    session_id TEXT NOT NULL,
    player_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (session_id, player_id),
    FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS transactions (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    player_id TEXT NOT NULL,
    kind TEXT NOT NULL CHECK (kind IN ('BUY_IN', 'CASH_OUT')),
    amount REAL NOT NULL CHECK (amount > 0),
    created_at INTEGER NOT NULL,
    round INTEGER NOT NULL DEFAULT 1,
    note TEXT,
    FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_session_players_session_id ON session_players(session_id);
CREATE INDEX IF NOT EXISTS idx_transactions_session_id ON transactions(session_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return err
	}
	return migratePlayerNameKey(db)
}

// migratePlayerNameKey adds and backfills players.name_key on databases
// created before the column existed. SQLite's NOCASE only folds ASCII, so
// the lowercased key is computed in Go.
func migratePlayerNameKey(db *sql.DB) error {
	var count int
	if err := db.QueryRow(
		"SELECT COUNT(*) FROM pragma_table_info('players') WHERE name = 'name_key'",
	).Scan(&count); err != nil {
		return fmt.Errorf("failed to inspect players table: %w", err)
	}
	if count == 0 {
		if _, err := db.Exec("ALTER TABLE players ADD COLUMN name_key TEXT NOT NULL DEFAULT ''"); err != nil {
			return fmt.Errorf("failed to add name_key column: %w", err)
		}
	}

	rows, err := db.Query("SELECT id, name FROM players WHERE name_key = ''")
	if err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}
	keys := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan player: %w", err)
		}
		keys[id] = models.NameKey(name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}
	for id, key := range keys {
		if _, err := db.Exec("UPDATE players SET name_key = ? WHERE id = ?", key, id); err != nil {
			return fmt.Errorf("failed to backfill name_key: %w", err)
		}
	}

	_, err = db.Exec("CREATE INDEX IF NOT EXISTS idx_players_name_key ON players(name_key)")
	return err
}
