// Package models defines the core domain models for potledger.
//
// # Models
//
//   - Player: Someone who can sit down at a session (global directory)
//   - Session: A single game-playing occasion (poker, mahjong or general scoring)
//   - Transaction: One buy-in or cash-out recorded for a player in a session
//   - AppState: The full snapshot loaded and saved by the storage layer
//
// Derived values (per-player statistics, settlement transfers) are not models:
// they are computed on demand by the calculator package and never persisted.
//
// # Design Principles
//
// 1. **Immutable facts**: Transactions are never edited, only created or deleted
// 2. **Closed enumerations**: Kinds, session types and statuses are typed string constants
// 3. **Avoid circular references**: Use ID strings instead of pointers for relationships
// 4. **Unix milliseconds**: All timestamps are int64 milliseconds so ordering within a second is kept
package models
