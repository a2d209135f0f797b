package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/potledger/internal/models"
	"github.com/mmynk/potledger/internal/storage"
)

func TestStorePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "ledger.json")
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	player := &models.Player{Name: "Alice"}
	if err := store.CreatePlayer(ctx, player); err != nil {
		t.Fatalf("CreatePlayer failed: %v", err)
	}
	session := &models.Session{
		Name:      "Poker",
		Type:      models.SessionTypePoker,
		Status:    models.SessionStatusActive,
		PlayerIDs: []string{player.ID},
	}
	if err := store.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	tx := &models.Transaction{SessionID: session.ID, PlayerID: player.ID, Kind: models.KindBuyIn, Amount: 20, Round: 1}
	if err := store.CreateTransaction(ctx, tx); err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}
	store.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}

	got, err := reopened.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.Name != "Poker" || len(got.PlayerIDs) != 1 || got.CurrentRound != 1 {
		t.Errorf("GetSession = %+v", got)
	}

	txs, err := reopened.ListTransactionsBySession(ctx, session.ID)
	if err != nil {
		t.Fatalf("ListTransactionsBySession failed: %v", err)
	}
	if len(txs) != 1 || txs[0].Amount != 20 || txs[0].Kind != models.KindBuyIn {
		t.Errorf("transactions = %+v", txs)
	}

	found, err := reopened.FindPlayerByName(ctx, "ALICE")
	if err != nil || found == nil || found.ID != player.ID {
		t.Errorf("FindPlayerByName = %+v, %v", found, err)
	}
}

func TestStoreNotFound(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "ledger.json"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	ctx := context.Background()

	if _, err := store.GetSession(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetSession: expected ErrNotFound, got %v", err)
	}
	if _, err := store.GetPlayer(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetPlayer: expected ErrNotFound, got %v", err)
	}
	if err := store.DeleteTransaction(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("DeleteTransaction: expected ErrNotFound, got %v", err)
	}
	if err := store.UpdateSession(ctx, &models.Session{ID: "nope"}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateSession: expected ErrNotFound, got %v", err)
	}
	err = store.CreateTransaction(ctx, &models.Transaction{SessionID: "nope", PlayerID: "p", Kind: models.KindBuyIn, Amount: 1})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("CreateTransaction: expected ErrNotFound, got %v", err)
	}
}

func TestStoreRejectsInvalidTransaction(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "ledger.json"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	ctx := context.Background()
	session := &models.Session{Name: "g", Status: models.SessionStatusActive}
	if err := store.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	tests := []struct {
		name string
		tx   models.Transaction
	}{
		{"zero amount", models.Transaction{SessionID: session.ID, Kind: models.KindBuyIn, Amount: 0}},
		{"negative amount", models.Transaction{SessionID: session.ID, Kind: models.KindCashOut, Amount: -3}},
		{"unknown kind", models.Transaction{SessionID: session.ID, Kind: "REFUND", Amount: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := tt.tx
			if err := store.CreateTransaction(ctx, &tx); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDeleteSessionCascades(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "ledger.json"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	ctx := context.Background()

	keep := &models.Session{Name: "keep", Status: models.SessionStatusActive}
	drop := &models.Session{Name: "drop", Status: models.SessionStatusActive}
	for _, s := range []*models.Session{keep, drop} {
		if err := store.CreateSession(ctx, s); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		if err := store.CreateTransaction(ctx, &models.Transaction{SessionID: s.ID, PlayerID: "p", Kind: models.KindBuyIn, Amount: 5}); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}
	}

	if err := store.DeleteSession(ctx, drop.ID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}

	state, err := store.LoadState(ctx)
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if len(state.Sessions) != 1 || state.Sessions[0].ID != keep.ID {
		t.Errorf("sessions = %+v", state.Sessions)
	}
	if len(state.Transactions) != 1 || state.Transactions[0].SessionID != keep.ID {
		t.Errorf("transactions = %+v", state.Transactions)
	}
}

func TestLoadStateIsACopy(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "ledger.json"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	ctx := context.Background()
	session := &models.Session{Name: "g", Status: models.SessionStatusActive, PlayerIDs: []string{"a"}}
	if err := store.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	state, err := store.LoadState(ctx)
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	state.Sessions[0].PlayerIDs[0] = "changed"

	got, err := store.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.PlayerIDs[0] != "a" {
		t.Errorf("store state changed through LoadState copy: %v", got.PlayerIDs)
	}
}

func TestFindPlayerByNameFoldsUnicode(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "ledger.json"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	ctx := context.Background()

	elodie := &models.Player{Name: "Élodie"}
	if err := store.CreatePlayer(ctx, elodie); err != nil {
		t.Fatalf("CreatePlayer failed: %v", err)
	}

	for _, name := range []string{"élodie", "ÉLODIE", "  Élodie "} {
		got, err := store.FindPlayerByName(ctx, name)
		if err != nil {
			t.Fatalf("FindPlayerByName(%q) failed: %v", name, err)
		}
		if got == nil || got.ID != elodie.ID {
			t.Errorf("FindPlayerByName(%q) = %+v, want %s", name, got, elodie.ID)
		}
	}
}

func TestFailedFlushLeavesStateUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	ctx := context.Background()

	// A directory in place of the state file makes the rename fail
	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(path, "blocker"), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	player := &models.Player{Name: "Alice"}
	if err := store.CreatePlayer(ctx, player); err == nil {
		t.Fatal("expected CreatePlayer to fail when the state file cannot be replaced")
	}

	if _, err := store.GetPlayer(ctx, player.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetPlayer after failed write: err = %v, want ErrNotFound", err)
	}
	players, err := store.ListPlayers(ctx)
	if err != nil {
		t.Fatalf("ListPlayers failed: %v", err)
	}
	if len(players) != 0 {
		t.Errorf("ListPlayers = %d players, want 0", len(players))
	}
}
