package service

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"connectrpc.com/connect"
	"github.com/mmynk/potledger/internal/events"
	"github.com/mmynk/potledger/internal/metrics"
	"github.com/mmynk/potledger/internal/middleware"
	"github.com/mmynk/potledger/internal/models"
	"github.com/mmynk/potledger/internal/storage"
	"github.com/mmynk/potledger/internal/storage/sqlite"
	pb "github.com/mmynk/potledger/pkg/ledgerv1"
	"github.com/mmynk/potledger/pkg/ledgerv1/ledgerv1connect"
)

// recordingPublisher keeps every published event in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.SessionSettled
}

func (p *recordingPublisher) PublishSessionSettled(ctx context.Context, ev events.SessionSettled) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []events.SessionSettled {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.SessionSettled(nil), p.events...)
}

// setupTestServer creates a test server backed by a temporary SQLite database
func setupTestServer(t *testing.T) (ledgerv1connect.LedgerServiceClient, *recordingPublisher) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	publisher := &recordingPublisher{}
	m := metrics.New()
	svc := NewLedgerService(store, publisher, m)
	path, handler := ledgerv1connect.NewLedgerServiceHandler(svc,
		connect.WithInterceptors(middleware.MetricsInterceptor(m), middleware.LoggingInterceptor()),
	)

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return ledgerv1connect.NewLedgerServiceClient(http.DefaultClient, server.URL), publisher
}

func createSession(t *testing.T, client ledgerv1connect.LedgerServiceClient, name string) *pb.Session {
	t.Helper()
	resp, err := client.CreateSession(context.Background(), connect.NewRequest(&pb.CreateSessionRequest{Name: name}))
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	return resp.Msg.Session
}

func addPlayer(t *testing.T, client ledgerv1connect.LedgerServiceClient, sessionID, name string) *pb.Player {
	t.Helper()
	resp, err := client.AddPlayer(context.Background(), connect.NewRequest(&pb.AddPlayerRequest{SessionId: sessionID, Name: name}))
	if err != nil {
		t.Fatalf("AddPlayer(%s) failed: %v", name, err)
	}
	return resp.Msg.Player
}

func record(t *testing.T, client ledgerv1connect.LedgerServiceClient, sessionID, playerID, kind string, amount float64) *pb.Transaction {
	t.Helper()
	resp, err := client.RecordTransaction(context.Background(), connect.NewRequest(&pb.RecordTransactionRequest{
		SessionId: sessionID,
		PlayerId:  playerID,
		Type:      kind,
		Amount:    amount,
	}))
	if err != nil {
		t.Fatalf("RecordTransaction(%s %s %.2f) failed: %v", playerID, kind, amount, err)
	}
	return resp.Msg.Transaction
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("code = %v, want %v (err: %v)", got, want, err)
	}
}

func TestCreateSession(t *testing.T) {
	client, _ := setupTestServer(t)
	ctx := context.Background()

	session := createSession(t, client, "  Friday Game  ")
	if session.Id == "" {
		t.Error("expected generated session ID")
	}
	if session.Name != "Friday Game" {
		t.Errorf("Name = %q, want trimmed name", session.Name)
	}
	if session.Type != "POKER" || session.Status != "ACTIVE" || session.CurrentRound != 1 {
		t.Errorf("session = %+v", session)
	}

	resp, err := client.CreateSession(ctx, connect.NewRequest(&pb.CreateSessionRequest{Name: "Tiles", Type: "mahjong"}))
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if resp.Msg.Session.Type != "MAHJONG" {
		t.Errorf("Type = %q, want MAHJONG", resp.Msg.Session.Type)
	}

	_, err = client.CreateSession(ctx, connect.NewRequest(&pb.CreateSessionRequest{Name: "   "}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = client.CreateSession(ctx, connect.NewRequest(&pb.CreateSessionRequest{Name: "x", Type: "BRIDGE"}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestListAndDeleteSessions(t *testing.T) {
	client, _ := setupTestServer(t)
	ctx := context.Background()

	first := createSession(t, client, "First")
	createSession(t, client, "Second")

	list, err := client.ListSessions(ctx, connect.NewRequest(&pb.ListSessionsRequest{}))
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(list.Msg.Sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(list.Msg.Sessions))
	}

	if _, err := client.DeleteSession(ctx, connect.NewRequest(&pb.DeleteSessionRequest{SessionId: first.Id})); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}

	_, err = client.GetSession(ctx, connect.NewRequest(&pb.GetSessionRequest{SessionId: first.Id}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = client.DeleteSession(ctx, connect.NewRequest(&pb.DeleteSessionRequest{SessionId: first.Id}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestAddPlayer(t *testing.T) {
	client, _ := setupTestServer(t)
	ctx := context.Background()

	first := createSession(t, client, "First")
	alice := addPlayer(t, client, first.Id, "Alice")
	if !alice.IsGuest {
		t.Error("new player should be a guest")
	}

	t.Run("idempotent membership", func(t *testing.T) {
		again := addPlayer(t, client, first.Id, "Alice")
		if again.Id != alice.Id {
			t.Errorf("got new player %s, want reuse of %s", again.Id, alice.Id)
		}
		resp, err := client.GetSession(ctx, connect.NewRequest(&pb.GetSessionRequest{SessionId: first.Id}))
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if len(resp.Msg.Session.PlayerIds) != 1 || len(resp.Msg.Players) != 1 {
			t.Errorf("session has %d players, want 1", len(resp.Msg.Session.PlayerIds))
		}
	})

	t.Run("reuse across sessions ignoring case", func(t *testing.T) {
		second := createSession(t, client, "Second")
		p := addPlayer(t, client, second.Id, "alice")
		if p.Id != alice.Id {
			t.Errorf("got %s, want existing player %s", p.Id, alice.Id)
		}

		players, err := client.ListPlayers(ctx, connect.NewRequest(&pb.ListPlayersRequest{}))
		if err != nil {
			t.Fatalf("ListPlayers failed: %v", err)
		}
		if len(players.Msg.Players) != 1 {
			t.Errorf("directory has %d players, want 1", len(players.Msg.Players))
		}
	})

	t.Run("validation", func(t *testing.T) {
		_, err := client.AddPlayer(ctx, connect.NewRequest(&pb.AddPlayerRequest{SessionId: first.Id, Name: ""}))
		assertCode(t, err, connect.CodeInvalidArgument)

		_, err = client.AddPlayer(ctx, connect.NewRequest(&pb.AddPlayerRequest{SessionId: "missing", Name: "Bob"}))
		assertCode(t, err, connect.CodeNotFound)
	})
}

func TestRecordTransactionValidation(t *testing.T) {
	client, _ := setupTestServer(t)
	ctx := context.Background()

	session := createSession(t, client, "Game")
	alice := addPlayer(t, client, session.Id, "Alice")

	other := createSession(t, client, "Other")
	bob := addPlayer(t, client, other.Id, "Bob")

	tests := []struct {
		name string
		req  *pb.RecordTransactionRequest
		want connect.Code
	}{
		{"zero amount", &pb.RecordTransactionRequest{SessionId: session.Id, PlayerId: alice.Id, Type: "BUY_IN", Amount: 0}, connect.CodeInvalidArgument},
		{"negative amount", &pb.RecordTransactionRequest{SessionId: session.Id, PlayerId: alice.Id, Type: "BUY_IN", Amount: -5}, connect.CodeInvalidArgument},
		{"unknown kind", &pb.RecordTransactionRequest{SessionId: session.Id, PlayerId: alice.Id, Type: "TIP", Amount: 5}, connect.CodeInvalidArgument},
		{"player not seated", &pb.RecordTransactionRequest{SessionId: session.Id, PlayerId: bob.Id, Type: "BUY_IN", Amount: 5}, connect.CodeInvalidArgument},
		{"unknown session", &pb.RecordTransactionRequest{SessionId: "missing", PlayerId: alice.Id, Type: "BUY_IN", Amount: 5}, connect.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.RecordTransaction(ctx, connect.NewRequest(tt.req))
			assertCode(t, err, tt.want)
		})
	}

	tx := record(t, client, session.Id, alice.Id, "buy_in", 20)
	if tx.Type != "BUY_IN" || tx.Round != 1 || tx.Timestamp == 0 {
		t.Errorf("transaction = %+v", tx)
	}
}

func TestSettlementFlow(t *testing.T) {
	client, publisher := setupTestServer(t)
	ctx := context.Background()

	session := createSession(t, client, "Friday")
	alice := addPlayer(t, client, session.Id, "Alice")
	bob := addPlayer(t, client, session.Id, "Bob")
	carol := addPlayer(t, client, session.Id, "Carol")

	for _, p := range []*pb.Player{alice, bob, carol} {
		record(t, client, session.Id, p.Id, "BUY_IN", 20)
	}
	record(t, client, session.Id, alice.Id, "CASH_OUT", 15)
	record(t, client, session.Id, bob.Id, "CASH_OUT", 5)
	record(t, client, session.Id, carol.Id, "CASH_OUT", 40)

	resp, err := client.GetSummary(ctx, connect.NewRequest(&pb.GetSummaryRequest{SessionId: session.Id}))
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	sum := resp.Msg.Summary

	wantOrder := []string{carol.Id, alice.Id, bob.Id}
	for i, s := range sum.Stats {
		if s.PlayerId != wantOrder[i] {
			t.Errorf("stats[%d] = %s, want %s", i, s.PlayerName, wantOrder[i])
		}
	}
	if sum.Stats[0].NetScore != 20 || sum.Stats[0].PlayerName != "Carol" {
		t.Errorf("winner = %+v", sum.Stats[0])
	}

	if len(sum.Settlement) != 2 {
		t.Fatalf("got %d transfers, want 2: %+v", len(sum.Settlement), sum.Settlement)
	}
	want := []struct {
		from, to string
		amount   float64
	}{
		{"Bob", "Carol", 15},
		{"Alice", "Carol", 5},
	}
	for i, w := range want {
		got := sum.Settlement[i]
		if got.FromPlayerName != w.from || got.ToPlayerName != w.to || math.Abs(got.Amount-w.amount) > 0.01 {
			t.Errorf("transfer[%d] = %+v, want %s -> %s %.2f", i, got, w.from, w.to, w.amount)
		}
	}
	if !sum.Balanced || sum.Discrepancy != 0 || sum.TotalBuyIn != 60 {
		t.Errorf("totals = in %.2f out %.2f discrepancy %.2f", sum.TotalBuyIn, sum.TotalCashOut, sum.Discrepancy)
	}
	if len(sum.Residuals) != 0 {
		t.Errorf("balanced session should have no residuals, got %v", sum.Residuals)
	}

	ended, err := client.EndSession(ctx, connect.NewRequest(&pb.EndSessionRequest{SessionId: session.Id}))
	if err != nil {
		t.Fatalf("EndSession failed: %v", err)
	}
	if ended.Msg.Summary.Session.Status != "COMPLETED" || ended.Msg.Summary.Session.EndedAt == 0 {
		t.Errorf("session after end = %+v", ended.Msg.Summary.Session)
	}
	if len(ended.Msg.Summary.Settlement) != 2 {
		t.Errorf("EndSession returned %d transfers, want 2", len(ended.Msg.Summary.Settlement))
	}

	published := publisher.published()
	if len(published) != 1 {
		t.Fatalf("published %d events, want 1", len(published))
	}
	if published[0].SessionID != session.Id || len(published[0].Transfers) != 2 {
		t.Errorf("event = %+v", published[0])
	}

	t.Run("completed session is read-only", func(t *testing.T) {
		_, err := client.RecordTransaction(ctx, connect.NewRequest(&pb.RecordTransactionRequest{
			SessionId: session.Id, PlayerId: alice.Id, Type: "BUY_IN", Amount: 10,
		}))
		assertCode(t, err, connect.CodeFailedPrecondition)

		_, err = client.AddPlayer(ctx, connect.NewRequest(&pb.AddPlayerRequest{SessionId: session.Id, Name: "Dave"}))
		assertCode(t, err, connect.CodeFailedPrecondition)

		_, err = client.NextRound(ctx, connect.NewRequest(&pb.NextRoundRequest{SessionId: session.Id}))
		assertCode(t, err, connect.CodeFailedPrecondition)

		_, err = client.EndSession(ctx, connect.NewRequest(&pb.EndSessionRequest{SessionId: session.Id}))
		assertCode(t, err, connect.CodeFailedPrecondition)

		if _, err := client.GetSummary(ctx, connect.NewRequest(&pb.GetSummaryRequest{SessionId: session.Id})); err != nil {
			t.Errorf("GetSummary on completed session failed: %v", err)
		}
	})
}

func TestUnbalancedSummary(t *testing.T) {
	client, _ := setupTestServer(t)
	ctx := context.Background()

	session := createSession(t, client, "Short")
	alice := addPlayer(t, client, session.Id, "Alice")
	bob := addPlayer(t, client, session.Id, "Bob")

	record(t, client, session.Id, alice.Id, "BUY_IN", 20)
	record(t, client, session.Id, bob.Id, "BUY_IN", 20)
	record(t, client, session.Id, alice.Id, "CASH_OUT", 30)
	record(t, client, session.Id, bob.Id, "CASH_OUT", 5)

	resp, err := client.GetSummary(ctx, connect.NewRequest(&pb.GetSummaryRequest{SessionId: session.Id}))
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	sum := resp.Msg.Summary

	if sum.Balanced {
		t.Error("expected unbalanced summary")
	}
	if math.Abs(sum.Discrepancy-5) > 0.01 {
		t.Errorf("Discrepancy = %.2f, want 5", sum.Discrepancy)
	}
	if len(sum.Settlement) != 1 || sum.Settlement[0].FromPlayerId != bob.Id || math.Abs(sum.Settlement[0].Amount-10) > 0.01 {
		t.Errorf("settlement = %+v, want Bob pays Alice 10", sum.Settlement)
	}
	if math.Abs(sum.Residuals[bob.Id]+5) > 0.01 {
		t.Errorf("residuals = %v, want Bob -5", sum.Residuals)
	}
}

func TestRoundsAndDeleteTransaction(t *testing.T) {
	client, _ := setupTestServer(t)
	ctx := context.Background()

	session := createSession(t, client, "Rounds")
	alice := addPlayer(t, client, session.Id, "Alice")

	first := record(t, client, session.Id, alice.Id, "BUY_IN", 10)

	next, err := client.NextRound(ctx, connect.NewRequest(&pb.NextRoundRequest{SessionId: session.Id}))
	if err != nil {
		t.Fatalf("NextRound failed: %v", err)
	}
	if next.Msg.Session.CurrentRound != 2 {
		t.Errorf("CurrentRound = %d, want 2", next.Msg.Session.CurrentRound)
	}

	second := record(t, client, session.Id, alice.Id, "CASH_OUT", 10)
	if second.Round != 2 {
		t.Errorf("Round = %d, want 2", second.Round)
	}

	resp, err := client.GetSummary(ctx, connect.NewRequest(&pb.GetSummaryRequest{SessionId: session.Id}))
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	rounds := resp.Msg.Summary.Rounds
	if len(rounds) != 2 || rounds[0].Round != 2 || rounds[1].Round != 1 {
		t.Fatalf("rounds = %+v, want [2 1]", rounds)
	}
	if rounds[1].Transactions[0].Id != first.Id {
		t.Errorf("round 1 holds %s, want %s", rounds[1].Transactions[0].Id, first.Id)
	}

	if _, err := client.DeleteTransaction(ctx, connect.NewRequest(&pb.DeleteTransactionRequest{TransactionId: first.Id})); err != nil {
		t.Fatalf("DeleteTransaction failed: %v", err)
	}
	_, err = client.DeleteTransaction(ctx, connect.NewRequest(&pb.DeleteTransactionRequest{TransactionId: first.Id}))
	assertCode(t, err, connect.CodeNotFound)

	resp, err = client.GetSummary(ctx, connect.NewRequest(&pb.GetSummaryRequest{SessionId: session.Id}))
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if got := resp.Msg.Summary.Stats[0].TotalBuyIn; got != 0 {
		t.Errorf("TotalBuyIn after delete = %.2f, want 0", got)
	}
}

func TestExportImportState(t *testing.T) {
	source, _ := setupTestServer(t)
	ctx := context.Background()

	session := createSession(t, source, "Backup")
	alice := addPlayer(t, source, session.Id, "Alice")
	bob := addPlayer(t, source, session.Id, "Bob")
	record(t, source, session.Id, alice.Id, "BUY_IN", 25)
	record(t, source, session.Id, bob.Id, "BUY_IN", 25)
	record(t, source, session.Id, alice.Id, "CASH_OUT", 50)

	exported, err := source.ExportState(ctx, connect.NewRequest(&pb.ExportStateRequest{}))
	if err != nil {
		t.Fatalf("ExportState failed: %v", err)
	}
	state := exported.Msg.State
	if len(state.Games) != 1 || len(state.Players) != 2 || len(state.Transactions) != 3 {
		t.Fatalf("exported %d/%d/%d", len(state.Games), len(state.Players), len(state.Transactions))
	}

	target, _ := setupTestServer(t)
	imported, err := target.ImportState(ctx, connect.NewRequest(&pb.ImportStateRequest{State: state}))
	if err != nil {
		t.Fatalf("ImportState failed: %v", err)
	}
	if imported.Msg.Transactions != 3 {
		t.Errorf("imported %d transactions, want 3", imported.Msg.Transactions)
	}

	resp, err := target.GetSummary(ctx, connect.NewRequest(&pb.GetSummaryRequest{SessionId: session.Id}))
	if err != nil {
		t.Fatalf("GetSummary after import failed: %v", err)
	}
	sum := resp.Msg.Summary
	if len(sum.Settlement) != 1 || sum.Settlement[0].FromPlayerName != "Bob" || sum.Settlement[0].Amount != 25 {
		t.Errorf("settlement after import = %+v", sum.Settlement)
	}

	t.Run("rejects invalid documents", func(t *testing.T) {
		_, err := target.ImportState(ctx, connect.NewRequest(&pb.ImportStateRequest{}))
		assertCode(t, err, connect.CodeInvalidArgument)

		bad := &pb.State{
			Games:   state.Games,
			Players: state.Players,
			Transactions: []*pb.Transaction{
				{Id: "t1", SessionId: session.Id, PlayerId: alice.Id, Type: "BUY_IN", Amount: -1},
			},
		}
		_, err = target.ImportState(ctx, connect.NewRequest(&pb.ImportStateRequest{State: bad}))
		assertCode(t, err, connect.CodeInvalidArgument)

		dangling := &pb.State{
			Players: state.Players,
			Transactions: []*pb.Transaction{
				{Id: "t1", SessionId: "gone", PlayerId: alice.Id, Type: "BUY_IN", Amount: 1},
			},
		}
		_, err = target.ImportState(ctx, connect.NewRequest(&pb.ImportStateRequest{State: dangling}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		p := state.Players[0]
		tx := state.Transactions[0]
		g := state.Games[0]
		tests := []struct {
			name  string
			state *pb.State
		}{
			{"players", &pb.State{Players: []*pb.Player{p, p}}},
			{"sessions", &pb.State{Players: state.Players, Games: []*pb.Session{g, g}}},
			{"transactions", &pb.State{Players: state.Players, Games: state.Games, Transactions: []*pb.Transaction{tx, tx}}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := target.ImportState(ctx, connect.NewRequest(&pb.ImportStateRequest{State: tt.state}))
				assertCode(t, err, connect.CodeInvalidArgument)
			})
		}

		// The rejected imports left the earlier one in place
		if _, err := target.GetSummary(ctx, connect.NewRequest(&pb.GetSummaryRequest{SessionId: session.Id})); err != nil {
			t.Errorf("GetSummary after rejected import failed: %v", err)
		}
	})
}

// failingListStore breaks transaction listing so summaries cannot be built.
type failingListStore struct {
	storage.Store
}

func (failingListStore) ListTransactionsBySession(ctx context.Context, sessionID string) ([]models.Transaction, error) {
	return nil, errors.New("disk on fire")
}

func TestEndSessionKeepsSessionOpenWhenSummaryFails(t *testing.T) {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	ctx := context.Background()

	session := &models.Session{Name: "Fragile", Type: models.SessionTypePoker, Status: models.SessionStatusActive}
	if err := store.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	publisher := &recordingPublisher{}
	svc := NewLedgerService(failingListStore{Store: store}, publisher, nil)

	_, err = svc.EndSession(ctx, connect.NewRequest(&pb.EndSessionRequest{SessionId: session.ID}))
	assertCode(t, err, connect.CodeInternal)

	got, err := store.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if !got.IsActive() || got.EndedAt != 0 {
		t.Errorf("session = %+v, want still ACTIVE", got)
	}
	if n := len(publisher.published()); n != 0 {
		t.Errorf("published %d events, want 0", n)
	}
}
