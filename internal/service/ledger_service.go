package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/potledger/internal/calculator"
	"github.com/mmynk/potledger/internal/events"
	"github.com/mmynk/potledger/internal/metrics"
	"github.com/mmynk/potledger/internal/models"
	"github.com/mmynk/potledger/internal/storage"
	pb "github.com/mmynk/potledger/pkg/ledgerv1"
	"github.com/mmynk/potledger/pkg/ledgerv1/ledgerv1connect"
)

// LedgerService implements the Connect LedgerService
type LedgerService struct {
	ledgerv1connect.UnimplementedLedgerServiceHandler
	store     storage.Store
	publisher events.Publisher
	metrics   *metrics.Metrics
	now       func() time.Time

	// mu serializes read-modify-write sequences on sessions
	mu sync.Mutex
}

// NewLedgerService creates a new LedgerService. publisher and m may be nil.
func NewLedgerService(store storage.Store, publisher events.Publisher, m *metrics.Metrics) *LedgerService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &LedgerService{
		store:     store,
		publisher: publisher,
		metrics:   m,
		now:       time.Now,
	}
}

// activeSession loads a session and fails unless it is still ACTIVE.
func (s *LedgerService) activeSession(ctx context.Context, sessionID string) (*models.Session, error) {
	if sessionID == "" {
		return nil, ErrIDRequired
	}
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsActive() {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotActive, sessionID)
	}
	return session, nil
}

// CreateSession starts a new ACTIVE session in round 1.
func (s *LedgerService) CreateSession(ctx context.Context, req *connect.Request[pb.CreateSessionRequest]) (*connect.Response[pb.CreateSessionResponse], error) {
	slog.Info("CreateSession request received", "name", req.Msg.Name, "type", req.Msg.Type)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, toConnectError(ErrNameRequired)
	}

	sessionType := models.SessionTypePoker
	if req.Msg.Type != "" {
		sessionType = models.SessionType(strings.ToUpper(req.Msg.Type))
		if !sessionType.Valid() {
			return nil, toConnectError(ErrInvalidSessionType)
		}
	}

	session := &models.Session{
		Name:         name,
		Type:         sessionType,
		Status:       models.SessionStatusActive,
		BlindRules:   strings.TrimSpace(req.Msg.BlindRules),
		PlayerIDs:    []string{},
		CurrentRound: 1,
		CreatedAt:    s.now().UnixMilli(),
	}

	// Save to storage (generates ID)
	if err := s.store.CreateSession(ctx, session); err != nil {
		slog.Error("CreateSession failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Session created", "session_id", session.ID)

	return connect.NewResponse(&pb.CreateSessionResponse{Session: toPBSession(session)}), nil
}

// GetSession returns a session together with its players.
func (s *LedgerService) GetSession(ctx context.Context, req *connect.Request[pb.GetSessionRequest]) (*connect.Response[pb.GetSessionResponse], error) {
	slog.Info("GetSession request received", "session_id", req.Msg.SessionId)

	session, err := s.store.GetSession(ctx, req.Msg.SessionId)
	if err != nil {
		slog.Error("GetSession failed", "session_id", req.Msg.SessionId, "error", err)
		return nil, toConnectError(err)
	}

	players := make([]*pb.Player, 0, len(session.PlayerIDs))
	for _, id := range session.PlayerIDs {
		player, err := s.store.GetPlayer(ctx, id)
		if err != nil {
			slog.Error("GetSession failed to load player", "session_id", session.ID, "player_id", id, "error", err)
			return nil, toConnectError(err)
		}
		players = append(players, toPBPlayer(player))
	}

	return connect.NewResponse(&pb.GetSessionResponse{
		Session: toPBSession(session),
		Players: players,
	}), nil
}

// ListSessions returns every session, newest first.
func (s *LedgerService) ListSessions(ctx context.Context, req *connect.Request[pb.ListSessionsRequest]) (*connect.Response[pb.ListSessionsResponse], error) {
	slog.Info("ListSessions request received")

	sessions, err := s.store.ListSessions(ctx)
	if err != nil {
		slog.Error("ListSessions failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*pb.Session, len(sessions))
	for i, session := range sessions {
		out[i] = toPBSession(session)
	}

	slog.Info("ListSessions successful", "count", len(sessions))

	return connect.NewResponse(&pb.ListSessionsResponse{Sessions: out}), nil
}

// DeleteSession removes a session and all of its transactions.
func (s *LedgerService) DeleteSession(ctx context.Context, req *connect.Request[pb.DeleteSessionRequest]) (*connect.Response[pb.DeleteSessionResponse], error) {
	slog.Info("DeleteSession request received", "session_id", req.Msg.SessionId)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteSession(ctx, req.Msg.SessionId); err != nil {
		slog.Error("DeleteSession failed", "session_id", req.Msg.SessionId, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Session deleted", "session_id", req.Msg.SessionId)

	return connect.NewResponse(&pb.DeleteSessionResponse{}), nil
}

// AddPlayer adds a player to an active session by name. A player already in
// the directory under the same name (ignoring case) is reused, otherwise a
// guest is created. Adding someone already seated is a no-op.
func (s *LedgerService) AddPlayer(ctx context.Context, req *connect.Request[pb.AddPlayerRequest]) (*connect.Response[pb.AddPlayerResponse], error) {
	slog.Info("AddPlayer request received", "session_id", req.Msg.SessionId, "name", req.Msg.Name)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, toConnectError(ErrNameRequired)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.activeSession(ctx, req.Msg.SessionId)
	if err != nil {
		slog.Warn("AddPlayer rejected", "session_id", req.Msg.SessionId, "error", err)
		return nil, toConnectError(err)
	}

	player, err := s.store.FindPlayerByName(ctx, name)
	if err != nil {
		slog.Error("AddPlayer failed to look up player", "name", name, "error", err)
		return nil, toConnectError(err)
	}
	if player == nil {
		player = &models.Player{Name: name, IsGuest: true, CreatedAt: s.now().UnixMilli()}
		if err := s.store.CreatePlayer(ctx, player); err != nil {
			slog.Error("AddPlayer failed to create player", "name", name, "error", err)
			return nil, toConnectError(err)
		}
		slog.Info("Guest player created", "player_id", player.ID, "name", player.Name)
	}

	if !session.HasPlayer(player.ID) {
		session.PlayerIDs = append(session.PlayerIDs, player.ID)
		if err := s.store.UpdateSession(ctx, session); err != nil {
			slog.Error("AddPlayer failed to update session", "session_id", session.ID, "error", err)
			return nil, toConnectError(err)
		}
		slog.Info("Player added to session", "session_id", session.ID, "player_id", player.ID)
	}

	return connect.NewResponse(&pb.AddPlayerResponse{
		Player:  toPBPlayer(player),
		Session: toPBSession(session),
	}), nil
}

// ListPlayers returns the global player directory.
func (s *LedgerService) ListPlayers(ctx context.Context, req *connect.Request[pb.ListPlayersRequest]) (*connect.Response[pb.ListPlayersResponse], error) {
	players, err := s.store.ListPlayers(ctx)
	if err != nil {
		slog.Error("ListPlayers failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*pb.Player, len(players))
	for i, p := range players {
		out[i] = toPBPlayer(p)
	}
	return connect.NewResponse(&pb.ListPlayersResponse{Players: out}), nil
}

// RecordTransaction records a buy-in or cash-out in the session's current round.
func (s *LedgerService) RecordTransaction(ctx context.Context, req *connect.Request[pb.RecordTransactionRequest]) (*connect.Response[pb.RecordTransactionResponse], error) {
	slog.Info("RecordTransaction request received",
		"session_id", req.Msg.SessionId,
		"player_id", req.Msg.PlayerId,
		"type", req.Msg.Type,
		"amount", req.Msg.Amount,
	)

	kind, err := models.ParseTransactionKind(strings.ToUpper(req.Msg.Type))
	if err != nil {
		return nil, toConnectError(fmt.Errorf("%w: %v", ErrInvalidKind, err))
	}
	if !(req.Msg.Amount > 0) {
		return nil, toConnectError(ErrInvalidAmount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.activeSession(ctx, req.Msg.SessionId)
	if err != nil {
		slog.Warn("RecordTransaction rejected", "session_id", req.Msg.SessionId, "error", err)
		return nil, toConnectError(err)
	}
	if !session.HasPlayer(req.Msg.PlayerId) {
		return nil, toConnectError(fmt.Errorf("%w: %s", ErrPlayerNotInSession, req.Msg.PlayerId))
	}

	tx := &models.Transaction{
		SessionID: session.ID,
		PlayerID:  req.Msg.PlayerId,
		Kind:      kind,
		Amount:    req.Msg.Amount,
		CreatedAt: s.now().UnixMilli(),
		Round:     session.EffectiveRound(),
		Note:      strings.TrimSpace(req.Msg.Note),
	}
	if err := s.store.CreateTransaction(ctx, tx); err != nil {
		slog.Error("RecordTransaction failed", "session_id", session.ID, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.TransactionRecorded(string(kind))

	slog.Info("Transaction recorded", "transaction_id", tx.ID, "session_id", session.ID, "round", tx.Round)

	return connect.NewResponse(&pb.RecordTransactionResponse{Transaction: toPBTransaction(tx)}), nil
}

// DeleteTransaction removes a transaction while its session is still active.
func (s *LedgerService) DeleteTransaction(ctx context.Context, req *connect.Request[pb.DeleteTransactionRequest]) (*connect.Response[pb.DeleteTransactionResponse], error) {
	slog.Info("DeleteTransaction request received", "transaction_id", req.Msg.TransactionId)

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.store.GetTransaction(ctx, req.Msg.TransactionId)
	if err != nil {
		slog.Error("DeleteTransaction failed", "transaction_id", req.Msg.TransactionId, "error", err)
		return nil, toConnectError(err)
	}
	if _, err := s.activeSession(ctx, tx.SessionID); err != nil {
		slog.Warn("DeleteTransaction rejected", "transaction_id", tx.ID, "error", err)
		return nil, toConnectError(err)
	}
	if err := s.store.DeleteTransaction(ctx, tx.ID); err != nil {
		slog.Error("DeleteTransaction failed", "transaction_id", tx.ID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&pb.DeleteTransactionResponse{}), nil
}

// NextRound advances an active session to its next round.
func (s *LedgerService) NextRound(ctx context.Context, req *connect.Request[pb.NextRoundRequest]) (*connect.Response[pb.NextRoundResponse], error) {
	slog.Info("NextRound request received", "session_id", req.Msg.SessionId)

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.activeSession(ctx, req.Msg.SessionId)
	if err != nil {
		slog.Warn("NextRound rejected", "session_id", req.Msg.SessionId, "error", err)
		return nil, toConnectError(err)
	}

	session.CurrentRound = session.EffectiveRound() + 1
	if err := s.store.UpdateSession(ctx, session); err != nil {
		slog.Error("NextRound failed", "session_id", session.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Round advanced", "session_id", session.ID, "round", session.CurrentRound)

	return connect.NewResponse(&pb.NextRoundResponse{Session: toPBSession(session)}), nil
}

// EndSession marks an active session COMPLETED and returns its settlement.
func (s *LedgerService) EndSession(ctx context.Context, req *connect.Request[pb.EndSessionRequest]) (*connect.Response[pb.EndSessionResponse], error) {
	slog.Info("EndSession request received", "session_id", req.Msg.SessionId)

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.activeSession(ctx, req.Msg.SessionId)
	if err != nil {
		slog.Warn("EndSession rejected", "session_id", req.Msg.SessionId, "error", err)
		return nil, toConnectError(err)
	}

	session.Status = models.SessionStatusCompleted
	session.EndedAt = s.now().UnixMilli()

	// Summarize first so a failure leaves the session open
	sum, err := s.summarize(ctx, session)
	if err != nil {
		slog.Error("EndSession failed to summarize", "session_id", session.ID, "error", err)
		return nil, toConnectError(err)
	}

	if err := s.store.UpdateSession(ctx, session); err != nil {
		slog.Error("EndSession failed", "session_id", session.ID, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.SessionEnded()

	event := events.NewSessionSettled(session.ID, session.Name, string(session.Type), session.EndedAt, sum.stats, sum.totals, sum.transfers)
	if err := s.publisher.PublishSessionSettled(ctx, event); err != nil {
		slog.Warn("Failed to publish session.settled", "session_id", session.ID, "error", err)
	}

	slog.Info("Session ended",
		"session_id", session.ID,
		"transfers", len(sum.transfers),
		"discrepancy", calculator.Round2(sum.totals.Discrepancy),
	)

	return connect.NewResponse(&pb.EndSessionResponse{Summary: sum.toPB()}), nil
}

// GetSummary computes the stats and settlement plan of a session.
func (s *LedgerService) GetSummary(ctx context.Context, req *connect.Request[pb.GetSummaryRequest]) (*connect.Response[pb.GetSummaryResponse], error) {
	slog.Info("GetSummary request received", "session_id", req.Msg.SessionId)

	session, err := s.store.GetSession(ctx, req.Msg.SessionId)
	if err != nil {
		slog.Error("GetSummary failed", "session_id", req.Msg.SessionId, "error", err)
		return nil, toConnectError(err)
	}

	sum, err := s.summarize(ctx, session)
	if err != nil {
		slog.Error("GetSummary failed", "session_id", session.ID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&pb.GetSummaryResponse{Summary: sum.toPB()}), nil
}

// ExportState returns the whole ledger as one backup document.
func (s *LedgerService) ExportState(ctx context.Context, req *connect.Request[pb.ExportStateRequest]) (*connect.Response[pb.ExportStateResponse], error) {
	slog.Info("ExportState request received")

	state, err := s.store.LoadState(ctx)
	if err != nil {
		slog.Error("ExportState failed", "error", err)
		return nil, toConnectError(err)
	}

	out := &pb.State{
		Games:        make([]*pb.Session, len(state.Sessions)),
		Players:      make([]*pb.Player, len(state.Players)),
		Transactions: make([]*pb.Transaction, len(state.Transactions)),
	}
	for i := range state.Sessions {
		out.Games[i] = toPBSession(&state.Sessions[i])
	}
	for i := range state.Players {
		out.Players[i] = toPBPlayer(&state.Players[i])
	}
	for i := range state.Transactions {
		out.Transactions[i] = toPBTransaction(&state.Transactions[i])
	}

	slog.Info("ExportState successful",
		"sessions", len(out.Games),
		"players", len(out.Players),
		"transactions", len(out.Transactions),
	)

	return connect.NewResponse(&pb.ExportStateResponse{State: out}), nil
}

// ImportState replaces the whole ledger with a backup document.
func (s *LedgerService) ImportState(ctx context.Context, req *connect.Request[pb.ImportStateRequest]) (*connect.Response[pb.ImportStateResponse], error) {
	slog.Info("ImportState request received")

	state, err := fromPBState(req.Msg.State)
	if err != nil {
		slog.Warn("ImportState rejected", "error", err)
		return nil, toConnectError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SaveState(ctx, state); err != nil {
		slog.Error("ImportState failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("ImportState successful",
		"sessions", len(state.Sessions),
		"players", len(state.Players),
		"transactions", len(state.Transactions),
	)

	return connect.NewResponse(&pb.ImportStateResponse{
		Sessions:     int32(len(state.Sessions)),
		Players:      int32(len(state.Players)),
		Transactions: int32(len(state.Transactions)),
	}), nil
}

// fromPBState validates a backup document before it replaces the ledger.
func fromPBState(in *pb.State) (*models.AppState, error) {
	if in == nil {
		return nil, ErrStateRequired
	}

	state := &models.AppState{
		Sessions:     make([]models.Session, 0, len(in.Games)),
		Players:      make([]models.Player, 0, len(in.Players)),
		Transactions: make([]models.Transaction, 0, len(in.Transactions)),
	}

	players := make(map[string]bool, len(in.Players))
	for _, p := range in.Players {
		if p == nil || p.Id == "" {
			return nil, fmt.Errorf("%w: player", ErrIDRequired)
		}
		if players[p.Id] {
			return nil, fmt.Errorf("%w: player %s", ErrDuplicateID, p.Id)
		}
		players[p.Id] = true
		state.Players = append(state.Players, fromPBPlayer(p))
	}

	sessions := make(map[string]bool, len(in.Games))
	for _, g := range in.Games {
		if g == nil || g.Id == "" {
			return nil, fmt.Errorf("%w: session", ErrIDRequired)
		}
		if sessions[g.Id] {
			return nil, fmt.Errorf("%w: session %s", ErrDuplicateID, g.Id)
		}
		for _, id := range g.PlayerIds {
			if !players[id] {
				return nil, fmt.Errorf("%w: player %s in session %s", ErrUnknownReference, id, g.Id)
			}
		}
		sessions[g.Id] = true
		state.Sessions = append(state.Sessions, fromPBSession(g))
	}

	txIDs := make(map[string]bool, len(in.Transactions))
	for _, t := range in.Transactions {
		if t == nil || t.Id == "" {
			return nil, fmt.Errorf("%w: transaction", ErrIDRequired)
		}
		if txIDs[t.Id] {
			return nil, fmt.Errorf("%w: transaction %s", ErrDuplicateID, t.Id)
		}
		txIDs[t.Id] = true
		tx := fromPBTransaction(t)
		if !tx.Kind.Valid() {
			return nil, fmt.Errorf("%w: transaction %s", ErrInvalidKind, t.Id)
		}
		if !(tx.Amount > 0) {
			return nil, fmt.Errorf("%w: transaction %s", ErrInvalidAmount, t.Id)
		}
		if !sessions[tx.SessionID] || !players[tx.PlayerID] {
			return nil, fmt.Errorf("%w: transaction %s", ErrUnknownReference, t.Id)
		}
		state.Transactions = append(state.Transactions, tx)
	}

	return state, nil
}
