package service

import (
	"github.com/mmynk/potledger/internal/calculator"
	"github.com/mmynk/potledger/internal/models"
	pb "github.com/mmynk/potledger/pkg/ledgerv1"
)

func toPBSession(s *models.Session) *pb.Session {
	playerIDs := make([]string, len(s.PlayerIDs))
	copy(playerIDs, s.PlayerIDs)
	return &pb.Session{
		Id:           s.ID,
		Name:         s.Name,
		Type:         string(s.Type),
		Status:       string(s.Status),
		BlindRules:   s.BlindRules,
		PlayerIds:    playerIDs,
		CurrentRound: int32(s.EffectiveRound()),
		CreatedAt:    s.CreatedAt,
		EndedAt:      s.EndedAt,
	}
}

func fromPBSession(s *pb.Session) models.Session {
	session := models.Session{
		ID:           s.Id,
		Name:         s.Name,
		Type:         models.SessionType(s.Type),
		Status:       models.SessionStatus(s.Status),
		BlindRules:   s.BlindRules,
		PlayerIDs:    append([]string(nil), s.PlayerIds...),
		CurrentRound: int(s.CurrentRound),
		CreatedAt:    s.CreatedAt,
		EndedAt:      s.EndedAt,
	}
	if !session.Type.Valid() {
		session.Type = models.SessionTypePoker
	}
	if session.Status != models.SessionStatusCompleted {
		session.Status = models.SessionStatusActive
	}
	return session
}

func toPBPlayer(p *models.Player) *pb.Player {
	return &pb.Player{
		Id:        p.ID,
		Name:      p.Name,
		Avatar:    p.Avatar,
		IsGuest:   p.IsGuest,
		CreatedAt: p.CreatedAt,
	}
}

func fromPBPlayer(p *pb.Player) models.Player {
	return models.Player{
		ID:        p.Id,
		Name:      p.Name,
		Avatar:    p.Avatar,
		IsGuest:   p.IsGuest,
		CreatedAt: p.CreatedAt,
	}
}

func toPBTransaction(t *models.Transaction) *pb.Transaction {
	return &pb.Transaction{
		Id:        t.ID,
		SessionId: t.SessionID,
		PlayerId:  t.PlayerID,
		Type:      string(t.Kind),
		Amount:    t.Amount,
		Timestamp: t.CreatedAt,
		Round:     int32(t.EffectiveRound()),
		Note:      t.Note,
	}
}

func fromPBTransaction(t *pb.Transaction) models.Transaction {
	return models.Transaction{
		ID:        t.Id,
		SessionID: t.SessionId,
		PlayerID:  t.PlayerId,
		Kind:      models.TransactionKind(t.Type),
		Amount:    t.Amount,
		CreatedAt: t.Timestamp,
		Round:     int(t.Round),
		Note:      t.Note,
	}
}

// toPBStats rounds the aggregates for display.
func toPBStats(stats []calculator.PlayerStats, names calculator.Directory) []*pb.PlayerStats {
	out := make([]*pb.PlayerStats, len(stats))
	for i, s := range stats {
		out[i] = &pb.PlayerStats{
			PlayerId:     s.PlayerID,
			PlayerName:   names.Name(s.PlayerID),
			TotalBuyIn:   calculator.Round2(s.TotalBuyIn),
			TotalCashOut: calculator.Round2(s.TotalCashOut),
			NetScore:     calculator.Round2(s.NetScore),
		}
	}
	return out
}

func toPBTransfers(transfers []calculator.Transfer) []*pb.Transfer {
	out := make([]*pb.Transfer, len(transfers))
	for i, t := range transfers {
		out[i] = &pb.Transfer{
			FromPlayerId:   t.FromPlayerID,
			FromPlayerName: t.FromPlayerName,
			ToPlayerId:     t.ToPlayerID,
			ToPlayerName:   t.ToPlayerName,
			Amount:         t.Amount,
		}
	}
	return out
}

func toPBRounds(rounds []calculator.RoundHistory) []*pb.RoundHistory {
	out := make([]*pb.RoundHistory, len(rounds))
	for i, r := range rounds {
		txs := make([]*pb.Transaction, len(r.Transactions))
		for j := range r.Transactions {
			txs[j] = toPBTransaction(&r.Transactions[j])
		}
		out[i] = &pb.RoundHistory{Round: int32(r.Round), Transactions: txs}
	}
	return out
}
