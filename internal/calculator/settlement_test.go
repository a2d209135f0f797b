package calculator

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/mmynk/potledger/internal/models"
)

func TestComputeSettlement(t *testing.T) {
	directory := Directory{"A": "Alice", "B": "Bob", "C": "Charlie", "D": "Diana"}

	tests := []struct {
		name  string
		stats []PlayerStats
		want  []Transfer
	}{
		{
			name: "two losers pay one winner",
			stats: []PlayerStats{
				{PlayerID: "C", NetScore: 200},
				{PlayerID: "A", NetScore: -100},
				{PlayerID: "B", NetScore: -100},
			},
			want: []Transfer{
				{FromPlayerID: "A", FromPlayerName: "Alice", ToPlayerID: "C", ToPlayerName: "Charlie", Amount: 100},
				{FromPlayerID: "B", FromPlayerName: "Bob", ToPlayerID: "C", ToPlayerName: "Charlie", Amount: 100},
			},
		},
		{
			name: "largest debt against largest credit",
			stats: []PlayerStats{
				{PlayerID: "A", NetScore: 70},
				{PlayerID: "B", NetScore: 30},
				{PlayerID: "D", NetScore: -40},
				{PlayerID: "C", NetScore: -60},
			},
			want: []Transfer{
				{FromPlayerID: "C", FromPlayerName: "Charlie", ToPlayerID: "A", ToPlayerName: "Alice", Amount: 60},
				{FromPlayerID: "D", FromPlayerName: "Diana", ToPlayerID: "A", ToPlayerName: "Alice", Amount: 10},
				{FromPlayerID: "D", FromPlayerName: "Diana", ToPlayerID: "B", ToPlayerName: "Bob", Amount: 30},
			},
		},
		{
			name: "unbalanced ledger leaves residual",
			stats: []PlayerStats{
				{PlayerID: "B", NetScore: 30},
				{PlayerID: "A", NetScore: -50},
			},
			want: []Transfer{
				{FromPlayerID: "A", FromPlayerName: "Alice", ToPlayerID: "B", ToPlayerName: "Bob", Amount: 30},
			},
		},
		{
			name: "unknown player resolves to placeholder",
			stats: []PlayerStats{
				{PlayerID: "A", NetScore: 5},
				{PlayerID: "X", NetScore: -5},
			},
			want: []Transfer{
				{FromPlayerID: "X", FromPlayerName: UnknownPlayerName, ToPlayerID: "A", ToPlayerName: "Alice", Amount: 5},
			},
		},
		{
			name: "amounts rounded to cents",
			stats: []PlayerStats{
				{PlayerID: "A", NetScore: 10.0 / 3},
				{PlayerID: "B", NetScore: -10.0 / 3},
			},
			want: []Transfer{
				{FromPlayerID: "B", FromPlayerName: "Bob", ToPlayerID: "A", ToPlayerName: "Alice", Amount: 3.33},
			},
		},
		{
			name: "all zero",
			stats: []PlayerStats{
				{PlayerID: "A"},
				{PlayerID: "B"},
			},
			want: nil,
		},
		{
			name: "float noise is not a transfer",
			stats: []PlayerStats{
				{PlayerID: "A", NetScore: 0.0000000001},
				{PlayerID: "B", NetScore: -0.0000000001},
			},
			want: nil,
		},
		{
			name:  "empty",
			stats: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSettlement(tt.stats, directory)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d transfers %+v, want %d %+v", len(got), got, len(tt.want), tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("transfer %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestComputeSettlement_ExampleSession(t *testing.T) {
	txs := []models.Transaction{
		tx("g", "A", models.KindBuyIn, 100),
		tx("g", "B", models.KindBuyIn, 100),
		tx("g", "C", models.KindBuyIn, 100),
		tx("g", "C", models.KindCashOut, 300),
	}
	stats := ComputeStats("g", txs, []string{"A", "B", "C"})
	transfers := ComputeSettlement(stats, Directory{"A": "Alice", "B": "Bob", "C": "Charlie"})

	if len(transfers) != 2 {
		t.Fatalf("expected 2 transfers, got %+v", transfers)
	}
	if transfers[0].FromPlayerID != "A" || transfers[0].ToPlayerID != "C" || transfers[0].Amount != 100 {
		t.Errorf("first transfer = %+v, want A->C 100", transfers[0])
	}
	if transfers[1].FromPlayerID != "B" || transfers[1].ToPlayerID != "C" || transfers[1].Amount != 100 {
		t.Errorf("second transfer = %+v, want B->C 100", transfers[1])
	}

	totals := Summarize(stats)
	if !totals.Balanced || totals.Discrepancy != 0 {
		t.Errorf("totals = %+v, want balanced with zero discrepancy", totals)
	}
}

func TestComputeSettlement_UnbalancedResidual(t *testing.T) {
	stats := []PlayerStats{
		{PlayerID: "B", TotalCashOut: 30, NetScore: 30},
		{PlayerID: "A", TotalBuyIn: 50, NetScore: -50},
	}
	transfers := ComputeSettlement(stats, nil)
	residuals := Residuals(stats, transfers)

	if math.Abs(residuals["A"]-(-20)) > 0.01 {
		t.Errorf("A residual = %v, want -20", residuals["A"])
	}
	if !IsZero(residuals["B"]) {
		t.Errorf("B residual = %v, want 0", residuals["B"])
	}

	totals := Summarize(stats)
	if totals.Balanced {
		t.Error("expected unbalanced totals")
	}
	// Unsettled residuals sum to minus the discrepancy.
	sum := residuals["A"] + residuals["B"]
	if math.Abs(sum+totals.Discrepancy) > 0.01 {
		t.Errorf("residual sum = %v, discrepancy = %v", sum, totals.Discrepancy)
	}
}

func TestComputeSettlement_DoesNotMutateStats(t *testing.T) {
	stats := []PlayerStats{
		{PlayerID: "A", TotalCashOut: 70, NetScore: 70},
		{PlayerID: "B", TotalBuyIn: 30, NetScore: -30},
		{PlayerID: "C", TotalBuyIn: 40, NetScore: -40},
	}
	before := append([]PlayerStats(nil), stats...)

	first := ComputeSettlement(stats, Directory{})
	second := ComputeSettlement(stats, Directory{})

	if !reflect.DeepEqual(stats, before) {
		t.Errorf("stats mutated: %+v, want %+v", stats, before)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ: %+v vs %+v", first, second)
	}
}

// randomSession builds a balanced session with whole-unit amounts.
func randomSession(rng *rand.Rand, players int) ([]models.Transaction, []string) {
	var ids []string
	var txs []models.Transaction
	pot := 0.0
	for p := 0; p < players; p++ {
		id := string(rune('A' + p))
		ids = append(ids, id)
		for n := rng.Intn(3) + 1; n > 0; n-- {
			amount := float64(rng.Intn(200) + 1)
			pot += amount
			txs = append(txs, tx("g", id, models.KindBuyIn, amount))
		}
	}
	// Hand the pot back out in whole units, the last player takes the rest.
	for p := 0; p < players && pot > 0; p++ {
		amount := pot
		if p < players-1 {
			amount = float64(rng.Intn(int(pot) + 1))
		}
		if amount > 0 {
			txs = append(txs, tx("g", ids[p], models.KindCashOut, amount))
			pot -= amount
		}
	}
	return txs, ids
}

func TestComputeSettlement_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		txs, ids := randomSession(rng, rng.Intn(8)+2)
		stats := ComputeStats("g", txs, ids)
		totals := Summarize(stats)
		if !totals.Balanced {
			t.Fatalf("run %d: generated session unbalanced: %+v", run, totals)
		}

		transfers := ComputeSettlement(stats, nil)

		// Settlement correctness
		for id, r := range Residuals(stats, transfers) {
			if !IsZero(r) {
				t.Errorf("run %d: player %s residual %v after settlement", run, id, r)
			}
		}

		// Conservation under settlement
		var paid, credit float64
		nonZero := 0
		for _, tr := range transfers {
			if tr.Amount <= 0 {
				t.Errorf("run %d: non-positive transfer %+v", run, tr)
			}
			paid += tr.Amount
		}
		for _, s := range stats {
			if s.NetScore > 0 {
				credit += s.NetScore
			}
			if !IsZero(s.NetScore) {
				nonZero++
			}
		}
		if math.Abs(paid-credit) > 0.01 {
			t.Errorf("run %d: transfers sum %v, credits sum %v", run, paid, credit)
		}

		if nonZero > 0 && len(transfers) > nonZero-1 {
			t.Errorf("run %d: %d transfers for %d non-zero players", run, len(transfers), nonZero)
		}
	}
}
