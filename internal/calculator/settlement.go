package calculator

import "sort"

// UnknownPlayerName is shown for player IDs missing from the directory.
const UnknownPlayerName = "Unknown"

// Directory resolves player IDs to display names.
type Directory map[string]string

// Name returns the display name for id, or UnknownPlayerName.
func (d Directory) Name(id string) string {
	if name, ok := d[id]; ok {
		return name
	}
	return UnknownPlayerName
}

// Transfer is one payment in a settlement plan.
type Transfer struct {
	FromPlayerID   string // Debtor paying
	FromPlayerName string
	ToPlayerID     string // Creditor being paid
	ToPlayerName   string
	Amount         float64 // Rounded to 2 decimal places
}

// balance is a working copy of one player's remaining net score.
type balance struct {
	playerID string
	net      float64
}

// ComputeSettlement builds the transfers that zero out every net score.
//
// Algorithm (greedy, largest debt against largest credit):
//   - debtors (net < 0) sorted ascending, creditors (net > 0) sorted descending
//   - settle min(credit, |debt|) between the two cursors
//   - advance a cursor once its remaining balance is within Tolerance of zero
//   - stop when either side runs out
//
// The plan is not guaranteed to have the fewest possible transfers. When the
// ledger is unbalanced the residual stays on whichever side is left over; it
// is not turned into a transfer. stats is never modified.
func ComputeSettlement(stats []PlayerStats, directory Directory) []Transfer {
	var debtors, creditors []balance
	for _, s := range stats {
		if IsZero(s.NetScore) {
			continue
		}
		if s.NetScore < 0 {
			debtors = append(debtors, balance{playerID: s.PlayerID, net: s.NetScore})
		} else {
			creditors = append(creditors, balance{playerID: s.PlayerID, net: s.NetScore})
		}
	}

	// Most negative first
	sort.SliceStable(debtors, func(a, b int) bool { return debtors[a].net < debtors[b].net })
	// Most positive first
	sort.SliceStable(creditors, func(a, b int) bool { return creditors[a].net > creditors[b].net })

	var transfers []Transfer
	i, j := 0, 0 // creditor, debtor
	for i < len(creditors) && j < len(debtors) {
		creditor := &creditors[i]
		debtor := &debtors[j]

		amount := creditor.net
		if -debtor.net < amount {
			amount = -debtor.net
		}

		if rounded := Round2(amount); rounded > 0 {
			transfers = append(transfers, Transfer{
				FromPlayerID:   debtor.playerID,
				FromPlayerName: directory.Name(debtor.playerID),
				ToPlayerID:     creditor.playerID,
				ToPlayerName:   directory.Name(creditor.playerID),
				Amount:         rounded,
			})
		}

		creditor.net -= amount
		debtor.net += amount

		if IsZero(creditor.net) {
			i++
		}
		if IsZero(debtor.net) {
			j++
		}
	}

	return transfers
}

// Residuals applies transfers to the net scores and returns what is left,
// keyed by player ID. For a balanced ledger every residual is within
// Tolerance of zero; otherwise the leftovers add up to minus the discrepancy.
func Residuals(stats []PlayerStats, transfers []Transfer) map[string]float64 {
	remaining := make(map[string]float64, len(stats))
	for _, s := range stats {
		remaining[s.PlayerID] = s.NetScore
	}
	for _, t := range transfers {
		remaining[t.FromPlayerID] += t.Amount
		remaining[t.ToPlayerID] -= t.Amount
	}
	return remaining
}
