package auction

import "sort"

// LeaderboardEntry is one row of the per-bidder best-bid ranking.
type LeaderboardEntry struct {
	UserID string  `json:"user_id"`
	Amount float64 `json:"amount"`
}

// RebuildLeaderboard discards the derived ranking and recomputes it from the
// bid log: every registered user seeded at zero, then each bidder's maximum
// accepted amount. Idempotent; the bid log is never touched.
func (a *Auction) RebuildLeaderboard() {
	a.ranking = make(map[string]float64, len(a.seenOrder))
	for _, userID := range a.seenOrder {
		a.ranking[userID] = 0
	}
	for _, bid := range a.Bids {
		if bid.Amount > a.ranking[bid.UserID] {
			a.ranking[bid.UserID] = bid.Amount
		}
	}
}

// TopBids returns up to n leaderboard entries sorted by amount descending,
// ties broken by registration order.
func (a *Auction) TopBids(n int) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(a.seenOrder))
	for _, userID := range a.seenOrder {
		entries = append(entries, LeaderboardEntry{UserID: userID, Amount: a.ranking[userID]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Amount > entries[j].Amount
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// CurrentLeader returns the id of the user topping the leaderboard with a
// non-zero bid, or empty when nobody has bid.
func (a *Auction) CurrentLeader() string {
	if top := a.highestBid(); top != nil {
		return top.UserID
	}
	return ""
}
