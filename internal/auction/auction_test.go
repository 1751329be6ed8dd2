package auction

import (
	"testing"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/ledger"
	"auction-engine/internal/models"

	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func newArticle(price float64) *models.Article {
	return &models.Article{
		ArticleID:    "article1",
		OwnerID:      "creator",
		Title:        "Vintage camera",
		InitialPrice: price,
	}
}

func newFundedLedger(balances map[string]float64) *ledger.Ledger {
	l := ledger.NewLedger()
	for userID, balance := range balances {
		l.CreateAccount(userID, balance)
	}
	return l
}

// newActiveAuction returns a started auction with the given registered users.
func newActiveAuction(t *testing.T, price float64, users ...string) *Auction {
	t.Helper()
	a, err := New("auction1", "creator", newArticle(price), time.Hour, baseTime)
	require.NoError(t, err)
	for _, userID := range users {
		require.True(t, a.Register(userID))
	}
	require.True(t, a.Start(baseTime))
	return a
}

func TestNew(t *testing.T) {
	t.Parallel()

	art := newArticle(100)
	a, err := New("auction1", "creator", art, time.Hour, baseTime)
	require.NoError(t, err)
	require.Equal(t, models.StatusScheduled, a.Status)
	require.True(t, art.InAuction)

	// The article is now attached; a second auction must be rejected.
	_, err = New("auction2", "creator", art, time.Hour, baseTime)
	require.ErrorIs(t, err, auctionerrors.ErrArticleAlreadyReserved)
}

func TestAuction_Start(t *testing.T) {
	t.Parallel()

	t.Run("resets_future_start_to_now", func(t *testing.T) {
		a, err := New("auction1", "creator", newArticle(100), time.Hour, baseTime.Add(30*time.Minute))
		require.NoError(t, err)
		require.True(t, a.Start(baseTime))
		require.Equal(t, models.StatusActive, a.Status)
		require.Equal(t, baseTime, a.StartTime)
	})

	t.Run("keeps_elapsed_start", func(t *testing.T) {
		a, err := New("auction1", "creator", newArticle(100), time.Hour, baseTime)
		require.NoError(t, err)
		require.True(t, a.Start(baseTime.Add(5*time.Minute)))
		require.Equal(t, baseTime, a.StartTime)
	})

	t.Run("only_from_scheduled", func(t *testing.T) {
		a, err := New("auction1", "creator", newArticle(100), time.Hour, baseTime)
		require.NoError(t, err)
		require.True(t, a.Start(baseTime))
		require.False(t, a.Start(baseTime))
	})
}

func TestAuction_Register(t *testing.T) {
	t.Parallel()

	a, err := New("auction1", "creator", newArticle(100), time.Hour, baseTime)
	require.NoError(t, err)

	require.False(t, a.Register("creator"), "creator cannot register for own auction")
	require.True(t, a.Register("user1"))
	require.False(t, a.Register("user1"), "re-registration returns failure, not error")
	require.True(t, a.IsRegistered("user1"))

	// A fresh registration appears on the leaderboard at zero.
	top := a.TopBids(10)
	require.Equal(t, []LeaderboardEntry{{UserID: "user1", Amount: 0}}, top)
}

func TestAuction_RegisterAfterFinish(t *testing.T) {
	t.Parallel()

	a := newActiveAuction(t, 100)
	require.NoError(t, a.Finalize(newFundedLedger(nil)))
	require.False(t, a.Register("latecomer"))
}

func TestAuction_PlaceBid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		balances  map[string]float64
		setup     func(t *testing.T, a *Auction, l Ledger)
		userID    string
		amount    float64
		wantError error
	}{
		{
			name:     "first_bid_at_floor",
			balances: map[string]float64{"userA": 150},
			userID:   "userA",
			amount:   100,
		},
		{
			name:      "below_floor",
			balances:  map[string]float64{"userA": 150},
			userID:    "userA",
			amount:    99,
			wantError: auctionerrors.ErrBidTooLow,
		},
		{
			name:      "not_registered",
			balances:  map[string]float64{"ghost": 500},
			userID:    "ghost",
			amount:    120,
			wantError: auctionerrors.ErrNotRegistered,
		},
		{
			name:      "insufficient_funds",
			balances:  map[string]float64{"userA": 80},
			userID:    "userA",
			amount:    120,
			wantError: auctionerrors.ErrInsufficientFunds,
		},
		{
			name:     "equal_to_highest",
			balances: map[string]float64{"userA": 200, "userB": 200},
			setup: func(t *testing.T, a *Auction, l Ledger) {
				_, err := a.PlaceBid(l, "userA", 150, baseTime)
				require.NoError(t, err)
			},
			userID:    "userB",
			amount:    150,
			wantError: auctionerrors.ErrBidTooLow,
		},
		{
			name:     "lower_than_highest",
			balances: map[string]float64{"userA": 200, "userB": 200},
			setup: func(t *testing.T, a *Auction, l Ledger) {
				_, err := a.PlaceBid(l, "userA", 150, baseTime)
				require.NoError(t, err)
			},
			userID:    "userB",
			amount:    120,
			wantError: auctionerrors.ErrBidTooLow,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := newActiveAuction(t, 100, "userA", "userB")
			l := newFundedLedger(tc.balances)
			if tc.setup != nil {
				tc.setup(t, a, l)
			}

			bid, err := a.PlaceBid(l, tc.userID, tc.amount, baseTime)
			if tc.wantError != nil {
				require.ErrorIs(t, err, tc.wantError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.userID, bid.UserID)
			require.Equal(t, tc.amount, bid.Amount)
			require.NotEmpty(t, bid.BidID)
		})
	}
}

func TestAuction_PlaceBidOnScheduled(t *testing.T) {
	t.Parallel()

	a, err := New("auction1", "creator", newArticle(100), time.Hour, baseTime)
	require.NoError(t, err)
	require.True(t, a.Register("userA"))

	_, err = a.PlaceBid(newFundedLedger(map[string]float64{"userA": 500}), "userA", 150, baseTime)
	require.ErrorIs(t, err, auctionerrors.ErrInvalidStateTransition)
}

// Scenario: floor 100, A bids 150, B's 120 is rejected.
func TestAuction_LowerBidRejected(t *testing.T) {
	t.Parallel()

	a := newActiveAuction(t, 100, "userA", "userB")
	l := newFundedLedger(map[string]float64{"userA": 200, "userB": 200})

	_, err := a.PlaceBid(l, "userA", 150, baseTime)
	require.NoError(t, err)
	_, err = a.PlaceBid(l, "userB", 120, baseTime)
	require.ErrorIs(t, err, auctionerrors.ErrBidTooLow)

	require.Equal(t, []LeaderboardEntry{
		{UserID: "userA", Amount: 150},
		{UserID: "userB", Amount: 0},
	}, a.TopBids(10))
}

// Scenario: a higher bid atomically hands the leading reservation over.
func TestAuction_OutbidReleasesPreviousLeader(t *testing.T) {
	t.Parallel()

	a := newActiveAuction(t, 100, "userA", "userC")
	l := newFundedLedger(map[string]float64{"userA": 150, "userC": 250})

	_, err := a.PlaceBid(l, "userA", 150, baseTime)
	require.NoError(t, err)
	_, reservedA, err := l.Balance("userA")
	require.NoError(t, err)
	require.Equal(t, 150.0, reservedA)

	_, err = a.PlaceBid(l, "userC", 200, baseTime)
	require.NoError(t, err)

	_, reservedA, err = l.Balance("userA")
	require.NoError(t, err)
	require.Zero(t, reservedA, "superseded leader's funds are released")
	_, reservedC, err := l.Balance("userC")
	require.NoError(t, err)
	require.Equal(t, 200.0, reservedC)

	require.Equal(t, []LeaderboardEntry{
		{UserID: "userC", Amount: 200},
		{UserID: "userA", Amount: 150},
	}, a.TopBids(10))
}

// Accepted amounts are strictly increasing in acceptance order.
func TestAuction_MonotonicBids(t *testing.T) {
	t.Parallel()

	a := newActiveAuction(t, 10, "userA", "userB")
	l := newFundedLedger(map[string]float64{"userA": 10000, "userB": 10000})

	users := []string{"userA", "userB"}
	for i := 0; i < 20; i++ {
		_, err := a.PlaceBid(l, users[i%2], float64(10+i*5), baseTime.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
	}

	for i := 1; i < len(a.Bids); i++ {
		require.Greater(t, a.Bids[i].Amount, a.Bids[i-1].Amount)
	}

	// Exactly one leading reservation exists.
	_, reservedA, err := l.Balance("userA")
	require.NoError(t, err)
	_, reservedB, err := l.Balance("userB")
	require.NoError(t, err)
	leader := a.Bids[len(a.Bids)-1]
	require.Equal(t, leader.Amount, reservedA+reservedB)
}

func TestAuction_Finalize(t *testing.T) {
	t.Parallel()

	t.Run("no_bids", func(t *testing.T) {
		a := newActiveAuction(t, 100)
		require.NoError(t, a.Finalize(newFundedLedger(nil)))
		require.Equal(t, models.StatusFinished, a.Status)
		require.False(t, a.Article.InAuction)
		require.Nil(t, a.Winner())
	})

	t.Run("settles_winning_bid", func(t *testing.T) {
		a := newActiveAuction(t, 100, "userA")
		l := newFundedLedger(map[string]float64{"userA": 500, "creator": 0})
		_, err := a.PlaceBid(l, "userA", 200, baseTime)
		require.NoError(t, err)

		require.NoError(t, a.Finalize(l))
		require.Equal(t, models.StatusFinished, a.Status)

		winner := a.Winner()
		require.NotNil(t, winner)
		require.Equal(t, "userA", winner.UserID)
		require.Equal(t, 200.0, winner.Amount)

		spendable, reserved, err := l.Balance("userA")
		require.NoError(t, err)
		require.Equal(t, 300.0, spendable)
		require.Zero(t, reserved)

		creatorSpendable, _, err := l.Balance("creator")
		require.NoError(t, err)
		require.Equal(t, 200.0, creatorSpendable)
	})

	t.Run("double_finalize", func(t *testing.T) {
		a := newActiveAuction(t, 100)
		l := newFundedLedger(nil)
		require.NoError(t, a.Finalize(l))
		require.ErrorIs(t, a.Finalize(l), auctionerrors.ErrInvalidStateTransition)
	})

	t.Run("not_active", func(t *testing.T) {
		a, err := New("auction1", "creator", newArticle(100), time.Hour, baseTime)
		require.NoError(t, err)
		require.ErrorIs(t, a.Finalize(newFundedLedger(nil)), auctionerrors.ErrInvalidStateTransition)
	})

	t.Run("settlement_failure_reverts", func(t *testing.T) {
		a := newActiveAuction(t, 100, "userA")
		l := newFundedLedger(map[string]float64{"userA": 200, "creator": 0})
		_, err := a.PlaceBid(l, "userA", 200, baseTime)
		require.NoError(t, err)

		// The winner spends real funds elsewhere before settlement.
		require.NoError(t, l.Withdraw("userA", 150))

		err = a.Finalize(l)
		require.ErrorIs(t, err, auctionerrors.ErrInsufficientFunds)
		require.Equal(t, models.StatusActive, a.Status, "status reverts so finalize can be retried")
		require.True(t, a.Article.InAuction)
		require.Nil(t, a.Winner())

		creatorSpendable, _, err := l.Balance("creator")
		require.NoError(t, err)
		require.Zero(t, creatorSpendable)
	})
}

func TestAuction_RemainingTime(t *testing.T) {
	t.Parallel()

	a, err := New("auction1", "creator", newArticle(100), time.Hour, baseTime)
	require.NoError(t, err)
	require.Equal(t, time.Hour, a.RemainingTime(baseTime), "scheduled auction reports full duration")

	require.True(t, a.Start(baseTime))
	require.Equal(t, 40*time.Minute, a.RemainingTime(baseTime.Add(20*time.Minute)))
	require.Equal(t, time.Duration(0), a.RemainingTime(baseTime.Add(2*time.Hour)), "never negative")

	require.NoError(t, a.Finalize(newFundedLedger(nil)))
	require.Equal(t, time.Duration(0), a.RemainingTime(baseTime))
}

func TestAuction_RebuildLeaderboard(t *testing.T) {
	t.Parallel()

	a := newActiveAuction(t, 10, "userA", "userB", "userC")
	l := newFundedLedger(map[string]float64{"userA": 1000, "userB": 1000, "userC": 1000})

	for _, bid := range []struct {
		userID string
		amount float64
	}{
		{"userA", 20},
		{"userB", 30},
		{"userA", 40},
		{"userC", 50},
	} {
		_, err := a.PlaceBid(l, bid.userID, bid.amount, baseTime)
		require.NoError(t, err)
	}

	want := []LeaderboardEntry{
		{UserID: "userC", Amount: 50},
		{UserID: "userA", Amount: 40},
		{UserID: "userB", Amount: 30},
	}

	// Rebuilding from the bid log is idempotent and loses nothing.
	for i := 0; i < 3; i++ {
		a.RebuildLeaderboard()
		require.Equal(t, want, a.TopBids(10))
	}

	require.Equal(t, want[:2], a.TopBids(2), "top-N view truncates")
	require.Equal(t, "userC", a.CurrentLeader())
}

func TestAuction_WinnerBeforeFinish(t *testing.T) {
	t.Parallel()

	a := newActiveAuction(t, 100, "userA")
	l := newFundedLedger(map[string]float64{"userA": 500})
	_, err := a.PlaceBid(l, "userA", 150, baseTime)
	require.NoError(t, err)
	require.Nil(t, a.Winner(), "winner is only defined once finished")
}
