package auctionService

import (
	"testing"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/events"
	"auction-engine/internal/models"

	"github.com/stretchr/testify/require"
)

func (env *testEnv) auctionStatus(t *testing.T, auctionID string) models.AuctionStatus {
	t.Helper()
	a, err := env.auctions.FindByID(auctionID)
	require.NoError(t, err)
	return a.Status
}

func TestSweeper_PromotesDueScheduledAuctions(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedArticle(t, "article1", 100)
	view, err := env.service.Create("creator", "article1", time.Hour, env.clock.Now().Add(10*time.Minute))
	require.NoError(t, err)

	sweeper := NewSweeper(env.service, time.Second)

	sweeper.Sweep()
	require.Equal(t, models.StatusScheduled, env.auctionStatus(t, view.AuctionID), "not due yet")

	env.clock.Advance(10 * time.Minute)
	sweeper.Sweep()
	require.Equal(t, models.StatusActive, env.auctionStatus(t, view.AuctionID))
	require.Contains(t, eventTypes(env.sink.Events(events.AuctionTopic(view.AuctionID))), events.TypeAuctionStarted)
}

func TestSweeper_FinalizesElapsedAuctions(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedAccount("user1", 500)
	env.seedAccount("creator", 0)
	auctionID := env.createActiveAuction(t, "article1", 100, "user1")
	_, err := env.service.PlaceBid(auctionID, "user1", 200)
	require.NoError(t, err)

	sweeper := NewSweeper(env.service, time.Second)

	sweeper.Sweep()
	require.Equal(t, models.StatusActive, env.auctionStatus(t, auctionID), "deadline not reached")

	env.clock.Advance(time.Hour)
	sweeper.Sweep()
	require.Equal(t, models.StatusFinished, env.auctionStatus(t, auctionID))

	evts := env.sink.Events(events.AuctionTopic(auctionID))
	last := evts[len(evts)-1]
	require.Equal(t, events.TypeAuctionFinalized, last.Type)
	winner, ok := last.Payload.(*models.Bid)
	require.True(t, ok)
	require.Equal(t, "user1", winner.UserID)

	creatorSpendable, _, err := env.funds.Balance("creator")
	require.NoError(t, err)
	require.Equal(t, 200.0, creatorSpendable)
}

func TestSweeper_BroadcastsRemainingTime(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	auctionID := env.createActiveAuction(t, "article1", 100)

	sweeper := NewSweeper(env.service, time.Second)
	env.clock.Advance(15 * time.Minute)
	sweeper.Sweep()
	env.clock.Advance(15 * time.Minute)
	sweeper.Sweep()

	ticks := env.sink.Events(events.AuctionTimeTopic(auctionID))
	require.Len(t, ticks, 2)
	require.Equal(t, events.TypeRemainingTime, ticks[0].Type)
	first := ticks[0].Payload.(map[string]any)
	second := ticks[1].Payload.(map[string]any)
	require.Equal(t, int64((45 * time.Minute).Seconds()), first["remaining_seconds"])
	require.Equal(t, int64((30 * time.Minute).Seconds()), second["remaining_seconds"])
}

// A settlement failure on one auction must not block the rest of the sweep:
// the failed auction stays ACTIVE while the others are finalized.
func TestSweeper_SettlementFailureIsolated(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedAccount("user1", 500)
	env.seedAccount("user2", 500)
	env.seedAccount("creator", 0)
	brokeID := env.createActiveAuction(t, "article1", 100, "user1")
	healthyID := env.createActiveAuction(t, "article2", 100, "user2")

	_, err := env.service.PlaceBid(brokeID, "user1", 200)
	require.NoError(t, err)
	_, err = env.service.PlaceBid(healthyID, "user2", 300)
	require.NoError(t, err)

	// The leader drains their spendable balance out from under the
	// reservation, so settlement on brokeID cannot complete.
	require.NoError(t, env.funds.Withdraw("user1", 400))

	env.clock.Advance(2 * time.Hour)
	NewSweeper(env.service, time.Second).Sweep()

	require.Equal(t, models.StatusActive, env.auctionStatus(t, brokeID))
	require.Equal(t, models.StatusFinished, env.auctionStatus(t, healthyID))

	// The still-active auction keeps getting remaining-time ticks; the
	// finalized one does not.
	require.NotEmpty(t, env.sink.Events(events.AuctionTimeTopic(brokeID)))
	require.Empty(t, env.sink.Events(events.AuctionTimeTopic(healthyID)))

	creatorSpendable, _, err := env.funds.Balance("creator")
	require.NoError(t, err)
	require.Equal(t, 300.0, creatorSpendable, "only the healthy auction settled")

	// The failed auction still holds the winning reservation and can be
	// retried once the winner is funded again.
	_, reserved, err := env.funds.Balance("user1")
	require.NoError(t, err)
	require.Equal(t, 200.0, reserved)

	require.NoError(t, env.funds.Deposit("user1", 500))
	require.NoError(t, env.service.Finalize(brokeID))
	require.Equal(t, models.StatusFinished, env.auctionStatus(t, brokeID))
}

func TestSweeper_FinalizeDueRevertsCleanly(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedAccount("user1", 500)
	env.seedAccount("creator", 0)
	auctionID := env.createActiveAuction(t, "article1", 100, "user1")
	_, err := env.service.PlaceBid(auctionID, "user1", 200)
	require.NoError(t, err)
	require.NoError(t, env.funds.Withdraw("user1", 400))

	env.clock.Advance(2 * time.Hour)
	_, err = env.service.finalizeDue(auctionID, env.clock.Now())
	require.ErrorIs(t, err, auctionerrors.ErrInsufficientFunds)

	// The article stays attached while the auction is still ACTIVE.
	a, err := env.auctions.FindByID(auctionID)
	require.NoError(t, err)
	require.True(t, a.Article.InAuction)
}
