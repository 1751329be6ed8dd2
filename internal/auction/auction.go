package auction

import (
	"fmt"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/models"

	"github.com/google/uuid"
)

// Ledger is the escrow collaborator the aggregate books funds against.
// Implemented by the ledger package.
type Ledger interface {
	Reserve(userID string, amount float64) error
	Release(userID string, amount float64) error
	MoveReservation(fromUser string, fromAmount float64, toUser string, toAmount float64) error
	Settle(winnerID, creatorID string, amount float64) error
}

// Auction is the aggregate owning one auction's lifecycle, registrations and
// bid history. It holds no locks of its own; all mutating calls must be
// serialized by the caller (the arbitrator service). The bid log is the
// source of truth; the ranking is a derived view rebuilt on demand.
type Auction struct {
	ID        string
	CreatorID string
	Article   *models.Article
	Duration  time.Duration
	StartTime time.Time
	Status    models.AuctionStatus

	Bids []models.Bid

	registered map[string]struct{}
	seenOrder  []string
	ranking    map[string]float64
}

// New constructs a SCHEDULED auction and attaches the article, rejecting an
// article that is already in a live auction.
func New(id, creatorID string, article *models.Article, duration time.Duration, startTime time.Time) (*Auction, error) {
	if article.InAuction {
		return nil, fmt.Errorf("article %s: %w", article.ArticleID, auctionerrors.ErrArticleAlreadyReserved)
	}
	article.InAuction = true
	return &Auction{
		ID:         id,
		CreatorID:  creatorID,
		Article:    article,
		Duration:   duration,
		StartTime:  startTime,
		Status:     models.StatusScheduled,
		registered: make(map[string]struct{}),
		ranking:    make(map[string]float64),
	}, nil
}

// Start moves SCHEDULED to ACTIVE. When the scheduled start lies in the
// future the effective start is reset to now, so the auction never runs
// with a start time clients perceive as pending. Returns false for any
// other status.
func (a *Auction) Start(now time.Time) bool {
	if a.Status != models.StatusScheduled {
		return false
	}
	if now.Before(a.StartTime) {
		a.StartTime = now
	}
	a.Status = models.StatusActive
	return true
}

// Register adds a user to the auction. The creator cannot register for
// their own auction and a FINISHED auction accepts no one. Re-registering
// returns false rather than an error. A successful registration seeds the
// user's ranking entry at zero; no funds are reserved yet.
func (a *Auction) Register(userID string) bool {
	if userID == a.CreatorID {
		return false
	}
	if a.Status == models.StatusFinished {
		return false
	}
	if _, ok := a.registered[userID]; ok {
		return false
	}
	a.registered[userID] = struct{}{}
	a.seenOrder = append(a.seenOrder, userID)
	a.ranking[userID] = 0
	return true
}

// IsRegistered reports whether the user registered for this auction.
func (a *Auction) IsRegistered(userID string) bool {
	_, ok := a.registered[userID]
	return ok
}

// RegisteredUsers returns the registered user ids in registration order.
func (a *Auction) RegisteredUsers() []string {
	return append([]string(nil), a.seenOrder...)
}

// PlaceBid admits a bid and books its escrow. Admission requires an ACTIVE
// auction, a registered bidder, an amount at or above the article's initial
// price and strictly above the current highest bid, and sufficient
// uncommitted funds. On acceptance the previous leader's reservation (if
// any) is released and the new amount reserved in one atomic ledger step,
// then the bid is appended and the ranking updated. Rejected bids have no
// side effects.
func (a *Auction) PlaceBid(ledger Ledger, userID string, amount float64, now time.Time) (models.Bid, error) {
	if a.Status != models.StatusActive {
		return models.Bid{}, fmt.Errorf("auction %s is %s: %w", a.ID, a.Status, auctionerrors.ErrInvalidStateTransition)
	}
	if _, ok := a.registered[userID]; !ok {
		return models.Bid{}, fmt.Errorf("user %s on auction %s: %w", userID, a.ID, auctionerrors.ErrNotRegistered)
	}
	if amount < a.Article.InitialPrice {
		return models.Bid{}, fmt.Errorf("bid %.2f below initial price %.2f: %w", amount, a.Article.InitialPrice, auctionerrors.ErrBidTooLow)
	}

	// Accepted amounts are strictly increasing, so the current maximum is
	// always the last recorded bid.
	if leader := a.highestBid(); leader != nil {
		if amount <= leader.Amount {
			return models.Bid{}, fmt.Errorf("bid %.2f does not exceed current highest %.2f: %w", amount, leader.Amount, auctionerrors.ErrBidTooLow)
		}
		if err := ledger.MoveReservation(leader.UserID, leader.Amount, userID, amount); err != nil {
			return models.Bid{}, err
		}
	} else {
		if err := ledger.Reserve(userID, amount); err != nil {
			return models.Bid{}, err
		}
	}

	bid := models.Bid{
		BidID:     uuid.NewString(),
		AuctionID: a.ID,
		UserID:    userID,
		Amount:    amount,
		CreatedAt: now,
	}
	a.Bids = append(a.Bids, bid)
	if amount > a.ranking[userID] {
		a.ranking[userID] = amount
	}
	return bid, nil
}

// Finalize moves ACTIVE to FINISHED exactly once, clears the article's
// in-auction flag and settles the winning bid from the winner's spendable
// balance to the creator's. When settlement fails the status and article
// flag revert so the failure can be retried or investigated; the error is
// returned, never swallowed. An auction without bids finishes with no
// settlement.
func (a *Auction) Finalize(ledger Ledger) error {
	if a.Status != models.StatusActive {
		return fmt.Errorf("auction %s is %s: %w", a.ID, a.Status, auctionerrors.ErrInvalidStateTransition)
	}

	a.Status = models.StatusFinished
	a.Article.InAuction = false

	winning := a.highestBid()
	if winning == nil {
		return nil
	}

	if err := ledger.Settle(winning.UserID, a.CreatorID, winning.Amount); err != nil {
		a.Status = models.StatusActive
		a.Article.InAuction = true
		return fmt.Errorf("settle auction %s: %w", a.ID, err)
	}
	return nil
}

// Winner returns the winning bid of a FINISHED auction, or nil when the
// auction is not finished or received no bids.
func (a *Auction) Winner() *models.Bid {
	if a.Status != models.StatusFinished {
		return nil
	}
	return a.highestBid()
}

// RemainingTime reports how long the auction still runs at the given
// instant: zero once FINISHED, the full duration while SCHEDULED, and the
// time left until the deadline while ACTIVE.
func (a *Auction) RemainingTime(now time.Time) time.Duration {
	switch a.Status {
	case models.StatusFinished:
		return 0
	case models.StatusScheduled:
		return a.Duration
	}
	end := a.StartTime.Add(a.Duration)
	if now.After(end) {
		return 0
	}
	return end.Sub(now)
}

// Deadline returns the instant the auction expires.
func (a *Auction) Deadline() time.Time {
	return a.StartTime.Add(a.Duration)
}

func (a *Auction) highestBid() *models.Bid {
	if len(a.Bids) == 0 {
		return nil
	}
	return &a.Bids[len(a.Bids)-1]
}
