package auctionService

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"auction-engine/internal/auction"
	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/events"
	"auction-engine/internal/models"
	"auction-engine/internal/observability"
	"auction-engine/internal/repository"
	"auction-engine/utils"
)

// topBidsLimit caps the leaderboard view handed to clients.
const topBidsLimit = 10

// AuctionService arbitrates all mutating operations against an auction.
// Every register/bid/start/finalize on one auction runs under that auction's
// exclusive section, so operations on the same auction never interleave
// while different auctions proceed in parallel. Events are published only
// after the section is released.
type AuctionService struct {
	auctions repository.AuctionRepository
	articles repository.ArticleRepository
	ledger   auction.Ledger
	sink     events.Sink
	clock    auction.Clock
	metrics  *observability.Metrics

	// articleMu serializes every attach and detach of an article's
	// in-auction flag: creations against each other, and creations against
	// the flag flip (and possible revert) inside finalize.
	articleMu sync.Mutex

	mu    sync.Mutex
	locks map[string]*sync.Mutex // key: auctionID
}

// NewAuctionService creates a new AuctionService instance. metrics may be nil.
func NewAuctionService(
	auctions repository.AuctionRepository,
	articles repository.ArticleRepository,
	ledger auction.Ledger,
	sink events.Sink,
	clock auction.Clock,
	metrics *observability.Metrics,
) *AuctionService {
	if clock == nil {
		clock = auction.SystemClock{}
	}
	if sink == nil {
		sink = events.NewMemorySink()
	}
	return &AuctionService{
		auctions: auctions,
		articles: articles,
		ledger:   ledger,
		sink:     sink,
		clock:    clock,
		metrics:  metrics,
		locks:    make(map[string]*sync.Mutex),
	}
}

// lockFor returns the exclusive section for one auction, creating it lazily.
func (s *AuctionService) lockFor(auctionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[auctionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[auctionID] = lock
	}
	return lock
}

// AuctionView is a read-side snapshot of one auction.
type AuctionView struct {
	AuctionID        string               `json:"auction_id"`
	CreatorID        string               `json:"creator_id"`
	ArticleID        string               `json:"article_id"`
	Status           models.AuctionStatus `json:"status"`
	StartTime        time.Time            `json:"start_time"`
	DurationSeconds  int64                `json:"duration_seconds"`
	RemainingSeconds int64                `json:"remaining_seconds"`
}

// Create attaches the article to a new SCHEDULED auction and persists it.
// An article already held by a live auction is rejected with
// ErrArticleAlreadyReserved.
func (s *AuctionService) Create(creatorID, articleID string, duration time.Duration, startTime time.Time) (AuctionView, error) {
	article, err := s.articles.FindByID(articleID)
	if err != nil {
		return AuctionView{}, fmt.Errorf("service: create auction: %w", err)
	}

	s.articleMu.Lock()
	a, err := auction.New(utils.GenerateID(), creatorID, article, duration, startTime)
	if err != nil {
		s.articleMu.Unlock()
		return AuctionView{}, fmt.Errorf("service: create auction: %w", err)
	}
	if err := s.articles.Save(article); err != nil {
		article.InAuction = false
		s.articleMu.Unlock()
		return AuctionView{}, fmt.Errorf("service: save article %s: %w", articleID, err)
	}
	if err := s.auctions.Save(a); err != nil {
		// No auction holds the article now, so release it; otherwise
		// every retry fails with ErrArticleAlreadyReserved.
		article.InAuction = false
		if saveErr := s.articles.Save(article); saveErr != nil {
			utils.Error("service: failed to release article after create failure", map[string]any{
				"article_id": articleID,
				"error":      saveErr.Error(),
			})
		}
		s.articleMu.Unlock()
		return AuctionView{}, fmt.Errorf("service: save auction %s: %w", a.ID, err)
	}
	view := s.view(a, s.clock.Now())
	s.articleMu.Unlock()

	if s.metrics != nil {
		s.metrics.AuctionsCreated.Inc()
	}
	s.sink.Publish(events.TopicAuctions, events.Event{
		Type:      events.TypeAuctionCreated,
		AuctionID: view.AuctionID,
		Payload:   view,
		Timestamp: s.clock.Now(),
	})
	return view, nil
}

// Register adds a user to the auction. Registering twice returns false
// without an error; the creator registering for their own auction is
// rejected with ErrOwnAuction.
func (s *AuctionService) Register(auctionID, userID string) (bool, error) {
	lock := s.lockFor(auctionID)
	lock.Lock()
	a, err := s.auctions.FindByID(auctionID)
	if err != nil {
		lock.Unlock()
		return false, fmt.Errorf("service: register user %s: %w", userID, err)
	}
	if userID == a.CreatorID {
		lock.Unlock()
		return false, fmt.Errorf("service: register user %s on auction %s: %w", userID, auctionID, auctionerrors.ErrOwnAuction)
	}
	registered := a.Register(userID)
	var top []auction.LeaderboardEntry
	if registered {
		if err := s.auctions.Save(a); err != nil {
			lock.Unlock()
			return false, fmt.Errorf("service: save auction %s: %w", auctionID, err)
		}
		top = a.TopBids(topBidsLimit)
	}
	lock.Unlock()

	if registered {
		s.sink.Publish(events.AuctionTopic(auctionID), events.Event{
			Type:      events.TypeUserRegistered,
			AuctionID: auctionID,
			Payload:   top,
			Timestamp: s.clock.Now(),
		})
	}
	return registered, nil
}

// PlaceBid admits a bid through the auction's exclusive section and emits
// bid, top-bid and ranking events once the section is released.
func (s *AuctionService) PlaceBid(auctionID, userID string, amount float64) (models.Bid, error) {
	lock := s.lockFor(auctionID)
	lock.Lock()
	a, err := s.auctions.FindByID(auctionID)
	if err != nil {
		lock.Unlock()
		return models.Bid{}, fmt.Errorf("service: place bid by user %s: %w", userID, err)
	}
	bid, err := a.PlaceBid(s.ledger, userID, amount, s.clock.Now())
	if err != nil {
		lock.Unlock()
		s.countRejection(err)
		return models.Bid{}, fmt.Errorf("service: place bid on auction %s: %w", auctionID, err)
	}
	if err := s.auctions.Save(a); err != nil {
		lock.Unlock()
		return models.Bid{}, fmt.Errorf("service: save auction %s: %w", auctionID, err)
	}
	top := a.TopBids(topBidsLimit)
	lock.Unlock()

	if s.metrics != nil {
		s.metrics.BidsAccepted.Inc()
	}
	now := s.clock.Now()
	s.sink.Publish(events.AuctionTopic(auctionID), events.Event{
		Type:      events.TypeBidPlaced,
		AuctionID: auctionID,
		Payload:   bid,
		Timestamp: now,
	})
	s.sink.Publish(events.TopicAuctions, events.Event{
		Type:      events.TypeNewTopBid,
		AuctionID: auctionID,
		Payload:   map[string]any{"auction_id": auctionID, "amount": bid.Amount},
		Timestamp: now,
	})
	s.sink.Publish(events.AuctionTopic(auctionID), events.Event{
		Type:      events.TypeRankingUpdated,
		AuctionID: auctionID,
		Payload:   top,
		Timestamp: now,
	})
	return bid, nil
}

// Start moves the auction to ACTIVE by explicit creator action.
func (s *AuctionService) Start(auctionID string) (bool, error) {
	lock := s.lockFor(auctionID)
	lock.Lock()
	a, err := s.auctions.FindByID(auctionID)
	if err != nil {
		lock.Unlock()
		return false, fmt.Errorf("service: start auction: %w", err)
	}
	started := a.Start(s.clock.Now())
	if started {
		if err := s.auctions.Save(a); err != nil {
			lock.Unlock()
			return false, fmt.Errorf("service: save auction %s: %w", auctionID, err)
		}
	}
	lock.Unlock()

	if started {
		s.publishStarted(auctionID)
	}
	return started, nil
}

// Finalize moves the auction to FINISHED and settles the winning bid. A
// settlement failure leaves the auction ACTIVE and is returned, never
// swallowed.
func (s *AuctionService) Finalize(auctionID string) error {
	lock := s.lockFor(auctionID)
	lock.Lock()
	a, err := s.auctions.FindByID(auctionID)
	if err != nil {
		lock.Unlock()
		return fmt.Errorf("service: finalize auction: %w", err)
	}
	// The article flag flips (and reverts on settlement failure) under
	// articleMu so a racing Create never observes the article detached.
	s.articleMu.Lock()
	err = a.Finalize(s.ledger)
	s.articleMu.Unlock()
	if err != nil {
		lock.Unlock()
		if errors.Is(err, auctionerrors.ErrInsufficientFunds) && s.metrics != nil {
			s.metrics.SettlementFailures.Inc()
		}
		return fmt.Errorf("service: finalize auction %s: %w", auctionID, err)
	}
	if err := s.auctions.Save(a); err != nil {
		lock.Unlock()
		return fmt.Errorf("service: save auction %s: %w", auctionID, err)
	}
	winner := copyBid(a.Winner())
	lock.Unlock()

	s.publishFinalized(auctionID, winner)
	return nil
}

// TopBids rebuilds the leaderboard from the bid log and returns the top n
// entries.
func (s *AuctionService) TopBids(auctionID string, n int) ([]auction.LeaderboardEntry, error) {
	lock := s.lockFor(auctionID)
	lock.Lock()
	defer lock.Unlock()
	a, err := s.auctions.FindByID(auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: top bids: %w", err)
	}
	a.RebuildLeaderboard()
	return a.TopBids(n), nil
}

// RemainingTime reports how long the auction still runs.
func (s *AuctionService) RemainingTime(auctionID string) (time.Duration, error) {
	lock := s.lockFor(auctionID)
	lock.Lock()
	defer lock.Unlock()
	a, err := s.auctions.FindByID(auctionID)
	if err != nil {
		return 0, fmt.Errorf("service: remaining time: %w", err)
	}
	return a.RemainingTime(s.clock.Now()), nil
}

// Winner returns the winning bid of a finished auction, or nil when the
// auction has not finished or received no bids.
func (s *AuctionService) Winner(auctionID string) (*models.Bid, error) {
	lock := s.lockFor(auctionID)
	lock.Lock()
	defer lock.Unlock()
	a, err := s.auctions.FindByID(auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: winner: %w", err)
	}
	return copyBid(a.Winner()), nil
}

// RegisteredUsers returns the ids of users registered for the auction.
func (s *AuctionService) RegisteredUsers(auctionID string) ([]string, error) {
	lock := s.lockFor(auctionID)
	lock.Lock()
	defer lock.Unlock()
	a, err := s.auctions.FindByID(auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: registered users: %w", err)
	}
	return a.RegisteredUsers(), nil
}

// FindAvailable returns snapshots of every auction that has not finished.
func (s *AuctionService) FindAvailable() ([]AuctionView, error) {
	auctions, err := s.auctions.FindAvailable()
	if err != nil {
		return nil, fmt.Errorf("service: find available auctions: %w", err)
	}
	return s.viewAll(auctions), nil
}

// FindByCreator returns snapshots of the auctions a user created.
func (s *AuctionService) FindByCreator(creatorID string) ([]AuctionView, error) {
	auctions, err := s.auctions.FindByCreator(creatorID)
	if err != nil {
		return nil, fmt.Errorf("service: find auctions by creator %s: %w", creatorID, err)
	}
	return s.viewAll(auctions), nil
}

// FindByRegisteredUser returns snapshots of the auctions a user registered
// for.
func (s *AuctionService) FindByRegisteredUser(userID string) ([]AuctionView, error) {
	auctions, err := s.auctions.FindAll()
	if err != nil {
		return nil, fmt.Errorf("service: find auctions for user %s: %w", userID, err)
	}
	now := s.clock.Now()
	views := make([]AuctionView, 0, len(auctions))
	for _, a := range auctions {
		lock := s.lockFor(a.ID)
		lock.Lock()
		if a.IsRegistered(userID) {
			views = append(views, s.view(a, now))
		}
		lock.Unlock()
	}
	return views, nil
}

// startDue promotes a SCHEDULED auction whose start time has elapsed. Used
// by the sweeper; the schedule is re-checked under the exclusive section.
func (s *AuctionService) startDue(auctionID string, now time.Time) (bool, error) {
	lock := s.lockFor(auctionID)
	lock.Lock()
	a, err := s.auctions.FindByID(auctionID)
	if err != nil {
		lock.Unlock()
		return false, fmt.Errorf("service: start due auction: %w", err)
	}
	if a.Status != models.StatusScheduled || now.Before(a.StartTime) {
		lock.Unlock()
		return false, nil
	}
	a.Start(now)
	if err := s.auctions.Save(a); err != nil {
		lock.Unlock()
		return false, fmt.Errorf("service: save auction %s: %w", auctionID, err)
	}
	lock.Unlock()

	s.publishStarted(auctionID)
	return true, nil
}

// finalizeDue finalizes an ACTIVE auction whose deadline has elapsed. Used
// by the sweeper; the deadline is re-checked under the exclusive section.
func (s *AuctionService) finalizeDue(auctionID string, now time.Time) (bool, error) {
	lock := s.lockFor(auctionID)
	lock.Lock()
	a, err := s.auctions.FindByID(auctionID)
	if err != nil {
		lock.Unlock()
		return false, fmt.Errorf("service: finalize due auction: %w", err)
	}
	if a.Status != models.StatusActive || now.Before(a.Deadline()) {
		lock.Unlock()
		return false, nil
	}
	s.articleMu.Lock()
	err = a.Finalize(s.ledger)
	s.articleMu.Unlock()
	if err != nil {
		lock.Unlock()
		if errors.Is(err, auctionerrors.ErrInsufficientFunds) && s.metrics != nil {
			s.metrics.SettlementFailures.Inc()
		}
		return false, fmt.Errorf("service: finalize auction %s: %w", auctionID, err)
	}
	if err := s.auctions.Save(a); err != nil {
		lock.Unlock()
		return false, fmt.Errorf("service: save auction %s: %w", auctionID, err)
	}
	winner := copyBid(a.Winner())
	lock.Unlock()

	s.publishFinalized(auctionID, winner)
	return true, nil
}

// publishRemainingTime emits a remaining-time tick for an ACTIVE auction.
func (s *AuctionService) publishRemainingTime(auctionID string, now time.Time) {
	lock := s.lockFor(auctionID)
	lock.Lock()
	a, err := s.auctions.FindByID(auctionID)
	if err != nil || a.Status != models.StatusActive {
		lock.Unlock()
		return
	}
	remaining := a.RemainingTime(now)
	lock.Unlock()

	s.sink.Publish(events.AuctionTimeTopic(auctionID), events.Event{
		Type:      events.TypeRemainingTime,
		AuctionID: auctionID,
		Payload:   map[string]any{"remaining_seconds": int64(remaining.Seconds())},
		Timestamp: now,
	})
}

func (s *AuctionService) publishStarted(auctionID string) {
	if s.metrics != nil {
		s.metrics.AuctionsStarted.Inc()
	}
	now := s.clock.Now()
	event := events.Event{
		Type:      events.TypeAuctionStarted,
		AuctionID: auctionID,
		Timestamp: now,
	}
	s.sink.Publish(events.AuctionTopic(auctionID), event)
	s.sink.Publish(events.TopicAuctions, event)
}

func (s *AuctionService) publishFinalized(auctionID string, winner *models.Bid) {
	if s.metrics != nil {
		s.metrics.AuctionsFinalized.Inc()
	}
	now := s.clock.Now()
	event := events.Event{
		Type:      events.TypeAuctionFinalized,
		AuctionID: auctionID,
		Payload:   winner,
		Timestamp: now,
	}
	s.sink.Publish(events.AuctionTopic(auctionID), event)
	s.sink.Publish(events.TopicAuctions, event)
}

func (s *AuctionService) countRejection(err error) {
	if s.metrics == nil {
		return
	}
	reason := "error"
	switch {
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		reason = "bid_too_low"
	case errors.Is(err, auctionerrors.ErrInsufficientFunds):
		reason = "insufficient_funds"
	case errors.Is(err, auctionerrors.ErrNotRegistered):
		reason = "not_registered"
	case errors.Is(err, auctionerrors.ErrInvalidStateTransition):
		reason = "invalid_state"
	}
	s.metrics.BidsRejected.WithLabelValues(reason).Inc()
}

func (s *AuctionService) view(a *auction.Auction, now time.Time) AuctionView {
	return AuctionView{
		AuctionID:        a.ID,
		CreatorID:        a.CreatorID,
		ArticleID:        a.Article.ArticleID,
		Status:           a.Status,
		StartTime:        a.StartTime,
		DurationSeconds:  int64(a.Duration.Seconds()),
		RemainingSeconds: int64(a.RemainingTime(now).Seconds()),
	}
}

func (s *AuctionService) viewAll(auctions []*auction.Auction) []AuctionView {
	now := s.clock.Now()
	views := make([]AuctionView, 0, len(auctions))
	for _, a := range auctions {
		lock := s.lockFor(a.ID)
		lock.Lock()
		views = append(views, s.view(a, now))
		lock.Unlock()
	}
	return views
}

func copyBid(bid *models.Bid) *models.Bid {
	if bid == nil {
		return nil
	}
	clone := *bid
	return &clone
}
