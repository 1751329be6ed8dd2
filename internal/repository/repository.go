package repository

import (
	"fmt"
	"sync"

	"auction-engine/internal/auction"
	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/models"
)

// AuctionRepository defines auction storage for the engine. Implementations
// shared by multiple engine instances must provide an exclusivity guarantee
// equivalent to the in-process arbitrator; the in-memory store relies on the
// arbitrator alone.
type AuctionRepository interface {
	Save(a *auction.Auction) error
	FindByID(auctionID string) (*auction.Auction, error)
	FindByStatus(status models.AuctionStatus) ([]*auction.Auction, error)
	FindByCreator(creatorID string) ([]*auction.Auction, error)
	FindAll() ([]*auction.Auction, error)
	FindAvailable() ([]*auction.Auction, error)
}

// ArticleRepository defines article storage.
type ArticleRepository interface {
	Save(art *models.Article) error
	FindByID(articleID string) (*models.Article, error)
}

// MemoryAuctionRepo is a concurrency-safe in-memory implementation of
// AuctionRepository. Status scans filter on a snapshot taken at Save time
// rather than the live aggregate field: the aggregate's fields belong to the
// arbitrator's exclusive section and may not be read under the repo lock
// alone. A scan may therefore lag one un-saved transition; callers re-check
// under the auction's section.
type MemoryAuctionRepo struct {
	mu       sync.RWMutex
	auctions map[string]*auction.Auction     // key: auctionID
	statuses map[string]models.AuctionStatus // status as of the last Save
}

// NewMemoryAuctionRepo creates a new in-memory auction repository instance
func NewMemoryAuctionRepo() *MemoryAuctionRepo {
	return &MemoryAuctionRepo{
		auctions: make(map[string]*auction.Auction),
		statuses: make(map[string]models.AuctionStatus),
	}
}

// Save stores an auction. For the in-memory store the aggregate is held by
// reference, so saving an already-stored auction is idempotent. Callers hold
// the auction's exclusive section, making the status read here safe.
func (r *MemoryAuctionRepo) Save(a *auction.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auctions[a.ID] = a
	r.statuses[a.ID] = a.Status
	return nil
}

// FindByID returns the auction with the given id
func (r *MemoryAuctionRepo) FindByID(auctionID string) (*auction.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.auctions[auctionID]
	if !ok {
		return nil, fmt.Errorf("find auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return a, nil
}

// FindByStatus returns all auctions whose last saved status matches
func (r *MemoryAuctionRepo) FindByStatus(status models.AuctionStatus) ([]*auction.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*auction.Auction
	for id, a := range r.auctions {
		if r.statuses[id] == status {
			out = append(out, a)
		}
	}
	return out, nil
}

// FindByCreator returns all auctions created by the given user
func (r *MemoryAuctionRepo) FindByCreator(creatorID string) ([]*auction.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*auction.Auction
	for _, a := range r.auctions {
		if a.CreatorID == creatorID {
			out = append(out, a)
		}
	}
	return out, nil
}

// FindAll returns every stored auction
func (r *MemoryAuctionRepo) FindAll() ([]*auction.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*auction.Auction, 0, len(r.auctions))
	for _, a := range r.auctions {
		out = append(out, a)
	}
	return out, nil
}

// FindAvailable returns all auctions not finished as of their last Save
func (r *MemoryAuctionRepo) FindAvailable() ([]*auction.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*auction.Auction
	for id, a := range r.auctions {
		if r.statuses[id] != models.StatusFinished {
			out = append(out, a)
		}
	}
	return out, nil
}

// MemoryArticleRepo is a concurrency-safe in-memory implementation of
// ArticleRepository
type MemoryArticleRepo struct {
	mu       sync.RWMutex
	articles map[string]*models.Article
}

// NewMemoryArticleRepo creates a new in-memory article repository instance
func NewMemoryArticleRepo() *MemoryArticleRepo {
	return &MemoryArticleRepo{
		articles: make(map[string]*models.Article),
	}
}

// Save stores an article
func (r *MemoryArticleRepo) Save(art *models.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.articles[art.ArticleID] = art
	return nil
}

// FindByID returns the article with the given id
func (r *MemoryArticleRepo) FindByID(articleID string) (*models.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	art, ok := r.articles[articleID]
	if !ok {
		return nil, fmt.Errorf("find article %s: %w", articleID, auctionerrors.ErrArticleNotFound)
	}
	return art, nil
}
