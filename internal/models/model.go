package models

import "time"

// AuctionStatus is the lifecycle state of an auction.
type AuctionStatus string

const (
	StatusScheduled AuctionStatus = "SCHEDULED"
	StatusActive    AuctionStatus = "ACTIVE"
	StatusFinished  AuctionStatus = "FINISHED"
)

// User represents a participant in the marketplace
type User struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Article is an owned item that can be put up for auction. At most one
// non-finished auction may reference it at a time; InAuction tracks that.
type Article struct {
	ArticleID    string  `json:"article_id"`
	OwnerID      string  `json:"owner_id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	InitialPrice float64 `json:"initial_price"`
	InAuction    bool    `json:"in_auction"`
}

// Bid represents a user's accepted bid on an auction. Bids are immutable
// once recorded and append-only within an auction.
type Bid struct {
	BidID     string    `json:"bid_id"`
	AuctionID string    `json:"auction_id"`
	UserID    string    `json:"user_id"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}
