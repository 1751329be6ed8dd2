package helpers

// Request/Response DTOs
type CreateAuctionRequest struct {
	CreatorID       string `json:"creator_id" binding:"required"`
	ArticleID       string `json:"article_id" binding:"required"`
	DurationSeconds int64  `json:"duration_seconds" binding:"required,gt=0"`
	StartTime       string `json:"start_time"` // RFC3339; empty means now
}

type RegisterRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type PlaceBidRequest struct {
	UserID string  `json:"user_id" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type BidResponse struct {
	BidID     string  `json:"bid_id"`
	AuctionID string  `json:"auction_id"`
	UserID    string  `json:"user_id"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"created_at"`
}

type RemainingTimeResponse struct {
	AuctionID        string `json:"auction_id"`
	RemainingSeconds int64  `json:"remaining_seconds"`
}
