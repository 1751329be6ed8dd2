package events

import (
	"sync"
	"time"
)

// Event types emitted by the engine.
const (
	TypeAuctionCreated   = "AUCTION_CREATED"
	TypeUserRegistered   = "USER_REGISTERED"
	TypeBidPlaced        = "BID_PLACED"
	TypeNewTopBid        = "NEW_TOP_BID"
	TypeRankingUpdated   = "RANKING_UPDATED"
	TypeAuctionStarted   = "AUCTION_STARTED"
	TypeAuctionFinalized = "AUCTION_FINALIZED"
	TypeRemainingTime    = "REMAINING_TIME"
)

// TopicAuctions carries global availability changes.
const TopicAuctions = "auctions"

// AuctionTopic is the per-auction topic for bid and lifecycle events.
func AuctionTopic(auctionID string) string {
	return "auction-" + auctionID
}

// AuctionTimeTopic carries the periodic remaining-time ticks for one auction.
func AuctionTimeTopic(auctionID string) string {
	return "auction-" + auctionID + "-time"
}

// Event is a notification produced by the engine.
type Event struct {
	Type      string    `json:"type"`
	AuctionID string    `json:"auction_id,omitempty"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Sink receives engine notifications. Publish is fire-and-forget: the engine
// never blocks on delivery and never consumes a result, so a slow or
// unavailable sink cannot stall bidding.
type Sink interface {
	Publish(topic string, event Event)
}

// MemorySink records published events per topic. Used in tests and as the
// default sink when no broker is configured.
type MemorySink struct {
	mu      sync.Mutex
	byTopic map[string][]Event
}

// NewMemorySink creates an empty in-process sink
func NewMemorySink() *MemorySink {
	return &MemorySink{byTopic: make(map[string][]Event)}
}

// Publish records the event under its topic
func (s *MemorySink) Publish(topic string, event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byTopic[topic] = append(s.byTopic[topic], event)
}

// Events returns a copy of everything published to the topic
func (s *MemorySink) Events(topic string) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.byTopic[topic]...)
}
