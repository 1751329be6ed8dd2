package auctionService

import (
	"context"
	"time"

	"auction-engine/internal/models"
	"auction-engine/utils"
)

// Sweeper is the periodic lifecycle process: it promotes SCHEDULED auctions
// whose start has elapsed, finalizes ACTIVE auctions past their deadline and
// broadcasts remaining-time ticks. Each auction's transition attempt is
// isolated: one failure is logged and the sweep moves on.
type Sweeper struct {
	service  *AuctionService
	interval time.Duration
}

// NewSweeper creates a sweeper driving the given service.
func NewSweeper(service *AuctionService, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Second
	}
	return &Sweeper{service: service, interval: interval}
}

// Run executes one sweep per interval until the context is cancelled. An
// overrunning iteration is not cancelled; the loop simply continues on the
// next tick.
func (sw *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sw.Sweep()
		}
	}
}

// Sweep performs a single lifecycle pass.
func (sw *Sweeper) Sweep() {
	start := time.Now()
	now := sw.service.clock.Now()

	scheduled, err := sw.service.auctions.FindByStatus(models.StatusScheduled)
	if err != nil {
		utils.Error("sweeper: failed to list scheduled auctions", map[string]any{"error": err.Error()})
	}
	for _, a := range scheduled {
		if _, err := sw.service.startDue(a.ID, now); err != nil {
			utils.Error("sweeper: failed to start auction", map[string]any{
				"auction_id": a.ID,
				"error":      err.Error(),
			})
		}
	}

	active, err := sw.service.auctions.FindByStatus(models.StatusActive)
	if err != nil {
		utils.Error("sweeper: failed to list active auctions", map[string]any{"error": err.Error()})
	}
	for _, a := range active {
		if _, err := sw.service.finalizeDue(a.ID, now); err != nil {
			// Settlement failures in particular need operator visibility;
			// the auction stays ACTIVE and the sweep continues.
			utils.Error("sweeper: failed to finalize auction", map[string]any{
				"auction_id": a.ID,
				"error":      err.Error(),
			})
		}
		// Still emits for an auction whose finalize failed; it remains
		// ACTIVE. A finalized auction publishes nothing here.
		sw.service.publishRemainingTime(a.ID, now)
	}

	if sw.service.metrics != nil {
		sw.service.metrics.SweepDuration.Observe(time.Since(start).Seconds())
	}
}
