package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auction-engine/internal/auction"
	"auction-engine/internal/auctionService"
	"auction-engine/internal/events"
	"auction-engine/internal/ledger"
	model "auction-engine/internal/models"
	"auction-engine/internal/observability"
	"auction-engine/internal/repository"
	"auction-engine/internal/server"
	"auction-engine/utils"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	auctions := repository.NewMemoryAuctionRepo()
	articles := repository.NewMemoryArticleRepo()
	funds := ledger.NewLedger()

	prepopulate(articles, funds)

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	sink, natsConn := setupSink()
	if natsConn != nil {
		defer natsConn.Drain()
	}

	service := auctionService.NewAuctionService(auctions, articles, funds, sink, auction.SystemClock{}, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := auctionService.NewSweeper(service, sweepInterval())
	go sweeper.Run(ctx)

	router := server.SetupRouter(service, registry)

	port := getPort()
	utils.Info("starting auction server", map[string]any{"port": port})
	if err := router.Run(port); err != nil {
		utils.Fatal("failed to start server", map[string]any{"error": err.Error()})
	}
}

// setupSink connects the NATS event sink when NATS_URL is configured and
// falls back to an in-process sink otherwise.
func setupSink() (events.Sink, *nats.Conn) {
	url := os.Getenv("NATS_URL")
	if url == "" {
		utils.Info("NATS_URL not set, using in-process event sink", nil)
		return events.NewMemorySink(), nil
	}
	conn, err := nats.Connect(url)
	if err != nil {
		utils.Warn("failed to connect to NATS, using in-process event sink", map[string]any{
			"url":   url,
			"error": err.Error(),
		})
		return events.NewMemorySink(), nil
	}
	utils.Info("connected to NATS", map[string]any{"url": url})
	return events.NewNATSSink(conn), conn
}

// prepopulate seeds sample accounts and articles into the in-memory stores
func prepopulate(articles *repository.MemoryArticleRepo, funds *ledger.Ledger) {
	users := map[string]float64{
		"alice": 1000,
		"bob":   800,
		"carol": 1200,
	}
	for userID, balance := range users {
		funds.CreateAccount(userID, balance)
	}

	samples := []*model.Article{
		{ArticleID: "article1", OwnerID: "alice", Title: "Vintage camera", Description: "1960s rangefinder", InitialPrice: 100},
		{ArticleID: "article2", OwnerID: "bob", Title: "Mechanical watch", Description: "Hand-wound, serviced", InitialPrice: 200},
		{ArticleID: "article3", OwnerID: "carol", Title: "Oil painting", Description: "Signed landscape", InitialPrice: 150},
	}
	for _, art := range samples {
		if err := articles.Save(art); err != nil {
			fmt.Fprintf(os.Stderr, "failed to seed article %s: %v\n", art.ArticleID, err)
			os.Exit(1)
		}
	}
}

// sweepInterval returns the sweeper period from env or defaults to one second
func sweepInterval() time.Duration {
	if v := os.Getenv("SWEEP_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		utils.Warn("invalid SWEEP_INTERVAL, using default", map[string]any{"value": v})
	}
	return time.Second
}

// getPort returns the server port from env or defaults to ":8080"
func getPort() string {
	if p := os.Getenv("PORT"); p != "" {
		return fmt.Sprintf(":%s", p)
	}
	return ":8080"
}
