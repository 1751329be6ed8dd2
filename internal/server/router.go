package server

import (
	"net/http"

	handler "auction-engine/services/auction/handler"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(service handler.AuctionServiceInterface, gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(service)

	auctions := router.Group("/auctions")
	{
		auctions.POST("", auctionHandler.CreateAuctionHandler)
		auctions.GET("", auctionHandler.ListAvailableHandler)
		auctions.POST("/:auction_id/registrations", auctionHandler.RegisterUserHandler)
		auctions.GET("/:auction_id/registrations", auctionHandler.RegisteredUsersHandler)
		auctions.POST("/:auction_id/bids", auctionHandler.PlaceBidHandler)
		auctions.POST("/:auction_id/start", auctionHandler.StartAuctionHandler)
		auctions.POST("/:auction_id/finalize", auctionHandler.FinalizeAuctionHandler)
		auctions.GET("/:auction_id/top-bids", auctionHandler.TopBidsHandler)
		auctions.GET("/:auction_id/remaining-time", auctionHandler.RemainingTimeHandler)
		auctions.GET("/:auction_id/winner", auctionHandler.WinnerHandler)
	}

	users := router.Group("/users")
	{
		users.GET("/:user_id/auctions", auctionHandler.AuctionsByUserHandler)
		users.GET("/:user_id/created-auctions", auctionHandler.AuctionsByCreatorHandler)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	return router
}
