package handler

import (
	"fmt"
	"net/http"
	"time"

	"auction-engine/internal/auction"
	"auction-engine/internal/auctionService"
	model "auction-engine/internal/models"
	"auction-engine/services/auction/helpers"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
)

type AuctionServiceInterface interface {
	Create(creatorID, articleID string, duration time.Duration, startTime time.Time) (auctionService.AuctionView, error)
	Register(auctionID, userID string) (bool, error)
	PlaceBid(auctionID, userID string, amount float64) (model.Bid, error)
	Start(auctionID string) (bool, error)
	Finalize(auctionID string) error
	TopBids(auctionID string, n int) ([]auction.LeaderboardEntry, error)
	RemainingTime(auctionID string) (time.Duration, error)
	Winner(auctionID string) (*model.Bid, error)
	RegisteredUsers(auctionID string) ([]string, error)
	FindAvailable() ([]auctionService.AuctionView, error)
	FindByCreator(creatorID string) ([]auctionService.AuctionView, error)
	FindByRegisteredUser(userID string) ([]auctionService.AuctionView, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	startTime := time.Now().UTC()
	if req.StartTime != "" {
		parsed, err := time.Parse(time.RFC3339, req.StartTime)
		if err != nil {
			helpers.HandleBindError(c, "CreateAuctionHandler", fmt.Errorf("invalid start_time: %w", err))
			return
		}
		startTime = parsed
	}

	view, err := h.service.Create(req.CreatorID, req.ArticleID, time.Duration(req.DurationSeconds)*time.Second, startTime)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateAuctionHandler: failed to create auction", map[string]any{
			"creator_id": req.CreatorID,
			"article_id": req.ArticleID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, view, "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": view.AuctionID,
		"creator_id": view.CreatorID,
		"article_id": view.ArticleID,
	})
}

// ListAvailableHandler handles GET /auctions
func (h *AuctionHandler) ListAvailableHandler(c *gin.Context) {
	views, err := h.service.FindAvailable()
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListAvailableHandler: error listing auctions", map[string]any{"error": err.Error()})
		return
	}
	if views == nil {
		views = []auctionService.AuctionView{}
	}
	utils.JSONResponse(c, http.StatusOK, views, "auctions retrieved successfully")
}

// RegisterUserHandler handles POST /auctions/:auction_id/registrations
func (h *AuctionHandler) RegisterUserHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	var req helpers.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterUserHandler", err)
		return
	}

	registered, err := h.service.Register(auctionID, req.UserID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("RegisterUserHandler: registration failed", map[string]any{
			"auction_id": auctionID,
			"user_id":    req.UserID,
			"error":      err.Error(),
		})
		return
	}

	if !registered {
		utils.JSONResponse(c, http.StatusOK, gin.H{"registered": false}, "user already registered")
		return
	}

	utils.JSONResponse(c, http.StatusCreated, gin.H{"registered": true}, "user registered successfully")
	helpers.LogSuccess("RegisterUserHandler", "user registered successfully", map[string]any{
		"auction_id": auctionID,
		"user_id":    req.UserID,
	})
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.service.PlaceBid(auctionID, req.UserID, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("PlaceBidHandler: bid rejected", map[string]any{
			"auction_id": auctionID,
			"user_id":    req.UserID,
			"amount":     req.Amount,
			"error":      err.Error(),
		})
		return
	}

	resp := helpers.BidResponse{
		BidID:     bid.BidID,
		AuctionID: bid.AuctionID,
		UserID:    bid.UserID,
		Amount:    bid.Amount,
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"bid_id":     bid.BidID,
		"auction_id": auctionID,
		"user_id":    req.UserID,
		"amount":     bid.Amount,
	})
}

// StartAuctionHandler handles POST /auctions/:auction_id/start
func (h *AuctionHandler) StartAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	started, err := h.service.Start(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("StartAuctionHandler: start failed", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}
	if !started {
		utils.JSONResponse(c, http.StatusConflict, gin.H{"started": false}, "auction cannot be started in its current state")
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"started": true}, "auction started successfully")
	helpers.LogSuccess("StartAuctionHandler", "auction started successfully", map[string]any{"auction_id": auctionID})
}

// FinalizeAuctionHandler handles POST /auctions/:auction_id/finalize
func (h *AuctionHandler) FinalizeAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	if err := h.service.Finalize(auctionID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("FinalizeAuctionHandler: finalize failed", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	winner, err := h.service.Winner(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"finalized": true, "winner": winner}, "auction finalized successfully")
	helpers.LogSuccess("FinalizeAuctionHandler", "auction finalized successfully", map[string]any{"auction_id": auctionID})
}

// TopBidsHandler handles GET /auctions/:auction_id/top-bids
func (h *AuctionHandler) TopBidsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	top, err := h.service.TopBids(auctionID, 10)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("TopBidsHandler: error retrieving top bids", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}
	if top == nil {
		top = []auction.LeaderboardEntry{}
	}

	utils.JSONResponse(c, http.StatusOK, top, "top bids retrieved successfully")
}

// RemainingTimeHandler handles GET /auctions/:auction_id/remaining-time
func (h *AuctionHandler) RemainingTimeHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	remaining, err := h.service.RemainingTime(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("RemainingTimeHandler: error retrieving remaining time", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	resp := helpers.RemainingTimeResponse{
		AuctionID:        auctionID,
		RemainingSeconds: int64(remaining.Seconds()),
	}
	utils.JSONResponse(c, http.StatusOK, resp, "remaining time retrieved successfully")
}

// WinnerHandler handles GET /auctions/:auction_id/winner
func (h *AuctionHandler) WinnerHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	winner, err := h.service.Winner(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("WinnerHandler: error retrieving winner", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	if winner == nil {
		utils.JSONResponse(c, http.StatusOK, nil, "no winner")
		return
	}

	resp := helpers.BidResponse{
		BidID:     winner.BidID,
		AuctionID: winner.AuctionID,
		UserID:    winner.UserID,
		Amount:    winner.Amount,
		CreatedAt: winner.CreatedAt.UTC().Format(time.RFC3339),
	}
	utils.JSONResponse(c, http.StatusOK, resp, "winner retrieved successfully")
}

// RegisteredUsersHandler handles GET /auctions/:auction_id/registrations
func (h *AuctionHandler) RegisteredUsersHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	users, err := h.service.RegisteredUsers(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("RegisteredUsersHandler: error retrieving registrations", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}
	if users == nil {
		users = []string{}
	}

	utils.JSONResponse(c, http.StatusOK, users, "registered users retrieved successfully")
}

// AuctionsByUserHandler handles GET /users/:user_id/auctions
func (h *AuctionHandler) AuctionsByUserHandler(c *gin.Context) {
	userID := c.Param("user_id")

	views, err := h.service.FindByRegisteredUser(userID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("AuctionsByUserHandler: error retrieving auctions", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}
	if views == nil {
		views = []auctionService.AuctionView{}
	}

	utils.JSONResponse(c, http.StatusOK, views, "auctions retrieved successfully")
}

// AuctionsByCreatorHandler handles GET /users/:user_id/created-auctions
func (h *AuctionHandler) AuctionsByCreatorHandler(c *gin.Context) {
	userID := c.Param("user_id")

	views, err := h.service.FindByCreator(userID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("AuctionsByCreatorHandler: error retrieving auctions", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}
	if views == nil {
		views = []auctionService.AuctionView{}
	}

	utils.JSONResponse(c, http.StatusOK, views, "auctions retrieved successfully")
}
