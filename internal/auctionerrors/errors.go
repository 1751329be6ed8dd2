package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrArticleNotFound = errors.New("article not found")
	ErrAccountNotFound = errors.New("ledger account not found")
)

// business logic errors
var (
	ErrInvalidStateTransition = errors.New("operation not allowed in current auction state")
	ErrNotRegistered          = errors.New("user is not registered for auction")
	ErrBidTooLow              = errors.New("bid amount too low")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrArticleAlreadyReserved = errors.New("article is already attached to a live auction")
	ErrOwnAuction             = errors.New("creator cannot register for own auction")
)
