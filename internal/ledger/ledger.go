package ledger

import (
	"fmt"
	"sync"

	"auction-engine/internal/auctionerrors"
)

// account tracks one user's funds. Spendable is real money that only moves
// at settlement; Reserved is the portion committed to open leading bids.
// Each account carries its own lock so two auctions adjusting the same user
// serialize against each other without contending on unrelated users.
type account struct {
	mu        sync.Mutex
	spendable float64
	reserved  float64
}

// Ledger maintains in-memory user balances with atomic reserve, release and
// settle operations. Reserved never exceeds spendable at the moment a
// reservation is made; spendable may later drop below reserved when a
// settlement elsewhere drains it.
type Ledger struct {
	mu       sync.RWMutex
	accounts map[string]*account
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{
		accounts: make(map[string]*account),
	}
}

// CreateAccount registers a user with an opening spendable balance.
// Creating an existing account is a no-op.
func (l *Ledger) CreateAccount(userID string, spendable float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.accounts[userID]; !ok {
		l.accounts[userID] = &account{spendable: spendable}
	}
}

// Deposit adds spendable funds to an existing account.
func (l *Ledger) Deposit(userID string, amount float64) error {
	acct, err := l.lookup(userID)
	if err != nil {
		return err
	}
	acct.mu.Lock()
	defer acct.mu.Unlock()
	acct.spendable += amount
	return nil
}

// Withdraw removes spendable funds, e.g. when the user spends money outside
// the marketplace. Withdrawals draw on spendable without regard to open
// reservations, so a leading bid's reservation can become unbacked and fail
// later at settlement.
func (l *Ledger) Withdraw(userID string, amount float64) error {
	acct, err := l.lookup(userID)
	if err != nil {
		return err
	}
	acct.mu.Lock()
	defer acct.mu.Unlock()
	if amount > acct.spendable {
		return fmt.Errorf("withdraw %.2f for user %s: %w", amount, userID, auctionerrors.ErrInsufficientFunds)
	}
	acct.spendable -= amount
	return nil
}

// Balance returns the user's spendable and reserved amounts.
func (l *Ledger) Balance(userID string) (spendable, reserved float64, err error) {
	acct, err := l.lookup(userID)
	if err != nil {
		return 0, 0, err
	}
	acct.mu.Lock()
	defer acct.mu.Unlock()
	return acct.spendable, acct.reserved, nil
}

// Available returns the uncommitted portion of the user's balance.
func (l *Ledger) Available(userID string) (float64, error) {
	spendable, reserved, err := l.Balance(userID)
	if err != nil {
		return 0, err
	}
	return spendable - reserved, nil
}

// Reserve earmarks amount against the user's uncommitted balance. Fails with
// ErrInsufficientFunds when amount exceeds spendable minus reserved at this
// instant, leaving the account untouched.
func (l *Ledger) Reserve(userID string, amount float64) error {
	acct, err := l.lookup(userID)
	if err != nil {
		return err
	}
	acct.mu.Lock()
	defer acct.mu.Unlock()
	if amount > acct.spendable-acct.reserved {
		return fmt.Errorf("reserve %.2f for user %s: %w", amount, userID, auctionerrors.ErrInsufficientFunds)
	}
	acct.reserved += amount
	return nil
}

// Release returns a previously reserved amount to the user's uncommitted
// balance.
func (l *Ledger) Release(userID string, amount float64) error {
	acct, err := l.lookup(userID)
	if err != nil {
		return err
	}
	acct.mu.Lock()
	defer acct.mu.Unlock()
	if amount > acct.reserved {
		return fmt.Errorf("release %.2f for user %s exceeds reserved %.2f", amount, userID, acct.reserved)
	}
	acct.reserved -= amount
	return nil
}

// MoveReservation releases fromAmount on fromUser and reserves toAmount on
// toUser as one atomic step. Used when a new leading bid supersedes the old
// leader: no interleaved observer can see both or neither amount reserved.
// Fails without side effects when toUser lacks uncommitted funds.
func (l *Ledger) MoveReservation(fromUser string, fromAmount float64, toUser string, toAmount float64) error {
	if fromUser == toUser {
		// A leader raising their own bid: only the delta needs headroom.
		acct, err := l.lookup(fromUser)
		if err != nil {
			return err
		}
		acct.mu.Lock()
		defer acct.mu.Unlock()
		if toAmount-fromAmount > acct.spendable-acct.reserved {
			return fmt.Errorf("raise reservation to %.2f for user %s: %w", toAmount, toUser, auctionerrors.ErrInsufficientFunds)
		}
		acct.reserved += toAmount - fromAmount
		return nil
	}

	from, err := l.lookup(fromUser)
	if err != nil {
		return err
	}
	to, err := l.lookup(toUser)
	if err != nil {
		return err
	}

	lockPair(fromUser, from, toUser, to)
	defer unlockPair(from, to)

	if toAmount > to.spendable-to.reserved {
		return fmt.Errorf("reserve %.2f for user %s: %w", toAmount, toUser, auctionerrors.ErrInsufficientFunds)
	}
	if fromAmount > from.reserved {
		return fmt.Errorf("release %.2f for user %s exceeds reserved %.2f", fromAmount, fromUser, from.reserved)
	}
	to.reserved += toAmount
	from.reserved -= fromAmount
	return nil
}

// Settle performs the irreversible winner-to-creator transfer: the winner's
// leading reservation is released and amount moves between spendable balances
// in the same step. Fails with ErrInsufficientFunds, mutating nothing, when
// the winner's spendable has dropped below amount since the bid was placed.
func (l *Ledger) Settle(winnerID, creatorID string, amount float64) error {
	winner, err := l.lookup(winnerID)
	if err != nil {
		return err
	}
	creator, err := l.lookup(creatorID)
	if err != nil {
		return err
	}

	lockPair(winnerID, winner, creatorID, creator)
	defer unlockPair(winner, creator)

	if winner.spendable < amount {
		return fmt.Errorf("settle %.2f from user %s: %w", amount, winnerID, auctionerrors.ErrInsufficientFunds)
	}
	if amount > winner.reserved {
		return fmt.Errorf("settle %.2f from user %s exceeds reserved %.2f", amount, winnerID, winner.reserved)
	}
	winner.reserved -= amount
	winner.spendable -= amount
	creator.spendable += amount
	return nil
}

func (l *Ledger) lookup(userID string) (*account, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	acct, ok := l.accounts[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, auctionerrors.ErrAccountNotFound)
	}
	return acct, nil
}

// lockPair acquires both account locks in a stable order keyed by user id so
// concurrent two-account operations cannot deadlock.
func lockPair(idA string, a *account, idB string, b *account) {
	if idA < idB {
		a.mu.Lock()
		b.mu.Lock()
	} else {
		b.mu.Lock()
		a.mu.Lock()
	}
}

func unlockPair(a, b *account) {
	a.mu.Unlock()
	b.mu.Unlock()
}
