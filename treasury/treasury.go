package treasury

import (
	"fmt"
	"sync"

	"github.com/mixtapeorg/libmixtape-go/account"
)

const (
	// MaxFeeBps is the upper bound of the fee rate (100%).
	MaxFeeBps = 10000

	// DefaultFeeBps is the platform's default fee rate (2.5%).
	DefaultFeeBps = 250
)

// Treasury accumulates the platform's fee share of play payments and
// owns the fee-rate configuration. One instance lives for the lifetime
// of the system; all mutation goes through its methods.
type Treasury struct {
	owner account.Address
	book  *account.Book

	mu          sync.RWMutex
	feeBps      uint16
	accumulated uint64
}

// New creates a Treasury owned by owner, posting withdrawals to book.
func New(owner account.Address, feeBps uint16, book *account.Book) (*Treasury, error) {
	if feeBps > MaxFeeBps {
		return nil, fmt.Errorf("%w: %d bps", ErrOutOfRange, feeBps)
	}
	return &Treasury{owner: owner, book: book, feeBps: feeBps}, nil
}

// FeeRate returns the current fee rate in basis points.
func (t *Treasury) FeeRate() uint16 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.feeBps
}

// SetFeeRate updates the fee rate. Platform owner only. The new rate
// applies to plays committed after this call; it is not retroactive.
func (t *Treasury) SetFeeRate(caller account.Address, bps uint16) error {
	if caller != t.owner {
		return ErrUnauthorized
	}
	if bps > MaxFeeBps {
		return fmt.Errorf("%w: %d bps", ErrOutOfRange, bps)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.feeBps = bps
	return nil
}

// Accrue adds a collected fee to the accumulated platform balance.
// Called by the playback ledger as part of a play commit.
func (t *Treasury) Accrue(amount uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.accumulated += amount
}

// Accumulated returns the undistributed platform balance.
func (t *Treasury) Accumulated() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.accumulated
}

// Withdraw transfers the entire accumulated balance to the recipient's
// account and resets it. Platform owner only. Withdrawing an empty
// treasury is a no-op returning 0, not an error.
func (t *Treasury) Withdraw(caller, to account.Address) (uint64, error) {
	if caller != t.owner {
		return 0, ErrUnauthorized
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	amount := t.accumulated
	if amount == 0 {
		// Nothing to move, so the recipient is not even inspected.
		return 0, nil
	}
	if to.IsZero() {
		return 0, ErrInvalidRecipient
	}
	t.accumulated = 0
	t.book.Credit(to, amount)
	return amount, nil
}

// Restore replaces the treasury's state from a persisted snapshot.
func (t *Treasury) Restore(feeBps uint16, accumulated uint64) error {
	if feeBps > MaxFeeBps {
		return fmt.Errorf("%w: %d bps", ErrOutOfRange, feeBps)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.feeBps = feeBps
	t.accumulated = accumulated
	return nil
}
