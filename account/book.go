package account

import (
	"fmt"
	"sync"
)

// Book tracks balances for sub-accounts and payout recipients. Unknown
// addresses have a zero balance.
type Book struct {
	mu       sync.RWMutex
	balances map[Address]uint64
}

// NewBook creates an empty balance book.
func NewBook() *Book {
	return &Book{balances: make(map[Address]uint64)}
}

// Balance returns the current balance of addr.
func (b *Book) Balance(addr Address) uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.balances[addr]
}

// Credit adds amount to the balance of addr.
func (b *Book) Credit(addr Address, amount uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances[addr] += amount
}

// Debit removes amount from the balance of addr. Fails with
// ErrInsufficientBalance if the balance is too small; the balance is
// left unchanged on failure.
func (b *Book) Debit(addr Address, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	bal := b.balances[addr]
	if bal < amount {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientBalance, bal, amount)
	}
	b.balances[addr] = bal - amount
	return nil
}

// Balances returns a copy of all non-zero balances.
func (b *Book) Balances() map[Address]uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[Address]uint64, len(b.balances))
	for addr, bal := range b.balances {
		if bal > 0 {
			out[addr] = bal
		}
	}
	return out
}

// Restore replaces the book's contents with the given balances.
// Used when loading a persisted snapshot.
func (b *Book) Restore(balances map[Address]uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances = make(map[Address]uint64, len(balances))
	for addr, bal := range balances {
		b.balances[addr] = bal
	}
}
