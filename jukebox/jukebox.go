// Package jukebox implements the pay-to-play ledger: it validates play
// payments, splits them between the platform treasury and the record's
// sub-account, and maintains play counters.
package jukebox

import (
	"fmt"
	"sync"

	"github.com/mixtapeorg/libmixtape-go/account"
	"github.com/mixtapeorg/libmixtape-go/registry"
	"github.com/mixtapeorg/libmixtape-go/treasury"
)

// Receipt describes the settled effects of a single play.
type Receipt struct {
	RecordID    registry.RecordID
	Listener    account.Address
	SubAccount  account.Address
	Payment     uint64
	Fee         uint64
	ArtistShare uint64
	PlayCount   uint64
}

// Jukebox executes play events against the registry, treasury and
// balance book. Plays are serialized by the jukebox lock; observers
// that need the three-way commit (sub-account credit, treasury accrual,
// play counter) to appear atomic must additionally exclude in-flight
// plays, the way server.Core does around snapshots.
type Jukebox struct {
	mu       sync.Mutex
	registry *registry.Registry
	treasury *treasury.Treasury
	book     *account.Book
}

// New creates a Jukebox over the given registry, treasury and book.
func New(reg *registry.Registry, tre *treasury.Treasury, book *account.Book) *Jukebox {
	return &Jukebox{registry: reg, treasury: tre, book: book}
}

// Play settles one paid play of the record. The payment must equal the
// record's play price exactly; any deviation fails with
// ErrInsufficientPayment and an unknown record fails with
// registry.ErrNotFound — the two are never conflated. On success the
// artist share is credited to the record's sub-account, the fee is
// accrued to the treasury and the play counter is incremented, all
// under the ledger lock. A failed play leaves all state unchanged and
// is never retried by the ledger.
func (j *Jukebox) Play(listener account.Address, id registry.RecordID, payment uint64) (*Receipt, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	price, err := j.registry.PlayPrice(id)
	if err != nil {
		return nil, err
	}
	if payment != price {
		return nil, fmt.Errorf("%w: record %d costs %d, got %d", ErrInsufficientPayment, id, price, payment)
	}

	sub, err := j.registry.SubAccount(id)
	if err != nil {
		return nil, err
	}

	fee := feeFor(payment, j.treasury.FeeRate())
	artistShare := payment - fee

	// Commit. The counter increment is the only step that can report
	// an error, so it goes first; the credits below cannot fail.
	count, err := j.registry.RecordPlay(id)
	if err != nil {
		return nil, err
	}
	j.book.Credit(sub, artistShare)
	j.treasury.Accrue(fee)

	return &Receipt{
		RecordID:    id,
		Listener:    listener,
		SubAccount:  sub,
		Payment:     payment,
		Fee:         fee,
		ArtistShare: artistShare,
		PlayCount:   count,
	}, nil
}

// PlayCount returns the record's aggregate play count.
func (j *Jukebox) PlayCount(id registry.RecordID) (uint64, error) {
	return j.registry.PlayCount(id)
}

// feeFor computes payment * feeBps / 10000 with floor division.
// Split into quotient and remainder parts so large base-unit payments
// cannot overflow the intermediate product.
func feeFor(payment uint64, feeBps uint16) uint64 {
	bps := uint64(feeBps)
	q := payment / treasury.MaxFeeBps
	r := payment % treasury.MaxFeeBps
	return q*bps + r*bps/treasury.MaxFeeBps
}
