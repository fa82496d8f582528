package server

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mixtapeorg/libmixtape-go/account"
	"github.com/mixtapeorg/libmixtape-go/config"
	"github.com/mixtapeorg/libmixtape-go/jukebox"
	"github.com/mixtapeorg/libmixtape-go/registry"
	"github.com/mixtapeorg/libmixtape-go/social"
	"github.com/mixtapeorg/libmixtape-go/store"
	"github.com/mixtapeorg/libmixtape-go/treasury"
)

// Core wires the ledger components together: one registry, one
// treasury, one balance book, one jukebox and one social store sharing
// a single sub-account address space.
//
// Each component guards its own state, but plays and withdrawals touch
// several components at once. Those commits hold commitMu shared;
// Snapshot and Restore hold it exclusively, so a snapshot never
// captures a half-applied commit.
type Core struct {
	Deriver  *account.Deriver
	Book     *account.Book
	Registry *registry.Registry
	Treasury *treasury.Treasury
	Jukebox  *jukebox.Jukebox
	Social   *social.Store

	commitMu sync.RWMutex
}

// NewCore builds the ledger core from a validated config.
func NewCore(cfg config.Config) (*Core, error) {
	admin, err := account.ParseAddress(cfg.AdminAddr)
	if err != nil {
		return nil, fmt.Errorf("server: admin address: %w", err)
	}
	platform, err := account.ParseAddress(cfg.PlatformAddr)
	if err != nil {
		return nil, fmt.Errorf("server: platform address: %w", err)
	}

	registryID := account.RegistryID("mixtape-registry", cfg.Network, admin.String())
	deriver, err := account.NewDeriver(registryID, cfg.ChainID())
	if err != nil {
		return nil, err
	}

	book := account.NewBook()
	reg := registry.New(admin, deriver, nil)
	tre, err := treasury.New(platform, cfg.DefaultFeeBps, book)
	if err != nil {
		return nil, err
	}

	return &Core{
		Deriver:  deriver,
		Book:     book,
		Registry: reg,
		Treasury: tre,
		Jukebox:  jukebox.New(reg, tre, book),
		Social:   social.NewStore(nil),
	}, nil
}

// Play settles a play through the jukebox under the commit lock.
func (c *Core) Play(listener account.Address, id registry.RecordID, payment uint64) (*jukebox.Receipt, error) {
	c.commitMu.RLock()
	defer c.commitMu.RUnlock()
	return c.Jukebox.Play(listener, id, payment)
}

// Withdraw drains the treasury into the book under the commit lock.
func (c *Core) Withdraw(caller, to account.Address) (uint64, error) {
	c.commitMu.RLock()
	defer c.commitMu.RUnlock()
	return c.Treasury.Withdraw(caller, to)
}

// Snapshot collects the full ledger state for persistence. No
// cross-component commit is in flight while it reads.
func (c *Core) Snapshot() *store.Snapshot {
	c.commitMu.Lock()
	defer c.commitMu.Unlock()
	records, nextID, approvals := c.Registry.Snapshot()
	likes, comments := c.Social.Snapshot()
	return &store.Snapshot{
		Records:     records,
		NextID:      nextID,
		Approvals:   approvals,
		Balances:    c.Book.Balances(),
		Likes:       likes,
		Comments:    comments,
		FeeBps:      c.Treasury.FeeRate(),
		Accumulated: c.Treasury.Accumulated(),
	}
}

// Restore loads a persisted snapshot into the core. A missing snapshot
// is not an error: the core simply starts empty.
func (c *Core) Restore(s store.Store) error {
	c.commitMu.Lock()
	defer c.commitMu.Unlock()
	snap, err := s.LoadSnapshot()
	if errors.Is(err, store.ErrNoSnapshot) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := c.Registry.Restore(snap.Records, snap.NextID, snap.Approvals); err != nil {
		return err
	}
	c.Book.Restore(snap.Balances)
	c.Social.Restore(snap.Likes, snap.Comments)
	return c.Treasury.Restore(snap.FeeBps, snap.Accumulated)
}
