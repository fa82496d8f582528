// Package store persists ledger state snapshots. The in-memory core is
// authoritative; a Store is the durability adapter loaded at startup
// and written after mutations.
package store

import (
	"sync"

	"github.com/mixtapeorg/libmixtape-go/account"
	"github.com/mixtapeorg/libmixtape-go/registry"
	"github.com/mixtapeorg/libmixtape-go/social"
)

// Snapshot is the full persistable state of the ledger.
type Snapshot struct {
	Records   []*registry.Record
	NextID    registry.RecordID
	Approvals map[registry.RecordID]account.Address

	Balances map[account.Address]uint64

	Likes    map[account.Address][]account.Address
	Comments map[account.Address][]social.Comment

	FeeBps      uint16
	Accumulated uint64
}

// Store persists and restores ledger snapshots.
type Store interface {
	// SaveSnapshot atomically replaces the persisted state.
	SaveSnapshot(snap *Snapshot) error

	// LoadSnapshot returns the persisted state, or ErrNoSnapshot if
	// nothing has been saved yet.
	LoadSnapshot() (*Snapshot, error)

	// Close releases the underlying resources.
	Close() error
}

// MemStore is an in-memory Store for tests and ephemeral deployments.
type MemStore struct {
	mu   sync.Mutex
	snap *Snapshot
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// SaveSnapshot stores the snapshot.
func (s *MemStore) SaveSnapshot(snap *Snapshot) error {
	if snap == nil {
		return ErrNilSnapshot
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	return nil
}

// LoadSnapshot returns the stored snapshot.
func (s *MemStore) LoadSnapshot() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return nil, ErrNoSnapshot
	}
	return s.snap, nil
}

// Close is a no-op.
func (s *MemStore) Close() error { return nil }
