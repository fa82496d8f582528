package account

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sync"

	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
)

// DefaultSalt is the salt used for record sub-account derivation.
const DefaultSalt = 0

// RegistryID computes a stable 32-byte registry identity from its naming
// parts (e.g. scheme, network, admin address).
func RegistryID(parts ...string) [32]byte {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0x00})
	}
	var id [32]byte
	copy(id[:], h.Sum(nil))
	return id
}

// Deriver computes deterministic sub-account addresses for records of a
// single registry. The same (registry, chain, record) tuple always yields
// the same address, so any party can predict a record's sub-account
// before it is materialized.
type Deriver struct {
	registryID [32]byte
	chainID    uint64

	mu           sync.Mutex
	materialized map[Address]uint64 // sub-account -> record id
}

// NewDeriver creates a Deriver bound to the given registry and chain
// identity. A zero registry id is a corrupt identity input and fails
// with ErrDerivation.
func NewDeriver(registryID [32]byte, chainID uint64) (*Deriver, error) {
	if registryID == ([32]byte{}) {
		return nil, fmt.Errorf("%w: zero registry id", ErrDerivation)
	}
	return &Deriver{
		registryID:   registryID,
		chainID:      chainID,
		materialized: make(map[Address]uint64),
	}, nil
}

// Derive computes the sub-account address for recordID without
// materializing it. Pure: repeated calls return the same address.
func (d *Deriver) Derive(recordID uint64) Address {
	// registry_id(32) || chain_id(8) || record_id(8) || salt(8)
	buf := make([]byte, 32+8+8+8)
	copy(buf[0:32], d.registryID[:])
	binary.BigEndian.PutUint64(buf[32:40], d.chainID)
	binary.BigEndian.PutUint64(buf[40:48], recordID)
	binary.BigEndian.PutUint64(buf[48:56], DefaultSalt)

	var addr Address
	copy(addr[:], bsvhash.Hash160(buf))
	return addr
}

// DeriveAndEnsure computes the sub-account address for recordID and
// materializes it on first use. Idempotent: a second call for the same
// record returns the existing address without re-initializing.
func (d *Deriver) DeriveAndEnsure(recordID uint64) (Address, error) {
	addr := d.Derive(recordID)

	d.mu.Lock()
	defer d.mu.Unlock()
	if bound, ok := d.materialized[addr]; ok {
		if bound != recordID {
			// Two records hashing to one address would break the 1:1
			// binding invariant.
			return ZeroAddress, fmt.Errorf("%w: sub-account %s already bound to record %d",
				ErrDerivation, addr, bound)
		}
		return addr, nil
	}
	d.materialized[addr] = recordID
	return addr, nil
}

// Materialized reports whether the sub-account has been initialized.
func (d *Deriver) Materialized(addr Address) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.materialized[addr]
	return ok
}
