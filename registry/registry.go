package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mixtapeorg/libmixtape-go/account"
)

// Registry owns mixtape records: metadata, ownership, authorization and
// track lists. Every public operation is applied atomically under the
// registry lock.
type Registry struct {
	admin   account.Address
	deriver *account.Deriver
	now     func() time.Time

	mu       sync.RWMutex
	nextID   RecordID
	records  map[RecordID]*Record
	approved map[RecordID]account.Address // per-record approved operator
}

// New creates a Registry administered by admin. Record creation is gated
// on the admin identity. A nil clock defaults to time.Now.
func New(admin account.Address, deriver *account.Deriver, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{
		admin:    admin,
		deriver:  deriver,
		now:      now,
		nextID:   1,
		records:  make(map[RecordID]*Record),
		approved: make(map[RecordID]account.Address),
	}
}

// CreateRecord mints a new record owned by owner and binds its
// sub-account. Only the registry admin may create records.
func (r *Registry) CreateRecord(caller, owner account.Address, title, description, uri string, playPrice uint64) (RecordID, error) {
	if caller != r.admin {
		return 0, fmt.Errorf("%w: only the registry admin can create records", ErrUnauthorized)
	}
	if owner.IsZero() {
		return 0, ErrInvalidOwner
	}
	if playPrice == 0 {
		return 0, ErrInvalidPlayPrice
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	sub, err := r.deriver.DeriveAndEnsure(uint64(id))
	if err != nil {
		return 0, err
	}
	r.nextID++

	r.records[id] = &Record{
		ID:          id,
		Owner:       owner,
		Creator:     owner,
		Title:       title,
		Description: description,
		URI:         uri,
		PlayPrice:   playPrice,
		CreatedAt:   r.now(),
		SubAccount:  sub,
	}
	return id, nil
}

// AddTrack appends trackID to the record's track list. The caller must
// be the current owner or the approved operator. Track ids are not
// deduplicated; insertion order is preserved.
func (r *Registry) AddTrack(caller account.Address, id RecordID, trackID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return fmt.Errorf("%w: record %d", ErrNotFound, id)
	}
	if !r.isOwnerOrApproved(caller, id, rec) {
		return fmt.Errorf("%w: caller is not owner nor approved", ErrUnauthorized)
	}
	if len(rec.TrackIDs) >= MaxTracks {
		return fmt.Errorf("%w: record %d already has %d tracks", ErrCapacityExceeded, id, MaxTracks)
	}
	rec.TrackIDs = append(rec.TrackIDs, trackID)
	return nil
}

// TransferOwnership assigns the record to newOwner. The creator, the
// sub-account and its balance and social state are unchanged. Any
// approved operator is cleared on transfer.
func (r *Registry) TransferOwnership(caller account.Address, id RecordID, newOwner account.Address) error {
	if newOwner.IsZero() {
		return ErrInvalidOwner
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return fmt.Errorf("%w: record %d", ErrNotFound, id)
	}
	if !r.isOwnerOrApproved(caller, id, rec) {
		return fmt.Errorf("%w: caller is not owner nor approved", ErrUnauthorized)
	}
	rec.Owner = newOwner
	delete(r.approved, id)
	return nil
}

// SetApproved grants operator the owner's rights on the record, or
// clears the approval when operator is the zero address. Owner only.
func (r *Registry) SetApproved(caller account.Address, id RecordID, operator account.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return fmt.Errorf("%w: record %d", ErrNotFound, id)
	}
	if caller != rec.Owner {
		return fmt.Errorf("%w: only the owner can approve an operator", ErrUnauthorized)
	}
	if operator.IsZero() {
		delete(r.approved, id)
		return nil
	}
	r.approved[id] = operator
	return nil
}

// Approved returns the approved operator for the record, or the zero
// address if none is set.
func (r *Registry) Approved(id RecordID) (account.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.records[id]; !ok {
		return account.ZeroAddress, fmt.Errorf("%w: record %d", ErrNotFound, id)
	}
	return r.approved[id], nil
}

// isOwnerOrApproved is the authorization predicate for record mutation.
// Callers must hold the lock.
func (r *Registry) isOwnerOrApproved(caller account.Address, id RecordID, rec *Record) bool {
	if caller == rec.Owner {
		return true
	}
	op, ok := r.approved[id]
	return ok && caller == op
}

// Exists reports whether the record id is known.
func (r *Registry) Exists(id RecordID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.records[id]
	return ok
}

// Get returns a copy of the record.
func (r *Registry) Get(id RecordID) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: record %d", ErrNotFound, id)
	}
	return rec.clone(), nil
}

// Metadata returns the record's descriptive fields.
func (r *Registry) Metadata(id RecordID) (*Metadata, error) {
	rec, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return &Metadata{
		Title:       rec.Title,
		Description: rec.Description,
		URI:         rec.URI,
		TrackIDs:    rec.TrackIDs,
		CreatedAt:   rec.CreatedAt,
	}, nil
}

// Owner returns the record's current owner.
func (r *Registry) Owner(id RecordID) (account.Address, error) {
	rec, err := r.Get(id)
	if err != nil {
		return account.ZeroAddress, err
	}
	return rec.Owner, nil
}

// Creator returns the record's original creator.
func (r *Registry) Creator(id RecordID) (account.Address, error) {
	rec, err := r.Get(id)
	if err != nil {
		return account.ZeroAddress, err
	}
	return rec.Creator, nil
}

// PlayPrice returns the record's play price in base units.
func (r *Registry) PlayPrice(id RecordID) (uint64, error) {
	rec, err := r.Get(id)
	if err != nil {
		return 0, err
	}
	return rec.PlayPrice, nil
}

// SubAccount returns the record's bound sub-account address.
func (r *Registry) SubAccount(id RecordID) (account.Address, error) {
	rec, err := r.Get(id)
	if err != nil {
		return account.ZeroAddress, err
	}
	return rec.SubAccount, nil
}

// PlayCount returns the record's aggregate play count.
func (r *Registry) PlayCount(id RecordID) (uint64, error) {
	rec, err := r.Get(id)
	if err != nil {
		return 0, err
	}
	return rec.PlayCount, nil
}

// RecordPlay increments the record's play counter and returns the new
// count. Called by the playback ledger as part of a play commit.
func (r *Registry) RecordPlay(id RecordID) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return 0, fmt.Errorf("%w: record %d", ErrNotFound, id)
	}
	rec.PlayCount++
	return rec.PlayCount, nil
}

// Records returns copies of all records ordered by id.
func (r *Registry) Records() []*Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Snapshot returns the registry's full state for persistence: records
// ordered by id, the next id to assign, and approved operators.
func (r *Registry) Snapshot() ([]*Record, RecordID, map[RecordID]account.Address) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := make([]*Record, 0, len(r.records))
	for _, rec := range r.records {
		records = append(records, rec.clone())
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	approved := make(map[RecordID]account.Address, len(r.approved))
	for id, op := range r.approved {
		approved[id] = op
	}
	return records, r.nextID, approved
}

// Restore replaces the registry's state from a persisted snapshot and
// re-materializes each record's sub-account binding.
func (r *Registry) Restore(records []*Record, nextID RecordID, approved map[RecordID]account.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// The id counter must be strictly ahead of every restored record,
	// or a later create would reuse an id.
	var maxID RecordID
	for _, rec := range records {
		if rec.ID > maxID {
			maxID = rec.ID
		}
	}
	if nextID == 0 || nextID <= maxID {
		return fmt.Errorf("%w: next id %d not above max record id %d", ErrInvalidSnapshot, nextID, maxID)
	}

	restored := make(map[RecordID]*Record, len(records))
	for _, rec := range records {
		sub, err := r.deriver.DeriveAndEnsure(uint64(rec.ID))
		if err != nil {
			return err
		}
		if sub != rec.SubAccount {
			return fmt.Errorf("%w: record %d sub-account mismatch", account.ErrDerivation, rec.ID)
		}
		restored[rec.ID] = rec.clone()
	}
	r.records = restored
	r.nextID = nextID
	r.approved = make(map[RecordID]account.Address, len(approved))
	for id, op := range approved {
		r.approved[id] = op
	}
	return nil
}
