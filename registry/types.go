package registry

import (
	"time"

	"github.com/mixtapeorg/libmixtape-go/account"
)

// MaxTracks is the maximum number of tracks per record.
const MaxTracks = 20

// RecordID identifies a record. Ids are assigned monotonically starting
// at 1 and are never reused.
type RecordID uint64

// Record is the ownable unit: a mixtape with metadata, a track list and
// a deterministically bound sub-account that accumulates its revenue.
type Record struct {
	ID          RecordID
	Owner       account.Address
	Creator     account.Address // immutable after creation
	Title       string
	Description string
	URI         string
	TrackIDs    []string
	PlayPrice   uint64 // base units, set at creation
	PlayCount   uint64
	CreatedAt   time.Time
	SubAccount  account.Address
}

// Metadata is the read view of a record's descriptive fields.
type Metadata struct {
	Title       string
	Description string
	URI         string
	TrackIDs    []string
	CreatedAt   time.Time
}

// clone returns a deep copy safe to hand to callers.
func (r *Record) clone() *Record {
	out := *r
	out.TrackIDs = append([]string(nil), r.TrackIDs...)
	return &out
}
