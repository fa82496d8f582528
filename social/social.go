// Package social keeps the per-sub-account like sets and comment logs.
// Sub-accounts need not pre-exist here: reads on unknown targets return
// zero values rather than erroring.
package social

import (
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mixtapeorg/libmixtape-go/account"
)

// MaxCommentLength is the maximum comment length in characters.
const MaxCommentLength = 280

// Comment is one entry in a sub-account's append-only comment log.
type Comment struct {
	Author    account.Address
	Text      string
	Timestamp time.Time
}

// Store holds like sets and comment logs keyed by sub-account. Likes
// maintain a co-located counter updated transactionally with the set so
// the count never drifts from the membership.
type Store struct {
	now func() time.Time

	mu         sync.RWMutex
	likes      map[account.Address]map[account.Address]struct{}
	likeCounts map[account.Address]uint64
	comments   map[account.Address][]Comment
}

// NewStore creates an empty social store. A nil clock defaults to
// time.Now.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		now:        now,
		likes:      make(map[account.Address]map[account.Address]struct{}),
		likeCounts: make(map[account.Address]uint64),
		comments:   make(map[account.Address][]Comment),
	}
}

// Like records that actor likes target. Each actor appears at most once
// in a target's like set; a repeat fails with ErrAlreadyLiked.
func (s *Store) Like(target, actor account.Address) error {
	if target.IsZero() {
		return ErrInvalidTarget
	}
	if actor.IsZero() {
		return ErrInvalidActor
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.likes[target]
	if set == nil {
		set = make(map[account.Address]struct{})
		s.likes[target] = set
	}
	if _, ok := set[actor]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyLiked, target)
	}
	set[actor] = struct{}{}
	s.likeCounts[target]++
	return nil
}

// Unlike removes actor from target's like set. Fails with ErrNotLiked
// if the actor had not liked the target.
func (s *Store) Unlike(target, actor account.Address) error {
	if target.IsZero() {
		return ErrInvalidTarget
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.likes[target]
	if _, ok := set[actor]; !ok {
		return fmt.Errorf("%w: %s", ErrNotLiked, target)
	}
	delete(set, actor)
	s.likeCounts[target]--
	return nil
}

// AddComment appends a comment to target's log. Text must be between 1
// and MaxCommentLength characters; the log preserves insertion order
// and comments are never deleted.
func (s *Store) AddComment(target, actor account.Address, text string) error {
	if target.IsZero() {
		return ErrInvalidTarget
	}
	if actor.IsZero() {
		return ErrInvalidActor
	}
	if text == "" {
		return ErrEmptyComment
	}
	if n := utf8.RuneCountInString(text); n > MaxCommentLength {
		return fmt.Errorf("%w: %d characters", ErrCommentTooLong, n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[target] = append(s.comments[target], Comment{
		Author:    actor,
		Text:      text,
		Timestamp: s.now(),
	})
	return nil
}

// LikesCount returns the number of distinct likers of target.
func (s *Store) LikesCount(target account.Address) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.likeCounts[target]
}

// HasLiked reports whether actor has liked target.
func (s *Store) HasLiked(target, actor account.Address) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.likes[target][actor]
	return ok
}

// Comments returns a copy of target's comment log in insertion order.
func (s *Store) Comments(target account.Address) []Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	log := s.comments[target]
	if len(log) == 0 {
		return nil
	}
	return append([]Comment(nil), log...)
}

// Snapshot returns the store's full state for persistence: like sets
// and comment logs per target.
func (s *Store) Snapshot() (map[account.Address][]account.Address, map[account.Address][]Comment) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	likes := make(map[account.Address][]account.Address, len(s.likes))
	for target, set := range s.likes {
		if len(set) == 0 {
			continue
		}
		actors := make([]account.Address, 0, len(set))
		for actor := range set {
			actors = append(actors, actor)
		}
		likes[target] = actors
	}
	comments := make(map[account.Address][]Comment, len(s.comments))
	for target, log := range s.comments {
		if len(log) == 0 {
			continue
		}
		comments[target] = append([]Comment(nil), log...)
	}
	return likes, comments
}

// Restore replaces the store's state from a persisted snapshot,
// rebuilding the like counters from the sets.
func (s *Store) Restore(likes map[account.Address][]account.Address, comments map[account.Address][]Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.likes = make(map[account.Address]map[account.Address]struct{}, len(likes))
	s.likeCounts = make(map[account.Address]uint64, len(likes))
	for target, actors := range likes {
		set := make(map[account.Address]struct{}, len(actors))
		for _, actor := range actors {
			set[actor] = struct{}{}
		}
		s.likes[target] = set
		s.likeCounts[target] = uint64(len(set))
	}
	s.comments = make(map[account.Address][]Comment, len(comments))
	for target, log := range comments {
		s.comments[target] = append([]Comment(nil), log...)
	}
}
