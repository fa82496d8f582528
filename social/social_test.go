package social

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mixtapeorg/libmixtape-go/account"
)

var (
	mixtape   = makeAddr(0x5A)
	listener1 = makeAddr(0xB1)
	listener2 = makeAddr(0xB2)
)

func makeAddr(seed byte) account.Address {
	var addr account.Address
	for i := range addr {
		addr[i] = seed
	}
	return addr
}

// --- Like tests ---

func TestLike_CountsDistinctActors(t *testing.T) {
	s := NewStore(nil)

	require.NoError(t, s.Like(mixtape, listener1))
	require.NoError(t, s.Like(mixtape, listener2))

	assert.Equal(t, uint64(2), s.LikesCount(mixtape))
	assert.True(t, s.HasLiked(mixtape, listener1))
	assert.True(t, s.HasLiked(mixtape, listener2))

	require.NoError(t, s.Unlike(mixtape, listener1))
	assert.Equal(t, uint64(1), s.LikesCount(mixtape))
	assert.False(t, s.HasLiked(mixtape, listener1))
	assert.True(t, s.HasLiked(mixtape, listener2))
}

func TestLike_IdempotenceBoundary(t *testing.T) {
	s := NewStore(nil)

	require.NoError(t, s.Like(mixtape, listener1))
	assert.ErrorIs(t, s.Like(mixtape, listener1), ErrAlreadyLiked)
	assert.Equal(t, uint64(1), s.LikesCount(mixtape), "no double counting")

	require.NoError(t, s.Unlike(mixtape, listener1))
	assert.ErrorIs(t, s.Unlike(mixtape, listener1), ErrNotLiked)

	// like -> unlike -> like lands back at one.
	require.NoError(t, s.Like(mixtape, listener1))
	assert.Equal(t, uint64(1), s.LikesCount(mixtape))
}

func TestLike_InvalidIdentities(t *testing.T) {
	s := NewStore(nil)

	assert.ErrorIs(t, s.Like(account.ZeroAddress, listener1), ErrInvalidTarget)
	assert.ErrorIs(t, s.Like(mixtape, account.ZeroAddress), ErrInvalidActor)
	assert.ErrorIs(t, s.Unlike(account.ZeroAddress, listener1), ErrInvalidTarget)
}

// --- Comment tests ---

func TestAddComment_OrderAndContent(t *testing.T) {
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(func() time.Time { return ts })

	texts := []string{"Great mixtape!", "Love the tracks!", "Amazing work!"}
	for _, text := range texts {
		require.NoError(t, s.AddComment(mixtape, listener1, text))
	}

	comments := s.Comments(mixtape)
	require.Len(t, comments, len(texts))
	for i, text := range texts {
		assert.Equal(t, listener1, comments[i].Author)
		assert.Equal(t, text, comments[i].Text)
		assert.Equal(t, ts, comments[i].Timestamp)
	}
}

func TestAddComment_Bounds(t *testing.T) {
	s := NewStore(nil)

	assert.ErrorIs(t, s.AddComment(mixtape, listener1, ""), ErrEmptyComment)

	tooLong := strings.Repeat("a", MaxCommentLength+1)
	assert.ErrorIs(t, s.AddComment(mixtape, listener1, tooLong), ErrCommentTooLong)

	exact := strings.Repeat("a", MaxCommentLength)
	assert.NoError(t, s.AddComment(mixtape, listener1, exact))

	// Length is counted in characters, not bytes.
	multibyte := strings.Repeat("ё", MaxCommentLength)
	assert.NoError(t, s.AddComment(mixtape, listener1, multibyte))
}

func TestAddComment_InvalidIdentities(t *testing.T) {
	s := NewStore(nil)
	assert.ErrorIs(t, s.AddComment(account.ZeroAddress, listener1, "hi"), ErrInvalidTarget)
	assert.ErrorIs(t, s.AddComment(mixtape, account.ZeroAddress, "hi"), ErrInvalidActor)
}

func TestComments_ReturnsCopy(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.AddComment(mixtape, listener1, "original"))

	got := s.Comments(mixtape)
	got[0].Text = "mutated"

	assert.Equal(t, "original", s.Comments(mixtape)[0].Text)
}

// --- Unknown target reads ---

func TestReads_UnknownTargetIsZero(t *testing.T) {
	s := NewStore(nil)
	unknown := makeAddr(0x99)

	assert.Zero(t, s.LikesCount(unknown))
	assert.False(t, s.HasLiked(unknown, listener1))
	assert.Nil(t, s.Comments(unknown))
}

// --- Snapshot tests ---

func TestSnapshotRestore_RoundTrip(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.Like(mixtape, listener1))
	require.NoError(t, s.Like(mixtape, listener2))
	require.NoError(t, s.AddComment(mixtape, listener1, "nice"))

	likes, comments := s.Snapshot()

	restored := NewStore(nil)
	restored.Restore(likes, comments)

	assert.Equal(t, uint64(2), restored.LikesCount(mixtape))
	assert.True(t, restored.HasLiked(mixtape, listener1))
	require.Len(t, restored.Comments(mixtape), 1)
	assert.Equal(t, "nice", restored.Comments(mixtape)[0].Text)

	// Counter is rebuilt from the set, so likes stay consistent.
	assert.ErrorIs(t, restored.Like(mixtape, listener1), ErrAlreadyLiked)
	require.NoError(t, restored.Unlike(mixtape, listener2))
	assert.Equal(t, uint64(1), restored.LikesCount(mixtape))
}
