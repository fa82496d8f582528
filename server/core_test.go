package server

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mixtapeorg/libmixtape-go/account"
	"github.com/mixtapeorg/libmixtape-go/store"
)

func mustAddr(t *testing.T, s string) account.Address {
	t.Helper()
	addr, err := account.ParseAddress(s)
	require.NoError(t, err)
	return addr
}

// Every snapshot taken while plays and withdrawals are in flight must
// account for whole commits only: the sub-account balance, the platform
// payout and the accumulated fees always line up with the play counter.
func TestSnapshot_ConsistentUnderConcurrentCommits(t *testing.T) {
	core, err := NewCore(testConfig())
	require.NoError(t, err)

	admin := mustAddr(t, adminHex)
	artist := mustAddr(t, artistHex)
	listener := mustAddr(t, listenerHex)
	platform := mustAddr(t, platformHex)

	const (
		price     = uint64(10_000)
		fee       = uint64(250) // price at DefaultFeeBps
		share     = price - fee
		listeners = 4
		plays     = 200
	)

	id, err := core.Registry.CreateRecord(admin, artist, "Test Mixtape", "", "ipfs://QmTest", price)
	require.NoError(t, err)
	sub, err := core.Registry.SubAccount(id)
	require.NoError(t, err)

	var wg sync.WaitGroup
	done := make(chan struct{})
	for i := 0; i < listeners; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < plays; n++ {
				_, err := core.Play(listener, id, price)
				assert.NoError(t, err)
			}
		}()
	}
	var withdrawer sync.WaitGroup
	withdrawer.Add(1)
	go func() {
		defer withdrawer.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			_, err := core.Withdraw(platform, platform)
			assert.NoError(t, err)
		}
	}()
	go func() {
		wg.Wait()
		close(done)
	}()

	check := func(snap *store.Snapshot) uint64 {
		t.Helper()
		var count uint64
		for _, rec := range snap.Records {
			if rec.ID == id {
				count = rec.PlayCount
			}
		}
		assert.Equal(t, count*share, snap.Balances[sub], "play count %d", count)
		assert.Equal(t, count*fee, snap.Balances[platform]+snap.Accumulated, "play count %d", count)
		return count
	}

	for {
		check(core.Snapshot())
		select {
		case <-done:
			withdrawer.Wait()
			count := check(core.Snapshot())
			assert.Equal(t, uint64(listeners*plays), count)
			return
		default:
		}
	}
}
