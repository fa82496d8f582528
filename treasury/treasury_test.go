package treasury

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mixtapeorg/libmixtape-go/account"
)

var (
	platformOwner = makeAddr(0x01)
	payout        = makeAddr(0x02)
	stranger      = makeAddr(0x03)
)

func makeAddr(seed byte) account.Address {
	var addr account.Address
	for i := range addr {
		addr[i] = seed
	}
	return addr
}

func testTreasury(t *testing.T) (*Treasury, *account.Book) {
	t.Helper()
	book := account.NewBook()
	tre, err := New(platformOwner, DefaultFeeBps, book)
	require.NoError(t, err)
	return tre, book
}

func TestNew_RejectsOutOfRangeFee(t *testing.T) {
	_, err := New(platformOwner, MaxFeeBps+1, account.NewBook())
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestSetFeeRate(t *testing.T) {
	tre, _ := testTreasury(t)
	assert.Equal(t, uint16(DefaultFeeBps), tre.FeeRate())

	require.NoError(t, tre.SetFeeRate(platformOwner, 500))
	assert.Equal(t, uint16(500), tre.FeeRate())

	// Bounds are inclusive at both ends.
	assert.NoError(t, tre.SetFeeRate(platformOwner, 0))
	assert.NoError(t, tre.SetFeeRate(platformOwner, MaxFeeBps))
	assert.ErrorIs(t, tre.SetFeeRate(platformOwner, MaxFeeBps+1), ErrOutOfRange)
}

func TestSetFeeRate_Unauthorized(t *testing.T) {
	tre, _ := testTreasury(t)
	err := tre.SetFeeRate(stranger, 100)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, uint16(DefaultFeeBps), tre.FeeRate())
}

func TestWithdraw_DrainsAccumulated(t *testing.T) {
	tre, book := testTreasury(t)
	tre.Accrue(300)
	tre.Accrue(200)
	assert.Equal(t, uint64(500), tre.Accumulated())

	amount, err := tre.Withdraw(platformOwner, payout)
	require.NoError(t, err)
	assert.Equal(t, uint64(500), amount)
	assert.Zero(t, tre.Accumulated())
	assert.Equal(t, uint64(500), book.Balance(payout))
}

func TestWithdraw_EmptyIsNoOp(t *testing.T) {
	tre, book := testTreasury(t)
	amount, err := tre.Withdraw(platformOwner, payout)
	require.NoError(t, err)
	assert.Zero(t, amount)
	assert.Zero(t, book.Balance(payout))

	// With nothing to move the recipient is not validated either.
	amount, err = tre.Withdraw(platformOwner, account.ZeroAddress)
	require.NoError(t, err)
	assert.Zero(t, amount)
}

func TestWithdraw_Errors(t *testing.T) {
	tre, _ := testTreasury(t)
	tre.Accrue(100)

	_, err := tre.Withdraw(stranger, payout)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = tre.Withdraw(platformOwner, account.ZeroAddress)
	assert.ErrorIs(t, err, ErrInvalidRecipient)

	// Failed withdrawals leave the balance intact.
	assert.Equal(t, uint64(100), tre.Accumulated())
}

func TestRestore(t *testing.T) {
	tre, _ := testTreasury(t)
	require.NoError(t, tre.Restore(750, 1234))
	assert.Equal(t, uint16(750), tre.FeeRate())
	assert.Equal(t, uint64(1234), tre.Accumulated())

	assert.ErrorIs(t, tre.Restore(MaxFeeBps+1, 0), ErrOutOfRange)
}
