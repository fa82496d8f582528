package account

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressSize is the length of an address in bytes.
const AddressSize = 20

// Address is an opaque 20-byte account identifier. The zero value is the
// null sentinel and never refers to a valid account.
type Address [AddressSize]byte

// ZeroAddress is the null sentinel.
var ZeroAddress Address

// IsZero reports whether the address is the null sentinel.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// String returns the 0x-prefixed hex encoding of the address.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// ParseAddress decodes a hex address, with or without a 0x prefix.
func ParseAddress(s string) (Address, error) {
	var addr Address
	h := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(h) != AddressSize*2 {
		return addr, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return addr, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	copy(addr[:], b)
	return addr, nil
}
