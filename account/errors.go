package account

import "errors"

var (
	// ErrInvalidAddress indicates a malformed address encoding.
	ErrInvalidAddress = errors.New("account: invalid address")

	// ErrDerivation indicates the deriver's identity inputs are corrupt.
	// This is a fatal precondition violation, not a recoverable error.
	ErrDerivation = errors.New("account: derivation failed")

	// ErrInsufficientBalance indicates a debit exceeds the account balance.
	ErrInsufficientBalance = errors.New("account: insufficient balance")
)
