package treasury

import "errors"

var (
	// ErrUnauthorized indicates the caller is not the platform owner.
	ErrUnauthorized = errors.New("treasury: caller is not the platform owner")

	// ErrOutOfRange indicates a fee rate above 10000 basis points.
	ErrOutOfRange = errors.New("treasury: fee rate out of range")

	// ErrInvalidRecipient indicates the zero address was given as a
	// withdrawal recipient.
	ErrInvalidRecipient = errors.New("treasury: invalid withdrawal recipient")
)
