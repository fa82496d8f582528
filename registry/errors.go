package registry

import "errors"

var (
	// ErrNotFound indicates the record id is unknown.
	ErrNotFound = errors.New("registry: record not found")

	// ErrUnauthorized indicates the caller lacks the required role or
	// ownership for the operation.
	ErrUnauthorized = errors.New("registry: caller is not authorized")

	// ErrCapacityExceeded indicates the record's track list is full.
	ErrCapacityExceeded = errors.New("registry: track list full")

	// ErrInvalidPlayPrice indicates a play price of zero.
	ErrInvalidPlayPrice = errors.New("registry: play price must be positive")

	// ErrInvalidOwner indicates the zero address was given as an owner.
	ErrInvalidOwner = errors.New("registry: invalid owner address")

	// ErrInvalidSnapshot indicates a persisted snapshot is internally
	// inconsistent and must not be restored.
	ErrInvalidSnapshot = errors.New("registry: invalid snapshot")
)
