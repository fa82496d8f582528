package store

import "errors"

var (
	// ErrNoSnapshot indicates no snapshot has been saved yet.
	ErrNoSnapshot = errors.New("store: no snapshot")

	// ErrNilSnapshot indicates a nil snapshot was passed to save.
	ErrNilSnapshot = errors.New("store: nil snapshot")
)
