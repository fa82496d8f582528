package social

import "errors"

var (
	// ErrInvalidTarget indicates the zero address was used as a social
	// target.
	ErrInvalidTarget = errors.New("social: invalid target sub-account")

	// ErrInvalidActor indicates the zero address was used as an actor.
	ErrInvalidActor = errors.New("social: invalid actor address")

	// ErrAlreadyLiked indicates the actor has already liked the target.
	ErrAlreadyLiked = errors.New("social: already liked")

	// ErrNotLiked indicates the actor has not liked the target.
	ErrNotLiked = errors.New("social: not liked yet")

	// ErrEmptyComment indicates an empty comment text.
	ErrEmptyComment = errors.New("social: empty comment")

	// ErrCommentTooLong indicates a comment above the length limit.
	ErrCommentTooLong = errors.New("social: comment too long")
)
