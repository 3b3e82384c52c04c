package voting

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers missing polls and polls that are not active.
	ErrNotFound = errors.New("poll not found")

	// ErrExpired is returned for polls past their expiry; callers show results instead.
	ErrExpired = errors.New("poll has expired and is no longer accepting votes")

	// ErrAlreadyVoted is the expected outcome of a second vote by the same user.
	ErrAlreadyVoted = errors.New("you have already voted on this poll")

	// ErrIntegrityConflict is a duplicate rejected by the store's uniqueness
	// constraint after the already-voted check passed. It matches ErrAlreadyVoted.
	ErrIntegrityConflict = fmt.Errorf("%w (concurrent vote rejected by store)", ErrAlreadyVoted)

	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidOption matches ErrInvalidInput.
	ErrInvalidOption = fmt.Errorf("%w: option does not belong to this poll", ErrInvalidInput)

	ErrForbidden = errors.New("you do not have permission to perform this action")
)
