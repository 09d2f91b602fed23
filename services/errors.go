package services

import "errors"

// Business-rule errors. Controllers map these to HTTP statuses; anything else
// coming out of a service is a storage failure and becomes a 500.
var (
	// ErrNotFound covers both truly absent rows and rows owned by another
	// user. Ownership is never revealed through a distinct error.
	ErrNotFound = errors.New("not found")

	ErrStaleEditWindow   = errors.New("checklist can no longer be edited: its day has passed")
	ErrIllegalTransition = errors.New("regret success can only change from false to true")

	ErrUserNotFound       = errors.New("user not found")
	ErrSelfFollow         = errors.New("cannot follow yourself")
	ErrAlreadyFollowing   = errors.New("already following this user")
	ErrNotFollowing       = errors.New("not following this user")
	ErrNetworkingDisabled = errors.New("user has disabled networking")

	ErrUsernameTaken = errors.New("username already taken")
)
