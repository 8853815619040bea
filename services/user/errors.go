package user

import "errors"

var (
	// ErrEmailInUse signals a duplicate registration or profile email.
	ErrEmailInUse = errors.New("email already in use")
	// ErrInvalidCredentials covers unknown emails and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidRefresh covers malformed, expired, or rotated-out refresh tokens.
	ErrInvalidRefresh = errors.New("invalid refresh")
	// ErrNoSession signals a refresh attempt after logout.
	ErrNoSession = errors.New("no session")
	// ErrUserNotFound signals a missing account.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidPassword signals a wrong current password on change.
	ErrInvalidPassword = errors.New("invalid current password")
)
