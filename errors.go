package goCred

import "errors"

var (
	// ErrInvalidCredentials is returned by Login for both an unknown
	// username and a wrong password, so account existence never leaks.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTokenInvalid is returned when a presented token fails
	// verification for any reason other than expiry.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired is returned when a presented token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrUserExists is returned by Register when the username is taken.
	ErrUserExists = errors.New("user already exists")
	// ErrUsernameTaken is returned by Update when the rename target is taken.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrUsernameInvalid is returned when a username fails validation.
	ErrUsernameInvalid = errors.New("username must be between 3 and 50 characters")
	// ErrPasswordInvalid is returned when a password fails validation.
	ErrPasswordInvalid = errors.New("password must be at least 6 characters")
	// ErrNothingToUpdate is returned by Update when neither a new username
	// nor a new password is supplied.
	ErrNothingToUpdate = errors.New("update requires a new username or a new password")
	// ErrRecordCorrupt marks a stored record whose hash or secret cannot be
	// used. It is a server-side data-integrity failure, never a client fault.
	ErrRecordCorrupt = errors.New("stored credential record corrupt")
	// ErrEngineNotReady is returned when the engine is missing a dependency.
	ErrEngineNotReady = errors.New("engine not initialized")
)
