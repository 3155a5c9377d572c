package goCred

import (
	"github.com/MrEthical07/goCred/store"
	"github.com/MrEthical07/goCred/token"
)

// UserRecord is the persisted account record. See [store.UserRecord].
type UserRecord = store.UserRecord

// Claims is the verified payload of a bearer token. See [token.Claims].
type Claims = token.Claims

// LoginResult is returned by [Engine.Login] on success.
type LoginResult struct {
	Token     string
	ExpiresIn int64 // seconds
}

// UpdateRequest is the input for [Engine.Update]. An empty field means
// "leave unchanged"; at least one field must be set.
type UpdateRequest struct {
	NewUsername string
	NewPassword string
}

// UpdateResult is returned by [Engine.Update] on success. Token is empty
// when no rotation occurred; the presented token then remains valid.
type UpdateResult struct {
	Username  string
	Rotated   bool
	Token     string
	ExpiresIn int64 // seconds, zero when Token is empty
}

const (
	minUsernameLength = 3
	maxUsernameLength = 50
	minPasswordLength = 6
)

func validateUsername(username string) error {
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return ErrUsernameInvalid
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordInvalid
	}
	return nil
}
