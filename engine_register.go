package goCred

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrEthical07/goCred/store"
	"github.com/MrEthical07/goCred/token"
)

// Register creates a new account. No token is issued; a separate Login is
// required afterwards.
func (e *Engine) Register(ctx context.Context, username, plaintext string) error {
	if e.users == nil || e.passwordHash == nil {
		return ErrEngineNotReady
	}

	if err := validateUsername(username); err != nil {
		return err
	}
	if err := validatePassword(plaintext); err != nil {
		return err
	}

	// Fail fast before paying for the hash. Create below re-checks
	// atomically, so a racing registration still loses cleanly.
	exists, err := e.users.Exists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		e.metricInc(MetricRegisterDuplicate)
		return ErrUserExists
	}

	hash, err := e.passwordHash.Hash(plaintext)
	if err != nil {
		return err
	}

	secret, err := token.NewSecret()
	if err != nil {
		return err
	}

	record := &UserRecord{
		UserID:       uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().Unix(),
		JWTSecret:    secret,
		JWTVersion:   1,
	}

	if err := e.users.Create(ctx, record); err != nil {
		if errors.Is(err, store.ErrUserExists) {
			e.metricInc(MetricRegisterDuplicate)
			return ErrUserExists
		}
		return err
	}

	e.metricInc(MetricRegisterSuccess)
	return nil
}
