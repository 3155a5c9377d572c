package goCred

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrEthical07/goCred/store"
)

// Login authenticates username/plaintext and issues a bearer token under
// the account's current secret and version.
//
// A missing account and a wrong password produce the identical
// [ErrInvalidCredentials], so callers cannot probe for account existence.
func (e *Engine) Login(ctx context.Context, username, plaintext string) (*LoginResult, error) {
	if e.users == nil || e.passwordHash == nil || e.tokens == nil {
		return nil, ErrEngineNotReady
	}

	if plaintext == "" {
		e.metricInc(MetricLoginFailure)
		return nil, ErrInvalidCredentials
	}

	record, err := e.users.Get(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			e.metricInc(MetricLoginFailure)
			return nil, ErrInvalidCredentials
		case errors.Is(err, store.ErrRecordCorrupt):
			return nil, fmt.Errorf("%w: %v", ErrRecordCorrupt, err)
		default:
			return nil, err
		}
	}

	ok, err := e.passwordHash.Verify(plaintext, record.PasswordHash)
	if err != nil {
		// A hash that cannot be parsed is stored-data corruption, not a
		// credential failure. Always a server error.
		return nil, fmt.Errorf("%w: %v", ErrRecordCorrupt, err)
	}
	if !ok {
		e.metricInc(MetricLoginFailure)
		return nil, ErrInvalidCredentials
	}

	tokenStr, err := e.tokens.Issue(record, e.config.JWT.TTL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordCorrupt, err)
	}

	// Best-effort bookkeeping: a failed write must not fail the login.
	record.LastLogin = time.Now().Unix()
	_ = e.users.Put(ctx, record)

	e.metricInc(MetricLoginSuccess)
	return &LoginResult{
		Token:     tokenStr,
		ExpiresIn: e.expiresIn(),
	}, nil
}
