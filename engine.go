package goCred

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrEthical07/goCred/password"
	"github.com/MrEthical07/goCred/store"
	"github.com/MrEthical07/goCred/token"
)

// Engine orchestrates registration, authentication, credential updates, and
// deletion against the user store. Construct it through [Builder.Build];
// all methods are then safe for concurrent use.
//
// Within a single call the read-verify-mutate-write sequence for one
// username is not atomic against a concurrent update to the same username:
// two racing updates resolve last-writer-wins. This is an accepted
// limitation of the keyed store, not a defect to lock around.
type Engine struct {
	config       Config
	users        store.UserStore
	passwordHash *password.Argon2
	tokens       *token.Manager
	metrics      *Metrics
}

// MetricsSnapshot returns a point-in-time copy of the engine's counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	e.metrics.Inc(id)
}

func (e *Engine) expiresIn() int64 {
	return int64(e.config.JWT.TTL.Seconds())
}

// Authenticate fully verifies a bearer token: it extracts the claimed
// subject, loads that user's record, and checks signature, version, and
// expiry against it. It returns the verified claims.
func (e *Engine) Authenticate(ctx context.Context, tokenStr string) (*Claims, error) {
	claims, _, err := e.authenticate(ctx, tokenStr)
	return claims, err
}

// authenticate is the two-phase verification shared by Update, Delete, and
// Authenticate. The unverified subject extraction exists solely to pick the
// record whose secret the token is then cryptographically checked against.
func (e *Engine) authenticate(ctx context.Context, tokenStr string) (*Claims, *UserRecord, error) {
	if e.users == nil || e.tokens == nil {
		return nil, nil, ErrEngineNotReady
	}

	subject, err := e.tokens.ExtractSubjectUnverified(tokenStr)
	if err != nil {
		e.metricInc(MetricTokenRejected)
		return nil, nil, ErrTokenInvalid
	}

	record, err := e.users.Get(ctx, subject)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			// An unknown subject is indistinguishable from a bad token.
			e.metricInc(MetricTokenRejected)
			return nil, nil, ErrTokenInvalid
		case errors.Is(err, store.ErrRecordCorrupt):
			return nil, nil, fmt.Errorf("%w: %v", ErrRecordCorrupt, err)
		default:
			return nil, nil, err
		}
	}

	claims, err := e.tokens.Verify(tokenStr, record)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrExpired):
			e.metricInc(MetricTokenRejected)
			return nil, nil, ErrTokenExpired
		case errors.Is(err, token.ErrSecretCorrupt):
			return nil, nil, fmt.Errorf("%w: %v", ErrRecordCorrupt, err)
		default:
			e.metricInc(MetricTokenRejected)
			return nil, nil, ErrTokenInvalid
		}
	}

	return claims, record, nil
}
