package goCred

import (
	"context"
	"errors"

	"github.com/MrEthical07/goCred/store"
)

// Delete removes the account the presented token verifies for and returns
// the deleted username. Deletion requires a fully verified token; the claimed
// subject alone is never enough.
func (e *Engine) Delete(ctx context.Context, tokenStr string) (string, error) {
	claims, _, err := e.authenticate(ctx, tokenStr)
	if err != nil {
		return "", err
	}

	if err := e.users.Delete(ctx, claims.Subject); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Verified a moment ago but gone now: a concurrent delete won.
			return "", ErrTokenInvalid
		}
		return "", err
	}

	e.metricInc(MetricDeleteSuccess)
	return claims.Subject, nil
}
