package goCred

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrEthical07/goCred/store"
	"github.com/MrEthical07/goCred/token"
)

// Update applies a rename and/or a password rotation to the account the
// presented token verifies for. At least one field of req must be set.
//
// Any password change rotates the signing secret; a rename rotates it too,
// but rotation happens at most once per call even when both fields change.
// When a rotation occurred the result carries a fresh token, and every token
// issued before the call (including the presented one) is now invalid.
// When no rotation occurred no token is returned and the presented token
// remains valid.
func (e *Engine) Update(ctx context.Context, tokenStr string, req UpdateRequest) (*UpdateResult, error) {
	if req.NewUsername == "" && req.NewPassword == "" {
		return nil, ErrNothingToUpdate
	}

	_, record, err := e.authenticate(ctx, tokenStr)
	if err != nil {
		return nil, err
	}

	rotated := false

	if req.NewPassword != "" {
		if err := validatePassword(req.NewPassword); err != nil {
			return nil, err
		}

		hash, err := e.passwordHash.Hash(req.NewPassword)
		if err != nil {
			return nil, err
		}
		record.PasswordHash = hash

		if err := token.RotateSecret(record); err != nil {
			return nil, err
		}
		rotated = true
	}

	oldUsername := record.Username
	renaming := false

	if req.NewUsername != "" {
		if err := validateUsername(req.NewUsername); err != nil {
			return nil, err
		}
		renaming = req.NewUsername != record.Username
	}

	if renaming {
		taken, err := e.users.Exists(ctx, req.NewUsername)
		if err != nil {
			return nil, err
		}
		if taken {
			// Nothing has been persisted yet; both records stay untouched.
			e.metricInc(MetricUpdateConflict)
			return nil, ErrUsernameTaken
		}

		if !rotated {
			if err := token.RotateSecret(record); err != nil {
				return nil, err
			}
			rotated = true
		}
		record.Username = req.NewUsername
	}

	switch {
	case renaming:
		// Rename over a store without multi-key transactions: write the new
		// key first, delete the old key second. A crash in between leaves a
		// recoverable duplicate, never a lost account. Create re-checks the
		// target key, so a racing claim of the name aborts the whole update
		// with the old record intact.
		if err := e.users.Create(ctx, record); err != nil {
			if errors.Is(err, store.ErrUserExists) {
				e.metricInc(MetricUpdateConflict)
				return nil, ErrUsernameTaken
			}
			return nil, err
		}
		if err := e.users.Delete(ctx, oldUsername); err != nil && !errors.Is(err, store.ErrUserNotFound) {
			// The new record is live; surfacing the failure makes the
			// orphaned old key visible instead of silently ignored.
			return nil, fmt.Errorf("rename applied but old record not deleted: %w", err)
		}
	case rotated:
		if err := e.users.Put(ctx, record); err != nil {
			return nil, err
		}
	default:
		// A rename to the current username with no password change: valid
		// request, nothing to persist, presented token stays valid.
		return &UpdateResult{Username: record.Username}, nil
	}

	result := &UpdateResult{
		Username: record.Username,
		Rotated:  rotated,
	}

	if rotated {
		fresh, err := e.tokens.Issue(record, e.config.JWT.TTL)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRecordCorrupt, err)
		}
		result.Token = fresh
		result.ExpiresIn = e.expiresIn()
		e.metricInc(MetricSecretRotated)
	}

	e.metricInc(MetricUpdateSuccess)
	return result, nil
}
