// Package goCred provides a credential-management and token-issuance engine:
// user registration, password authentication, bearer-token issuance and
// verification, and in-place credential rotation that instantly revokes
// previously issued tokens.
//
// The package is designed for concurrent server workloads: Engine methods
// are safe to call from multiple goroutines after initialization through
// [Builder.Build]. The engine itself holds no mutable shared state beyond
// the external user store.
//
// # Revocation model
//
// Every user record carries its own signing secret and a monotonic version
// counter. Tokens embed the counter at issuance and verify only while the
// record's counter still matches, so rotating the secret (on password change
// or rename) revokes all outstanding tokens for that user with a single
// record write. There is no token blocklist.
//
// # Architecture boundaries
//
// goCred is the public surface. It exposes [Engine], [Builder], [Config],
// and value types re-exported from subpackages ([UserRecord], [Claims]).
// Hashing lives in password/, token signing in token/, persistence in
// store/, bot-challenge verification in turnstile/, and the HTTP surface in
// api/. Only api/ and the metrics exporters import this package back.
//
// # What this package must NOT do
//
//   - Read configuration from the process environment; Config is explicit
//     and passed in once at construction.
//   - Retry store or network failures; transient errors surface to the
//     caller as server errors.
//   - Log. The engine returns typed errors and leaves logging to callers.
package goCred
