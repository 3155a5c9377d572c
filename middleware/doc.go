// Package middleware exposes an HTTP middleware adapter for bearer-token
// enforcement built on top of goCred.Engine verification.
//
// [Guard] reads the Authorization header, calls Engine.Authenticate, and
// injects verified claims into the request context. Handlers retrieve them
// with [ClaimsFromContext].
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement verification itself; all decisions are delegated to
// Engine.Authenticate.
//
// # What this package must NOT do
//
//   - Parse or create JWTs directly (delegates to Engine).
//   - Access Redis (Engine handles I/O).
//   - Distinguish rejection reasons in responses.
package middleware
