// Package api exposes the credential engine over HTTP using Gin.
//
// # Routes
//
//   - POST /register: create an account (bot challenge required)
//   - POST /login: exchange credentials for a bearer token (bot challenge required)
//   - PATCH /user: rename and/or change password (bearer token required)
//   - DELETE /user: delete the account (bearer token required)
//   - GET /health: liveness probe
//   - GET /metrics: engine counters in Prometheus text format
//
// Every response is a JSON envelope with a "success" flag. Authentication
// failures never disclose which check failed beyond invalid vs expired.
//
// # Architecture boundaries
//
// This package translates HTTP into Engine calls and back. It does NOT
// implement credential logic, touch the store, or verify tokens itself.
package api
