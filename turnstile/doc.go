// Package turnstile validates client-supplied bot-challenge tokens against
// a remote verification service.
//
// The engine treats the verifier as an opaque yes/no oracle: a token either
// passes or it does not. [HTTPVerifier] talks to the Cloudflare Turnstile
// siteverify endpoint (or any compatible one); [Static] is a fixed-answer
// stub for tests and local development.
package turnstile
