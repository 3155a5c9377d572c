// Package password implements password hashing and verification with Argon2id.
//
// # Output format
//
// Hashes are encoded in PHC string format:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
//
// The format is self-describing, so parameter changes never invalidate stored
// hashes. [Argon2.NeedsUpgrade] reports whether a stored hash was produced
// with weaker parameters than currently configured, so callers can re-hash on
// the next successful login.
//
// # Failure modes
//
// [Argon2.Verify] keeps two negative outcomes apart: a wrong password returns
// (false, nil), while an unparseable stored hash returns an error wrapping
// [ErrHashMalformed]. The first is the expected mismatch path; the second is
// stored-data corruption and must be surfaced as a server-side error.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords; callers supply plaintext and receive hashes.
//   - Enforce password policy; length rules live in the Engine.
//   - Import any other goCred package.
package password
