// Package token issues and verifies bearer tokens scoped to a single user
// record.
//
// Every user carries their own HS256 signing secret and a monotonic version
// counter. A token embeds the counter value at issuance and verifies only
// while the record's counter still matches, so [RotateSecret] revokes every
// outstanding token for one user in a single record write. No blocklist.
//
// # Two-phase verification
//
// Because secrets are per-user, the verifier cannot know which secret to use
// until it knows which user the token claims to be for.
// [Manager.ExtractSubjectUnverified] decodes the subject without checking
// the signature, solely so the caller can load the right record; it must
// never feed an authorization decision on its own. [Manager.Verify] then
// checks signature first, version second, expiry last, so a forged token
// learns nothing about version or expiry state.
package token
