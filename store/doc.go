// Package store defines the persisted user record and the keyed record
// store it lives in.
//
// A [UserStore] maps one username to one serialized [UserRecord]; the record
// key always equals the record's Username field. Two implementations ship
// with the package: [RedisStore] for production and [MemoryStore] for tests
// and examples. The store has no multi-key transactions; rename-style moves
// are the engine's responsibility (create the new key first, delete the old
// key second).
package store
