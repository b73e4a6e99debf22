// Package session owns the client-side authenticated session: the current
// identity, the persisted token/identity pair, and the login/signup/logout
// operations against the remote auth service.
//
// # Ownership
//
// The durable token/identity pair and the in-memory current identity are
// owned exclusively by Store. Other packages only read the current identity
// (via Current) and never touch storage directly. This exclusivity is what
// keeps session state from diverging across the client.
//
// # Persistence
//
// Storage is a small key-value abstraction with two backends:
//
//   - MemoryStorage: ephemeral, used in tests
//   - SQLiteStorage: durable local state under the user's data directory
//
// Token and identity are always written and cleared together. A dangling
// token without an identity (or vice versa), an identity that fails to parse,
// or an expired JWT are all treated as corrupt state: both keys are purged
// silently and the store starts unauthenticated.
//
// # Failure semantics
//
// Login and Signup never panic and never leak transport errors to callers.
// All failure modes resolve to a Result carrying a human-readable message;
// the server-provided message is used when available, otherwise a generic
// "Login failed" / "Signup failed". A failed attempt leaves any previously
// stored session untouched.
package session
