// Package storage provides an expiring key/value cache over a pluggable
// durable medium.
//
// A Store prefixes and upper-cases every key before it reaches the Medium,
// wraps values in a JSON record carrying the stored-at time and an optional
// absolute expiry, and checks that expiry lazily on every read. Expired or
// unparsable records are removed on read and treated as misses, so the
// store self-heals against corruption without surfacing errors.
//
// Two media ship with the package: MemoryMedium (process-scoped) and
// SQLiteMedium (durable, backed by the cache_entries table). The credential
// manager in the session package is the primary consumer.
package storage
