// Package cache provides a file-based cache for LLM completions.
//
// Entries are keyed by a SHA-256 hash of the provider name, model, and the
// exact prompt text, so an unchanged Terraform block is never paid for twice.
// Each entry stores the completion with a creation timestamp; entries older
// than the configured TTL are ignored on read and counted as expired in
// [Cache.Stats].
//
// The default cache directory is $XDG_CACHE_HOME/tfreview (or the
// OS-appropriate equivalent).
package cache
