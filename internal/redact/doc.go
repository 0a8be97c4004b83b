// Package redact removes likely secrets from configuration text before it is
// sent to an LLM provider.
//
// Detection uses regex heuristics covering common secret shapes: API keys,
// JWTs, private keys, AWS access key IDs and secret access keys, bearer
// tokens, and provider-specific tokens (Anthropic, OpenAI, GitHub, Slack).
// For key = "value" assignments only the value is replaced, so the reviewer
// still sees which attribute held a hardcoded secret.
package redact
