// Package providers implements the Completer interface for each supported LLM
// provider.
//
// Supported providers: OpenAI (GPT, the default), Anthropic (Claude), Google
// (Gemini), and Ollama / LM Studio for local models.
//
// Every Complete call makes exactly one HTTP attempt and classifies the
// outcome: rate limits become [*RateLimitError], rejected credentials become
// [*AuthError], and 5xx responses become [*ServerError]. Retrying is left to
// a [RetryPolicy] owned by the caller, so the backoff strategy can be swapped
// and tested without a network.
//
// Use [New] to obtain a Completer by provider name and model string.
package providers
