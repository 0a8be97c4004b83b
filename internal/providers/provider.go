package providers

import (
	"context"
	"fmt"
)

// Request contains the prompt sent to an LLM.
type Request struct {
	SystemPrompt string
	Prompt       string
	MaxTokens    int
	Temperature  float64
}

// Response contains the raw completion returned by an LLM.
type Response struct {
	Content    string
	TokensUsed int
}

// Completer is the provider abstraction interface.
type Completer interface {
	Complete(ctx context.Context, req Request) (Response, error)
	Name() string
}

// Modeler is implemented by providers that can report their model name.
type Modeler interface {
	Model() string
}

// New creates a provider by name. An empty model selects DefaultModel(provider).
func New(provider, model string) (Completer, error) {
	if model == "" {
		model = DefaultModel(provider)
	}
	switch provider {
	case "openai":
		return NewOpenAI(model)
	case "anthropic":
		return NewAnthropic(model)
	case "gemini", "google":
		return NewGemini(model)
	case "ollama", "lmstudio":
		return NewOllama(model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}

// Info lists a provider and a few models known to work with it.
type Info struct {
	Provider string
	Models   []string
}

// Known returns the supported providers with sample models.
func Known() []Info {
	return []Info{
		{Provider: "openai", Models: []string{"gpt-4", "gpt-4o", "gpt-4.1-mini", "o3-mini"}},
		{Provider: "anthropic", Models: []string{"claude-sonnet-4-20250514", "claude-haiku-4-5"}},
		{Provider: "gemini", Models: []string{"gemini-2.5-flash", "gemini-2.5-pro"}},
		{Provider: "ollama", Models: []string{"llama3.3", "qwen2.5-coder", "codellama"}},
	}
}

// DefaultModel returns the model used for provider when none is configured:
// the first model Known lists for it, or "" for an unknown provider.
func DefaultModel(provider string) string {
	switch provider {
	case "google":
		provider = "gemini"
	case "lmstudio":
		provider = "ollama"
	}
	for _, info := range Known() {
		if info.Provider == provider {
			return info.Models[0]
		}
	}
	return ""
}
